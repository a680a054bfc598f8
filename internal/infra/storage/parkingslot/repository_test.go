package parkingslot

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestRepository_GetByIDForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, lot_id, status FROM parking_slots WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lot_id", "status"}).AddRow(int64(11), int64(2), "BOOKED"))

	slot, err := NewRepository(db).GetByIDForUpdate(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusBooked, slot.Status)
	assert.False(t, slot.IsAvailable())
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE parking_slots SET status = $1 WHERE id = $2")).
		WithArgs("OCCUPIED", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE parking_slots").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	require.NoError(t, repo.UpdateStatus(context.Background(), 3, domain.SlotStatusOccupied))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 4, domain.SlotStatusAvailable), ErrSlotNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 4, "BROKEN"), ErrInvalidStatus)
}

func TestRepository_CreateForLot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO parking_slots (lot_id,status) VALUES ($1,$2),($3,$4)")).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, NewRepository(db).CreateForLot(context.Background(), 1, 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetStatistics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY status")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("AVAILABLE", int64(6)).
			AddRow("BOOKED", int64(3)).
			AddRow("OCCUPIED", int64(1)))

	stats, err := NewRepository(db).GetStatistics(context.Background(), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 10, stats.Total)
	assert.Equal(t, 40.0, stats.OccupancyRate())
}

func TestRepository_GetByLotIDForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, lot_id, status FROM parking_slots WHERE lot_id = $1 ORDER BY id FOR UPDATE")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lot_id", "status"}).
			AddRow(int64(7), int64(4), "AVAILABLE").
			AddRow(int64(8), int64(4), "OCCUPIED"))

	slots, err := NewRepository(db).GetByLotIDForUpdate(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.False(t, slots[0].IsHeld())
	assert.True(t, slots[1].IsHeld())
	assert.NoError(t, mock.ExpectationsWereMet())
}
