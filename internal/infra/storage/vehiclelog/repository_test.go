package vehiclelog

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestRepository_Create_OpenLogExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO vehicle_logs").WillReturnError(&pq.Error{Code: "23505"})

	_, err = NewRepository(db).Create(context.Background(), &domain.VehicleLog{VehicleID: 1, LotID: 2, EntryTime: time.Now()})
	assert.ErrorIs(t, err, ErrOpenLogExists)
}

func TestRepository_GetOpenByVehicleID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	entry := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM vehicle_logs WHERE (vehicle_id = $1 AND exit_time IS NULL) ORDER BY id DESC LIMIT 1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "lot_id", "entry_time", "exit_time"}).
			AddRow(int64(1), int64(5), int64(2), entry, nil))

	l, err := NewRepository(db).GetOpenByVehicleID(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, l.IsOpen())
	assert.EqualValues(t, 2, l.LotID)
}

func TestRepository_GetLatestClosedByVehicleID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("exit_time IS NOT NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewRepository(db).GetLatestClosedByVehicleID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestRepository_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	exit := time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE vehicle_logs SET exit_time = $1 WHERE (id = $2 AND exit_time IS NULL)")).
		WithArgs(exit, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewRepository(db).Close(context.Background(), 1, exit))
}
