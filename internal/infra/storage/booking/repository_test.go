package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (user_id,vehicle_id,slot_id,start_time,end_time,payment_status) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	b, err := NewRepository(db).Create(context.Background(), &domain.Booking{
		UserID:        1,
		VehicleID:     2,
		SlotID:        ptr.Ptr(int64(3)),
		StartTime:     start,
		PaymentStatus: domain.PaymentStatusPending,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 42, b.ID)
}

func TestRepository_GetByIDForUpdate_NullableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1 ORDER BY id DESC LIMIT 1 FOR UPDATE")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(7), int64(1), int64(2), nil, start, nil, "Pending"))

	b, err := NewRepository(db).GetByIDForUpdate(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, b.SlotID)
	assert.Nil(t, b.EndTime)
	assert.True(t, b.IsPending())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WillReturnRows(sqlmock.NewRows(columns))

	_, err = NewRepository(db).GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_CompletePayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	end := time.Date(2024, 5, 1, 11, 30, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET end_time = $1, payment_status = $2, slot_id = $3 WHERE id = $4 AND payment_status = $5")).
		WithArgs(end, "Completed", nil, int64(7), "Pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	require.NoError(t, repo.CompletePayment(context.Background(), 7, end))
	assert.ErrorIs(t, repo.CompletePayment(context.Background(), 7, end), ErrNotPending)
}
