package stats

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func period() domain.DateRange {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return domain.DateRange{From: from, To: from.AddDate(0, 1, 0)}
}

func TestRepository_GetPayments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	p := period()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.paid_at >= $1 AND p.paid_at <= $2")).
		WithArgs(p.From, p.To).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "amount", "method", "status", "paid_at", "lot_id", "name", "city", "location"}).
			AddRow(int64(1), int64(2), "100.00", "Card", "Completed", p.From, int64(3), "Nimal", "Colombo", "Fort").
			AddRow(int64(2), int64(3), "50.00", "Cash", "Completed", p.From, nil, "Kamal", "", ""))

	records, err := NewRepository(db).GetPayments(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Colombo", records[0].City)
	assert.Nil(t, records[1].LotID)
}

func TestRepository_GetSlots(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM parking_slots s JOIN parking_lots l ON l.id = s.lot_id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lot_id", "status", "city", "location"}).
			AddRow(int64(1), int64(1), "OCCUPIED", "Kandy", "Peradeniya"))

	records, err := NewRepository(db).GetSlots(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.SlotStatusOccupied, records[0].Status)
}

func TestRepository_CountLots(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM parking_lots")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	n, err := NewRepository(db).CountLots(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}

func TestRepository_SumCompletedRevenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = $1 AND paid_at >= $2")).
		WithArgs("Completed", since).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("350.50"))

	sum, err := NewRepository(db).SumCompletedRevenue(context.Background(), &since)
	require.NoError(t, err)
	assert.Equal(t, "350.5", sum.String())
}

func TestRepository_CountOpenLogs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM vehicle_logs WHERE exit_time IS NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	n, err := NewRepository(db).CountOpenLogs(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
