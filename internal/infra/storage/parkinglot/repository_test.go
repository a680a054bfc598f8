package parkinglot

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

func TestRepository_Search_WithFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(l.city) = LOWER($1) AND l.price_per_hour <= $2 GROUP BY")).
		WithArgs("colombo", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "city", "location", "total_slots", "price_per_hour", "available_slots"}).
			AddRow(int64(1), "Colombo", "Fort", 10, "150.00", int64(4)))

	result, err := NewRepository(db).Search(context.Background(), domain.ParkingLotFilter{
		City:          ptr.Ptr("colombo"),
		MaxPrice:      ptr.Ptr(decimal.NewFromInt(200)),
		AvailableOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.EqualValues(t, 4, result[0].AvailableSlots)
	assert.True(t, result[0].Lot.PricePerHour.Equal(decimal.NewFromInt(150)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetCities(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT city FROM parking_lots ORDER BY city")).
		WillReturnRows(sqlmock.NewRows([]string{"city"}).AddRow("Colombo").AddRow("Kandy"))

	cities, err := NewRepository(db).GetCities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Colombo", "Kandy"}, cities)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM parking_lots WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewRepository(db).Delete(context.Background(), 4)
	assert.ErrorIs(t, err, ErrLotNotFound)
}
