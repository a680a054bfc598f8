package vehicle

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

func TestRepository_Create_NormalizesPlate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO vehicles")).
		WithArgs(int64(1), "CAB-1234", domain.VehicleTypeCar, "Toyota", "Axio", "White").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(9), time.Now()))

	v, err := NewRepository(db).Create(context.Background(), &domain.Vehicle{
		UserID: 1, PlateNumber: " cab-1234", Type: domain.VehicleTypeCar, Brand: "Toyota", Model: "Axio", Color: "White",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 9, v.ID)
	assert.Equal(t, "CAB-1234", v.PlateNumber)
}

func TestRepository_Create_PlateTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO vehicles").WillReturnError(&pq.Error{Code: "23505"})

	_, err = NewRepository(db).Create(context.Background(), &domain.Vehicle{PlateNumber: "X"})
	assert.ErrorIs(t, err, ErrPlateTaken)
}

func TestRepository_GetByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM vehicles WHERE user_id = $1 ORDER BY id")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), int64(3), "AAA-1", "Car", "Honda", "Fit", "Red", now).
			AddRow(int64(2), int64(3), "BBB-2", "Bike", "Bajaj", "Pulsar", "Black", now))

	vs, err := NewRepository(db).GetByUserID(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, domain.VehicleTypeBike, vs[1].Type)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM vehicles").WillReturnRows(sqlmock.NewRows(columns))

	_, err = NewRepository(db).GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}
