package notification

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

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO notifications (user_id,admin_id,type,description) VALUES ($1,$2,$3,$4)")).
		WithArgs(int64(1), int64(2), "OVERSTAY", "Please move your car").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), now))

	n, err := NewRepository(db).Create(context.Background(), &domain.Notification{
		UserID: 1, AdminID: ptr.Ptr(int64(2)), Type: domain.NotificationOverstay, Description: "Please move your car",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 10, n.ID)
}

func TestRepository_GetByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM notifications").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "admin_id", "type", "description", "created_at"}).
			AddRow(int64(1), int64(1), nil, "GENERAL", "Payment received", time.Now()))

	list, err := NewRepository(db).GetByUserID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].AdminID)
	assert.Equal(t, domain.NotificationGeneral, list[0].Type)
}
