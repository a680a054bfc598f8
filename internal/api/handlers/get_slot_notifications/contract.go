package get_slot_notifications

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/notifications/models"
)

type NotificationService interface {
	GetSlotNotifications(ctx context.Context, principal *domain.Principal, slotID int64) ([]models.NotificationResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
