package send_slot_notification

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/notifications/models"
)

type NotificationService interface {
	SendToSlot(ctx context.Context, principal *domain.Principal, slotID int64, req *models.SendRequest) (*models.NotificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
