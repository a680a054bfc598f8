package get_user_notifications

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/notifications/models"
)

type NotificationService interface {
	GetUserNotifications(ctx context.Context, principal *domain.Principal) ([]models.NotificationResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
