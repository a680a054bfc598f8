package notifications

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Notification, error)
}

// SlotRepository интерфейс репозитория парковочных мест
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveBySlotID(ctx context.Context, slotID int64) (*domain.Booking, error)
}

// Sender интерфейс доставки уведомлений (брокер или лог)
type Sender interface {
	Publish(ctx context.Context, msg notifier.Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
