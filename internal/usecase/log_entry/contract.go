package log_entry

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория мест
type SlotRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.ParkingSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
}

// VehicleLogRepository интерфейс репозитория записей о въезде
type VehicleLogRepository interface {
	GetOpenByVehicleID(ctx context.Context, vehicleID int64) (*domain.VehicleLog, error)
	Create(ctx context.Context, log *domain.VehicleLog) (*domain.VehicleLog, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
