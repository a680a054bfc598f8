package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория парковочных мест
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingSlot, error)
}

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
}

// VehicleLogRepository интерфейс репозитория записей о въезде и выезде
type VehicleLogRepository interface {
	GetOpenByVehicleID(ctx context.Context, vehicleID int64) (*domain.VehicleLog, error)
	GetLatestClosedByVehicleID(ctx context.Context, vehicleID int64) (*domain.VehicleLog, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Payment, error)
}

// VehicleRepository интерфейс репозитория транспортных средств
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
