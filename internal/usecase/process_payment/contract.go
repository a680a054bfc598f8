package process_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	CompletePayment(ctx context.Context, id int64, endTime time.Time) error
}

// SlotRepository интерфейс репозитория мест
type SlotRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.ParkingSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
}

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
}

// VehicleLogRepository интерфейс репозитория записей о въезде
type VehicleLogRepository interface {
	GetOpenByVehicleID(ctx context.Context, vehicleID int64) (*domain.VehicleLog, error)
	GetLatestClosedByVehicleID(ctx context.Context, vehicleID int64) (*domain.VehicleLog, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

// PaymentNotifier отправляет пользователю подтверждение оплаты
type PaymentNotifier interface {
	NotifyPayment(ctx context.Context, userID int64, payment *domain.Payment) error
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
