package parking

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error)
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
	Search(ctx context.Context, filter domain.ParkingLotFilter) ([]*domain.ParkingLotSummary, error)
	GetCities(ctx context.Context) ([]string, error)
	GetLocationsByCity(ctx context.Context, city string) ([]string, error)
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория парковочных мест
type SlotRepository interface {
	CreateForLot(ctx context.Context, lotID int64, count int) error
	GetByLotID(ctx context.Context, lotID int64) ([]*domain.ParkingSlot, error)
	GetByLotIDForUpdate(ctx context.Context, lotID int64) ([]*domain.ParkingSlot, error)
	GetStatistics(ctx context.Context, lotID int64) (domain.SlotStatistics, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
