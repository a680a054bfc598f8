package delete_parking_lot

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type ParkingService interface {
	DeleteLot(ctx context.Context, principal *domain.Principal, lotID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
