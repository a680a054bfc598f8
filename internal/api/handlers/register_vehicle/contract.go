package register_vehicle

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/accounts/models"
)

type AccountService interface {
	RegisterVehicle(ctx context.Context, principal *domain.Principal, req *models.RegisterVehicleRequest) (*models.VehicleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
