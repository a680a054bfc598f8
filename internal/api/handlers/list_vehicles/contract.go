package list_vehicles

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/accounts/models"
)

type AccountService interface {
	ListVehicles(ctx context.Context, principal *domain.Principal) ([]models.VehicleResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
