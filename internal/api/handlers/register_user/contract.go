package register_user

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/accounts/models"
)

type AccountService interface {
	RegisterUser(ctx context.Context, req *models.RegisterUserRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
