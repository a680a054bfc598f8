package login_user

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/accounts/models"
)

type AccountService interface {
	LoginUser(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
