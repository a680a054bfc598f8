package login_admin

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/accounts/models"
)

type AccountService interface {
	LoginAdmin(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
