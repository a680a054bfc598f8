package get_user_payments

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

type BookingService interface {
	GetUserPayments(ctx context.Context, principal *domain.Principal) ([]models.PaymentResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
