package process_payment

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest проверяет запрос до обращения к хранилищу и возвращает способ оплаты
func validateRequest(req *Request) (domain.PaymentMethod, error) {
	if req == nil {
		return "", fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if !req.Principal.IsUser() {
		return "", ErrForbidden
	}
	if req.BookingID <= 0 {
		return "", fmt.Errorf("%w: booking_id must be positive", ErrInvalidInput)
	}

	method, ok := domain.ParsePaymentMethod(req.Method)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.Method)
	}
	return method, nil
}
