package process_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	processPayment "github.com/m04kA/SMC-ParkingService/internal/usecase/process_payment"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingPrincipal     = "требуется авторизация"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgAlreadyPaid          = "бронирование уже оплачено"
	msgVehicleStillParked   = "автомобиль еще не выехал с парковки"
	msgInvalidState         = "по бронированию не было завершенной стоянки"
	msgInvalidPaymentMethod = "неизвестный способ оплаты, ожидается Card, Cash или Arrival"
)

type Handler struct {
	useCase ProcessPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ProcessPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ProcessPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &processPayment.Request{
		Principal: principal,
		BookingID: bookingID,
		Method:    req.Method,
	})
	if err != nil {
		switch {
		case errors.Is(err, processPayment.ErrInvalidPaymentMethod):
			h.logger.Warn("POST /bookings/{id}/payment - Invalid payment method: %q", req.Method)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidPaymentMethod, msgInvalidPaymentMethod)

		case errors.Is(err, processPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, processPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, processPayment.ErrForbidden):
			h.logger.Warn("POST /bookings/{id}/payment - Forbidden: booking_id=%d, user_id=%d", bookingID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, processPayment.ErrAlreadyPaid):
			h.logger.Warn("POST /bookings/{id}/payment - Already paid: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeAlreadyPaid, msgAlreadyPaid)

		case errors.Is(err, processPayment.ErrVehicleStillParked):
			h.logger.Warn("POST /bookings/{id}/payment - Vehicle still parked: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeVehicleStillParked, msgVehicleStillParked)

		case errors.Is(err, processPayment.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/payment - Invalid state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeInvalidState, msgInvalidState)

		default:
			h.logger.Error("POST /bookings/{id}/payment - Failed to process payment: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	receipt := (&domain.Payment{ID: result.PaymentID}).ReceiptNumber()
	h.logger.Info("POST /bookings/{id}/payment - Payment processed: payment_id=%d, booking_id=%d, amount=%s",
		result.PaymentID, bookingID, result.Amount.StringFixed(2))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, receipt))
}
