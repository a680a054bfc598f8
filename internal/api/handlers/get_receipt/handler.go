package get_receipt

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
)

const (
	msgInvalidPaymentID = "некорректный ID платежа"
	msgNotFound         = "платеж не найден"
	msgMissingPrincipal = "требуется авторизация"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments/{paymentId}/receipt
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	paymentID, err := handlers.PathID(r, "paymentId")
	if err != nil {
		h.logger.Warn("GET /payments/{id}/receipt - %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	receipt, err := h.service.Receipt(r.Context(), principal, paymentID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrPaymentNotFound), errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /payments/{id}/receipt - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrForbidden):
			h.logger.Warn("GET /payments/{id}/receipt - Forbidden: payment_id=%d, user_id=%d", paymentID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /payments/{id}/receipt - Failed to build receipt: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /payments/{id}/receipt - Receipt downloaded: payment_id=%d, user_id=%d", paymentID, principal.ID)
	handlers.RespondFile(w, "text/plain; charset=utf-8", receipt.FileName, []byte(receipt.Content))
}
