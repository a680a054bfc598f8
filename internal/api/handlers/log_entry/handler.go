package log_entry

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	logEntry "github.com/m04kA/SMC-ParkingService/internal/usecase/log_entry"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "требуется авторизация"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidState       = "бронирование не позволяет зафиксировать въезд"
	msgDuplicateLog       = "автомобиль уже находится на парковке"
)

type Handler struct {
	useCase LogEntryUseCase
	logger  Logger
}

func NewHandler(useCase LogEntryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/entry
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/entry - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req LogEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/entry - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &logEntry.Request{
		Principal: principal,
		BookingID: bookingID,
		VehicleID: req.VehicleID,
	})
	if err != nil {
		switch {
		case errors.Is(err, logEntry.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/entry - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, logEntry.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/entry - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, logEntry.ErrForbidden):
			h.logger.Warn("POST /bookings/{id}/entry - Forbidden: booking_id=%d, user_id=%d", bookingID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, logEntry.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/entry - Invalid state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeInvalidState, msgInvalidState)

		case errors.Is(err, logEntry.ErrDuplicateLog):
			h.logger.Warn("POST /bookings/{id}/entry - Vehicle already parked: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeDuplicateLog, msgDuplicateLog)

		default:
			h.logger.Error("POST /bookings/{id}/entry - Failed to log entry: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/entry - Entry logged: log_id=%d, booking_id=%d", result.LogID, bookingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
