package log_exit

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	logExit "github.com/m04kA/SMC-ParkingService/internal/usecase/log_exit"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingPrincipal = "требуется авторизация"
	msgNotFound         = "бронирование не найдено"
	msgNoActiveEntry    = "автомобиль не находится на парковке бронирования"
	msgForbidden        = "доступ запрещен"
	msgInvalidState     = "бронирование уже оплачено"
)

type Handler struct {
	useCase LogExitUseCase
	logger  Logger
}

func NewHandler(useCase LogExitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/exit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/exit - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &logExit.Request{Principal: principal, BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, logExit.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, logExit.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/exit - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, logExit.ErrNoActiveEntry):
			h.logger.Warn("POST /bookings/{id}/exit - No active entry: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNoActiveEntry)

		case errors.Is(err, logExit.ErrForbidden):
			h.logger.Warn("POST /bookings/{id}/exit - Forbidden: booking_id=%d, user_id=%d", bookingID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, logExit.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/exit - Invalid state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeInvalidState, msgInvalidState)

		default:
			h.logger.Error("POST /bookings/{id}/exit - Failed to log exit: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/exit - Exit logged: log_id=%d, booking_id=%d", result.LogID, bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
