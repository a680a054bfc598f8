package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	reserveSlot "github.com/m04kA/SMC-ParkingService/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "требуется авторизация"
	msgSlotNotFound       = "парковочное место не найдено"
	msgVehicleNotFound    = "автомобиль не найден"
	msgForbidden          = "автомобиль принадлежит другому пользователю"
	msgSlotUnavailable    = "место уже забронировано или занято"
	msgInvalidInput       = "не указаны место или автомобиль"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(principal))
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, %v", principal.ID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reserveSlot.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, reserveSlot.ErrVehicleNotFound):
			h.logger.Warn("POST /bookings - Vehicle not found: vehicle_id=%d", req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, reserveSlot.ErrForbidden):
			h.logger.Warn("POST /bookings - Forbidden: user_id=%d, vehicle_id=%d", principal.ID, req.VehicleID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reserveSlot.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot not available: slot_id=%d, user_id=%d", req.SlotID, principal.ID)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to reserve slot: slot_id=%d, user_id=%d, error=%v",
				req.SlotID, principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Slot reserved: booking_id=%d, slot_id=%d, user_id=%d",
		result.BookingID, result.SlotID, principal.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
