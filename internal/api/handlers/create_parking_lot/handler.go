package create_parking_lot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "требуется авторизация"
	msgForbidden          = "управление парковками доступно только операционному отделу"
)

type Handler struct {
	service ParkingService
	logger  Logger
}

func NewHandler(service ParkingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/parking-lots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req models.CreateLotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/parking-lots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	lot, err := h.service.CreateLot(r.Context(), principal, &req)
	if err != nil {
		switch {
		case errors.Is(err, parking.ErrForbidden):
			h.logger.Warn("POST /admin/parking-lots - Forbidden: admin_id=%d, role=%s", principal.ID, principal.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, parking.ErrInvalidInput):
			h.logger.Warn("POST /admin/parking-lots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/parking-lots - Failed to create parking lot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/parking-lots - Parking lot created: lot_id=%d, slots=%d, admin_id=%d",
		lot.ID, lot.TotalSlots, principal.ID)
	handlers.RespondJSON(w, http.StatusCreated, lot)
}
