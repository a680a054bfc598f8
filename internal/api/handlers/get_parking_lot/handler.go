package get_parking_lot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking"
)

const (
	msgInvalidLotID = "некорректный ID парковки"
	msgNotFound     = "парковка не найдена"
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

// Handle GET /api/v1/parking-lots/{lotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := handlers.PathID(r, "lotId")
	if err != nil {
		h.logger.Warn("GET /parking-lots/{id} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	lot, err := h.service.GetLot(r.Context(), lotID)
	if err != nil {
		switch {
		case errors.Is(err, parking.ErrLotNotFound):
			h.logger.Warn("GET /parking-lots/{id} - Parking lot not found: lot_id=%d", lotID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /parking-lots/{id} - Failed to get parking lot: lot_id=%d, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, lot)
}
