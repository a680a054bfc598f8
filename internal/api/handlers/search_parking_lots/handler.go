package search_parking_lots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking"
)

const msgInvalidQuery = "некорректные параметры поиска"

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

// Handle GET /api/v1/parking-lots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /parking-lots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	lots, err := h.service.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, parking.ErrInvalidInput):
			h.logger.Warn("GET /parking-lots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /parking-lots - Failed to search parking lots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /parking-lots - Found %d parking lots", len(lots))
	handlers.RespondJSON(w, http.StatusOK, lots)
}
