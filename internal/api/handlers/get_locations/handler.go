package get_locations

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking"
)

const msgInvalidCity = "некорректное название города"

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

// Handle GET /api/v1/cities/{city}/locations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]

	locations, err := h.service.Locations(r.Context(), city)
	if err != nil {
		switch {
		case errors.Is(err, parking.ErrInvalidInput):
			h.logger.Warn("GET /cities/{city}/locations - Invalid city: %q", city)
			handlers.RespondBadRequest(w, msgInvalidCity)

		default:
			h.logger.Error("GET /cities/{city}/locations - Failed to list locations: city=%s, error=%v", city, err)
			handlers.RespondInternalError(w)
		}
		return
	}
	handlers.RespondJSON(w, http.StatusOK, locations)
}
