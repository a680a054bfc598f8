package register_vehicle

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/accounts"
	"github.com/m04kA/SMC-ParkingService/internal/service/accounts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "требуется авторизация"
	msgForbidden          = "доступ запрещен"
	msgPlateTaken         = "автомобиль с таким номером уже зарегистрирован"
)

type Handler struct {
	service AccountService
	logger  Logger
}

func NewHandler(service AccountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/vehicles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req models.RegisterVehicleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vehicles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	vehicle, err := h.service.RegisterVehicle(r.Context(), principal, &req)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrInvalidInput):
			h.logger.Warn("POST /vehicles - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, accounts.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, accounts.ErrPlateTaken):
			h.logger.Warn("POST /vehicles - Plate already registered: user_id=%d", principal.ID)
			handlers.RespondConflict(w, handlers.CodeConflict, msgPlateTaken)

		default:
			h.logger.Error("POST /vehicles - Failed to register vehicle: user_id=%d, error=%v", principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vehicles - Vehicle registered: vehicle_id=%d, user_id=%d", vehicle.ID, principal.ID)
	handlers.RespondJSON(w, http.StatusCreated, vehicle)
}
