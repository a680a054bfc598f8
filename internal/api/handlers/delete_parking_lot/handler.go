package delete_parking_lot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking"
)

const (
	msgInvalidLotID     = "некорректный ID парковки"
	msgMissingPrincipal = "требуется авторизация"
	msgNotFound         = "парковка не найдена"
	msgForbidden        = "управление парковками доступно только операционному отделу"
	msgLotInUse         = "на парковке есть забронированные или занятые места"
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

// Handle DELETE /api/v1/admin/parking-lots/{lotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	lotID, err := handlers.PathID(r, "lotId")
	if err != nil {
		h.logger.Warn("DELETE /admin/parking-lots/{id} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	if err := h.service.DeleteLot(r.Context(), principal, lotID); err != nil {
		switch {
		case errors.Is(err, parking.ErrForbidden):
			h.logger.Warn("DELETE /admin/parking-lots/{id} - Forbidden: admin_id=%d, role=%s", principal.ID, principal.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, parking.ErrLotNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, parking.ErrLotInUse):
			h.logger.Warn("DELETE /admin/parking-lots/{id} - Lot in use: lot_id=%d", lotID)
			handlers.RespondConflict(w, handlers.CodeConflict, msgLotInUse)

		default:
			h.logger.Error("DELETE /admin/parking-lots/{id} - Failed to delete parking lot: lot_id=%d, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/parking-lots/{id} - Parking lot deleted: lot_id=%d, admin_id=%d", lotID, principal.ID)
	w.WriteHeader(http.StatusNoContent)
}
