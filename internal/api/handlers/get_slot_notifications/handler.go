package get_slot_notifications

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/notifications"
)

const (
	msgInvalidSlotID    = "некорректный ID места"
	msgMissingPrincipal = "требуется авторизация"
	msgForbidden        = "доступ запрещен"
	msgSlotNotFound     = "парковочное место не найдено"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/slots/{slotId}/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	slotID, err := handlers.PathID(r, "slotId")
	if err != nil {
		h.logger.Warn("GET /admin/slots/{id}/notifications - %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	items, err := h.service.GetSlotNotifications(r.Context(), principal, slotID)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, notifications.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("GET /admin/slots/{id}/notifications - Failed to list notifications: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}
