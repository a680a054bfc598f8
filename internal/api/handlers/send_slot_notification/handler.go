package send_slot_notification

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/notifications"
	"github.com/m04kA/SMC-ParkingService/internal/service/notifications/models"
)

const (
	msgInvalidSlotID      = "некорректный ID места"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "требуется авторизация"
	msgForbidden          = "доступ запрещен"
	msgSlotNotFound       = "парковочное место не найдено"
	msgNoActiveBooking    = "у места нет активного бронирования"
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

// Handle POST /api/v1/admin/slots/{slotId}/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	slotID, err := handlers.PathID(r, "slotId")
	if err != nil {
		h.logger.Warn("POST /admin/slots/{id}/notifications - %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req models.SendRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots/{id}/notifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	notification, err := h.service.SendToSlot(r.Context(), principal, slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, notifications.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, notifications.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, notifications.ErrNoActiveBooking):
			h.logger.Warn("POST /admin/slots/{id}/notifications - No active booking: slot_id=%d", slotID)
			handlers.RespondConflict(w, handlers.CodeInvalidState, msgNoActiveBooking)

		default:
			h.logger.Error("POST /admin/slots/{id}/notifications - Failed to send notification: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/slots/{id}/notifications - Notification sent: notification_id=%d, slot_id=%d",
		notification.ID, slotID)
	handlers.RespondJSON(w, http.StatusCreated, notification)
}
