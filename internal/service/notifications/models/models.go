package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SendRequest запрос на отправку уведомления пользователю места
type SendRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// NotificationResponse уведомление
type NotificationResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	AdminID     *int64    `json:"adminId,omitempty"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromDomainNotification конвертирует domain.Notification в NotificationResponse
func FromDomainNotification(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		UserID:      n.UserID,
		AdminID:     n.AdminID,
		Type:        string(n.Type),
		Description: n.Description,
		CreatedAt:   n.CreatedAt,
	}
}

// FromDomainNotificationList конвертирует список уведомлений
func FromDomainNotificationList(items []*domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, FromDomainNotification(n))
	}
	return out
}
