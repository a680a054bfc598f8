package domain

import "time"

// NotificationType тип уведомления
type NotificationType string

const (
	NotificationNone             NotificationType = "NONE"
	NotificationGeneral          NotificationType = "GENERAL"
	NotificationPaymentReminder  NotificationType = "PAYMENT_REMINDER"
	NotificationOverstay         NotificationType = "OVERSTAY"
	NotificationSecurityIncident NotificationType = "SECURITY_INCIDENT"
	NotificationError            NotificationType = "ERROR"
)

// ParseNotificationType разбирает тип уведомления, пустая строка означает GENERAL
func ParseNotificationType(s string) (NotificationType, bool) {
	if s == "" {
		return NotificationGeneral, true
	}
	switch t := NotificationType(s); t {
	case NotificationNone, NotificationGeneral, NotificationPaymentReminder,
		NotificationOverstay, NotificationSecurityIncident, NotificationError:
		return t, true
	}
	return "", false
}

// Notification уведомление пользователю
type Notification struct {
	ID          int64
	UserID      int64
	AdminID     *int64 // nil для системных уведомлений
	Type        NotificationType
	Description string
	CreatedAt   time.Time
}
