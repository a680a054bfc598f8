package notifier

import "time"

// Message событие уведомления пользователя, публикуемое в брокер
type Message struct {
	NotificationID int64     `json:"notification_id,omitempty"`
	UserID         int64     `json:"user_id"`
	AdminID        *int64    `json:"admin_id,omitempty"`
	Type           string    `json:"type"`
	Description    string    `json:"description"`
	PaymentID      *int64    `json:"payment_id,omitempty"`
	BookingID      *int64    `json:"booking_id,omitempty"`
	Amount         string    `json:"amount,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
