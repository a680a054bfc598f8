package domain

import "time"

// PaymentStatus статус оплаты бронирования и статус платежа
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

// Booking бронирование парковочного места
//
// Пока бронирование в статусе Pending, SlotID не nil и место в статусе BOOKED или OCCUPIED.
// После оплаты SlotID очищается, а место освобождается; идентификаторы места и парковки
// сохраняются в платеже.
type Booking struct {
	ID            int64
	UserID        int64
	VehicleID     int64
	SlotID        *int64
	StartTime     time.Time
	EndTime       *time.Time
	PaymentStatus PaymentStatus
}

// IsPending возвращает true, если бронирование ожидает оплаты
func (b *Booking) IsPending() bool {
	return b.PaymentStatus == PaymentStatusPending
}

// HasSlot возвращает true, если у бронирования есть привязанное место
func (b *Booking) HasSlot() bool {
	return b.SlotID != nil
}

// IsOwnedBy проверяет, что бронирование принадлежит пользователю
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// Duration возвращает длительность бронирования (0, если оно еще не завершено)
func (b *Booking) Duration() time.Duration {
	if b.EndTime == nil {
		return 0
	}
	return b.EndTime.Sub(b.StartTime)
}
