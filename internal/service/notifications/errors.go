package notifications

import "errors"

var (
	// ErrSlotNotFound возвращается, когда место не найдено
	ErrSlotNotFound = errors.New("notifications: parking slot not found")

	// ErrNoActiveBooking возвращается, когда у места нет активного бронирования
	ErrNoActiveBooking = errors.New("notifications: slot has no active booking")

	// ErrForbidden возвращается, когда операция недоступна субъекту
	ErrForbidden = errors.New("notifications: forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("notifications: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("notifications: internal error")
)
