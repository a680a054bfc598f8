package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("bookings: payment not found")

	// ErrForbidden возвращается, когда бронирование или платеж принадлежат другому пользователю
	ErrForbidden = errors.New("bookings: forbidden")

	// ErrInvalidState возвращается, когда расчет стоимости невозможен (оплачено или въезда не было)
	ErrInvalidState = errors.New("bookings: invalid booking state")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
