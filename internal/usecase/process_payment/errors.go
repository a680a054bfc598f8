package process_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("process_payment: booking not found")

	// ErrForbidden возвращается, когда бронирование принадлежит другому пользователю
	ErrForbidden = errors.New("process_payment: forbidden")

	// ErrAlreadyPaid возвращается при повторной оплате бронирования
	ErrAlreadyPaid = errors.New("process_payment: booking is already paid")

	// ErrVehicleStillParked возвращается, когда нет завершенной стоянки в парковке бронирования
	ErrVehicleStillParked = errors.New("process_payment: vehicle has not exited the booked lot")

	// ErrInvalidState возвращается, когда бронирование нельзя оплатить в текущем состоянии
	ErrInvalidState = errors.New("process_payment: booking is not payable")

	// ErrInvalidPaymentMethod возвращается при неизвестном способе оплаты
	ErrInvalidPaymentMethod = errors.New("process_payment: invalid payment method")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("process_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("process_payment: internal error")
)
