package log_entry

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("log_entry: booking not found")

	// ErrForbidden возвращается, когда бронирование принадлежит другому пользователю
	ErrForbidden = errors.New("log_entry: forbidden")

	// ErrInvalidState возвращается, когда бронирование не активно или автомобиль не совпадает
	ErrInvalidState = errors.New("log_entry: booking is not in a state that allows entry")

	// ErrDuplicateLog возвращается, когда автомобиль уже находится на парковке
	ErrDuplicateLog = errors.New("log_entry: vehicle already has an open entry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("log_entry: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("log_entry: internal error")
)
