package log_exit

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("log_exit: booking not found")

	// ErrNoActiveEntry возвращается, когда у автомобиля нет открытой записи в парковке бронирования
	ErrNoActiveEntry = errors.New("log_exit: no active entry for this booking")

	// ErrForbidden возвращается, когда бронирование принадлежит другому пользователю
	ErrForbidden = errors.New("log_exit: forbidden")

	// ErrInvalidState возвращается, когда бронирование уже оплачено или без места
	ErrInvalidState = errors.New("log_exit: booking is not in a state that allows exit")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("log_exit: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("log_exit: internal error")
)
