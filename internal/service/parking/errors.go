package parking

import "errors"

var (
	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("parking: parking lot not found")

	// ErrLotInUse возвращается при удалении парковки с занятыми или забронированными местами
	ErrLotInUse = errors.New("parking: parking lot has held slots")

	// ErrForbidden возвращается, когда у администратора нет права operations
	ErrForbidden = errors.New("parking: forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("parking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("parking: internal error")
)
