package reserve_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда место не найдено
	ErrSlotNotFound = errors.New("reserve_slot: slot not found")

	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("reserve_slot: vehicle not found")

	// ErrForbidden возвращается, когда запрос не от пользователя или автомобиль чужой
	ErrForbidden = errors.New("reserve_slot: forbidden")

	// ErrSlotUnavailable возвращается, когда место уже забронировано или занято
	ErrSlotUnavailable = errors.New("reserve_slot: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
