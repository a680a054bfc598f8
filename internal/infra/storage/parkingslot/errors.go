package parkingslot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда место не найдено
	ErrSlotNotFound = errors.New("parkingslot.repository: parking slot not found")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("parkingslot.repository: invalid slot status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("parkingslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("parkingslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("parkingslot.repository: failed to scan row")
)
