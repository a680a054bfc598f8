package vehiclelog

import "errors"

var (
	// ErrLogNotFound возвращается, когда запись о въезде не найдена
	ErrLogNotFound = errors.New("vehiclelog.repository: vehicle log not found")

	// ErrOpenLogExists возвращается, когда у автомобиля уже есть открытая запись о въезде
	ErrOpenLogExists = errors.New("vehiclelog.repository: vehicle already has an open log")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vehiclelog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vehiclelog.repository: failed to execute query")
)
