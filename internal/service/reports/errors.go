package reports

import "errors"

var (
	// ErrForbidden возвращается, когда у администратора нет права на отчет
	ErrForbidden = errors.New("reports: forbidden")

	// ErrInvalidInput возвращается при некорректном периоде отчета
	ErrInvalidInput = errors.New("reports: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reports: internal error")
)
