package billing

import "errors"

var (
	// ErrInvalidInterval возвращается, когда время выезда раньше времени въезда
	ErrInvalidInterval = errors.New("billing: exit time is before entry time")

	// ErrInvalidRate возвращается при отрицательной цене за час
	ErrInvalidRate = errors.New("billing: hourly rate must not be negative")
)
