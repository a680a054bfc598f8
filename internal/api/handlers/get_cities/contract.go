package get_cities

import "context"

type ParkingService interface {
	Cities(ctx context.Context) ([]string, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
