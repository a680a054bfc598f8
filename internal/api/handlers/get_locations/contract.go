package get_locations

import "context"

type ParkingService interface {
	Locations(ctx context.Context, city string) ([]string, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
