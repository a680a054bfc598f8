package log_entry

import (
	"context"

	logEntry "github.com/m04kA/SMC-ParkingService/internal/usecase/log_entry"
)

type LogEntryUseCase interface {
	Execute(ctx context.Context, req *logEntry.Request) (*logEntry.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
