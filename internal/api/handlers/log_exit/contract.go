package log_exit

import (
	"context"

	logExit "github.com/m04kA/SMC-ParkingService/internal/usecase/log_exit"
)

type LogExitUseCase interface {
	Execute(ctx context.Context, req *logExit.Request) (*logExit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
