package middleware

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// TokenParser проверяет bearer токен и возвращает субъекта
type TokenParser interface {
	Parse(token string) (*domain.Principal, error)
}

// MetricsCollector сборщик метрик HTTP запросов
type MetricsCollector interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
