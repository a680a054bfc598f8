package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// StatsRepository интерфейс выборок для отчетов
type StatsRepository interface {
	GetPayments(ctx context.Context, period domain.DateRange) ([]domain.PaymentRecord, error)
	GetBookings(ctx context.Context, period domain.DateRange) ([]domain.BookingRecord, error)
	GetSlots(ctx context.Context) ([]domain.SlotRecord, error)
	CountLots(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountBookingsByStatus(ctx context.Context, status domain.PaymentStatus) (int64, error)
	CountOpenLogs(ctx context.Context) (int64, error)
	CountLogs(ctx context.Context) (int64, error)
	CountNotifications(ctx context.Context, notificationType *domain.NotificationType) (int64, error)
	SumCompletedRevenue(ctx context.Context, since *time.Time) (decimal.Decimal, error)
}

// ReportRepository интерфейс журнала отчетов
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	GetRecent(ctx context.Context, limit uint64) ([]*domain.Report, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
