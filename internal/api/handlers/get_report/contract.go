package get_report

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

type ReportService interface {
	Financial(ctx context.Context, principal *domain.Principal, req models.ReportRequest) (*models.FinancialReport, error)
	Occupancy(ctx context.Context, principal *domain.Principal, req models.ReportRequest) (*models.OccupancyReport, error)
	Performance(ctx context.Context, principal *domain.Principal, req models.ReportRequest) (*models.PerformanceReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
