package get_recent_reports

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

type ReportService interface {
	RecentReports(ctx context.Context, principal *domain.Principal) ([]models.ReportEntry, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
