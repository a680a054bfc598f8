package get_dashboard

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

type ReportService interface {
	Dashboard(ctx context.Context, principal *domain.Principal) (*models.Dashboard, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
