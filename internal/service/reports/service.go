// Package reports строит отчеты и дашборд администратора
// Все показатели пересчитываются при каждом запросе, кеширования нет
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

const defaultRecentReports = 20

// Service сервис отчетов
type Service struct {
	statsRepo    StatsRepository
	reportRepo   ReportRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(
	statsRepo StatsRepository,
	reportRepo ReportRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		statsRepo:    statsRepo,
		reportRepo:   reportRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Financial строит финансовый отчет
func (s *Service) Financial(ctx context.Context, principal *domain.Principal, req models.ReportRequest) (*models.FinancialReport, error) {
	if err := s.authorize(principal, domain.ReportFinancial, req); err != nil {
		s.logger.Warn("Financial: %v", err)
		return nil, err
	}

	var payments []domain.PaymentRecord
	var bookings []domain.BookingRecord
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if payments, err = s.statsRepo.GetPayments(txCtx, req.Period); err != nil {
			return err
		}
		bookings, err = s.statsRepo.GetBookings(txCtx, req.Period)
		return err
	})
	if err != nil {
		s.logger.Error("Financial: failed to read data: %v", err)
		return nil, fmt.Errorf("%w: Financial - read data: %v", ErrInternal, err)
	}

	report := BuildFinancial(payments, bookings, req.Filter())

	meta, err := s.record(ctx, principal, domain.ReportFinancial, req)
	if err != nil {
		return nil, err
	}
	report.ReportMeta = meta

	s.logger.Info("Financial: report id=%d by admin=%d, payments=%d", meta.ReportID, principal.ID, report.TotalPayments)
	return &report, nil
}

// Occupancy строит отчет о загрузке
func (s *Service) Occupancy(ctx context.Context, principal *domain.Principal, req models.ReportRequest) (*models.OccupancyReport, error) {
	if err := s.authorize(principal, domain.ReportOccupancy, req); err != nil {
		s.logger.Warn("Occupancy: %v", err)
		return nil, err
	}

	var slots []domain.SlotRecord
	var bookings []domain.BookingRecord
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if slots, err = s.statsRepo.GetSlots(txCtx); err != nil {
			return err
		}
		bookings, err = s.statsRepo.GetBookings(txCtx, req.Period)
		return err
	})
	if err != nil {
		s.logger.Error("Occupancy: failed to read data: %v", err)
		return nil, fmt.Errorf("%w: Occupancy - read data: %v", ErrInternal, err)
	}

	report := BuildOccupancy(slots, bookings, req.Filter())

	meta, err := s.record(ctx, principal, domain.ReportOccupancy, req)
	if err != nil {
		return nil, err
	}
	report.ReportMeta = meta

	s.logger.Info("Occupancy: report id=%d by admin=%d, slots=%d", meta.ReportID, principal.ID, report.TotalSlots)
	return &report, nil
}

// Performance строит отчет о производительности (без фильтра по местоположению)
func (s *Service) Performance(ctx context.Context, principal *domain.Principal, req models.ReportRequest) (*models.PerformanceReport, error) {
	req.City, req.Location = "", ""
	if err := s.authorize(principal, domain.ReportPerformance, req); err != nil {
		s.logger.Warn("Performance: %v", err)
		return nil, err
	}

	var in PerformanceInput
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if in.Payments, err = s.statsRepo.GetPayments(txCtx, req.Period); err != nil {
			return err
		}
		if in.Bookings, err = s.statsRepo.GetBookings(txCtx, req.Period); err != nil {
			return err
		}
		if in.Slots, err = s.statsRepo.GetSlots(txCtx); err != nil {
			return err
		}
		in.TotalLots, err = s.statsRepo.CountLots(txCtx)
		return err
	})
	if err != nil {
		s.logger.Error("Performance: failed to read data: %v", err)
		return nil, fmt.Errorf("%w: Performance - read data: %v", ErrInternal, err)
	}

	report := BuildPerformance(in)

	meta, err := s.record(ctx, principal, domain.ReportPerformance, req)
	if err != nil {
		return nil, err
	}
	report.ReportMeta = meta

	s.logger.Info("Performance: report id=%d by admin=%d", meta.ReportID, principal.ID)
	return &report, nil
}

// Dashboard собирает разделы дашборда, доступные роли администратора
func (s *Service) Dashboard(ctx context.Context, principal *domain.Principal) (*models.Dashboard, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	now := s.timeProvider.Now()
	role := principal.Role
	dashboard := &models.Dashboard{
		AdminID:      principal.ID,
		AdminRole:    role,
		Capabilities: role.Capabilities(),
		GeneratedAt:  now,
	}

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		if role.Can(domain.CapabilityOperations) {
			section, err := s.operationsSection(txCtx)
			if err != nil {
				return err
			}
			dashboard.Operations = section
		}
		if role.Can(domain.CapabilityFinance) {
			section, err := s.financeSection(txCtx, now)
			if err != nil {
				return err
			}
			dashboard.Finance = section
		}
		if role.Can(domain.CapabilityCustomer) {
			section, err := s.customerSection(txCtx)
			if err != nil {
				return err
			}
			dashboard.Customer = section
		}
		if role.Can(domain.CapabilitySecurity) {
			section, err := s.securitySection(txCtx)
			if err != nil {
				return err
			}
			dashboard.Security = section
		}
		if role.Can(domain.CapabilityIT) {
			section, err := s.itSection(txCtx)
			if err != nil {
				return err
			}
			dashboard.IT = section
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Dashboard: admin=%d: %v", principal.ID, err)
		return nil, fmt.Errorf("%w: Dashboard - read data: %v", ErrInternal, err)
	}

	return dashboard, nil
}

// RecentReports возвращает журнал последних построенных отчетов
func (s *Service) RecentReports(ctx context.Context, principal *domain.Principal) ([]models.ReportEntry, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	reports, err := s.reportRepo.GetRecent(ctx, defaultRecentReports)
	if err != nil {
		s.logger.Error("RecentReports: %v", err)
		return nil, fmt.Errorf("%w: RecentReports - repository error: %v", ErrInternal, err)
	}

	entries := make([]models.ReportEntry, 0, len(reports))
	for _, r := range reports {
		entries = append(entries, models.FromDomainReport(r))
	}
	return entries, nil
}

func (s *Service) authorize(principal *domain.Principal, reportType domain.ReportType, req models.ReportRequest) error {
	if !principal.IsAdmin() {
		return fmt.Errorf("%w: %s report requires an administrator", ErrForbidden, reportType)
	}
	if !reportType.CanGenerate(principal.Role) {
		return fmt.Errorf("%w: role %s cannot generate %s report", ErrForbidden, principal.Role, reportType)
	}
	if req.Period.From.IsZero() || req.Period.To.IsZero() {
		return fmt.Errorf("%w: report period is required", ErrInvalidInput)
	}
	if req.Period.To.Before(req.Period.From) {
		return fmt.Errorf("%w: period end is before start", ErrInvalidInput)
	}
	return nil
}

// record добавляет запись в журнал отчетов и возвращает метаданные отчета
func (s *Service) record(ctx context.Context, principal *domain.Principal, reportType domain.ReportType, req models.ReportRequest) (models.ReportMeta, error) {
	generatedAt := s.timeProvider.Now()

	saved, err := s.reportRepo.Create(ctx, &domain.Report{
		Type:        reportType,
		GeneratedAt: generatedAt,
		AdminID:     principal.ID,
	})
	if err != nil {
		s.logger.Error("record: failed to save %s report: %v", reportType, err)
		return models.ReportMeta{}, fmt.Errorf("%w: save report: %v", ErrInternal, err)
	}

	filter := req.Filter()
	return models.ReportMeta{
		ReportID:       saved.ID,
		Type:           string(reportType),
		From:           req.Period.From.Format(domain.DateFormat),
		To:             req.Period.To.Format(domain.DateFormat),
		GeneratedAt:    generatedAt,
		FilterApplied:  !filter.IsEmpty(),
		FilterCity:     filter.City,
		FilterLocation: filter.Location,
	}, nil
}

func (s *Service) operationsSection(ctx context.Context) (*models.OperationsSection, error) {
	slots, err := s.statsRepo.GetSlots(ctx)
	if err != nil {
		return nil, err
	}

	section := &models.OperationsSection{AvailableSlotsByCity: make(map[string]int64)}
	for _, slot := range slots {
		section.TotalSlots++
		switch slot.Status {
		case domain.SlotStatusAvailable:
			section.TotalAvailableSlots++
			section.AvailableSlotsByCity[slot.City]++
		case domain.SlotStatusOccupied:
			section.TotalActiveSlots++
		}
	}
	return section, nil
}

func (s *Service) financeSection(ctx context.Context, now time.Time) (*models.FinanceSection, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := s.statsRepo.SumCompletedRevenue(ctx, ptr.Ptr(startOfDay))
	if err != nil {
		return nil, err
	}
	total, err := s.statsRepo.SumCompletedRevenue(ctx, nil)
	if err != nil {
		return nil, err
	}
	pending, err := s.statsRepo.CountBookingsByStatus(ctx, domain.PaymentStatusPending)
	if err != nil {
		return nil, err
	}
	return &models.FinanceSection{TodayRevenue: today, TotalRevenue: total, PendingPayments: pending}, nil
}

func (s *Service) customerSection(ctx context.Context) (*models.CustomerSection, error) {
	users, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.statsRepo.CountBookingsByStatus(ctx, domain.PaymentStatusPending)
	if err != nil {
		return nil, err
	}
	completed, err := s.statsRepo.CountBookingsByStatus(ctx, domain.PaymentStatusCompleted)
	if err != nil {
		return nil, err
	}
	return &models.CustomerSection{TotalUsers: users, PendingBookings: pending, CompletedBookings: completed}, nil
}

func (s *Service) securitySection(ctx context.Context) (*models.SecuritySection, error) {
	active, err := s.statsRepo.CountOpenLogs(ctx)
	if err != nil {
		return nil, err
	}
	incidents, err := s.statsRepo.CountNotifications(ctx, ptr.Ptr(domain.NotificationSecurityIncident))
	if err != nil {
		return nil, err
	}
	logs, err := s.statsRepo.CountLogs(ctx)
	if err != nil {
		return nil, err
	}
	return &models.SecuritySection{ActiveVehicles: active, SecurityIncidents: incidents, TotalVehicleLogs: logs}, nil
}

func (s *Service) itSection(ctx context.Context) (*models.ITSection, error) {
	errorLogs, err := s.statsRepo.CountNotifications(ctx, ptr.Ptr(domain.NotificationError))
	if err != nil {
		return nil, err
	}
	total, err := s.statsRepo.CountNotifications(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &models.ITSection{ErrorLogs: errorLogs, TotalNotifications: total}, nil
}
