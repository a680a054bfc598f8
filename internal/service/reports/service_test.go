package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/usecasetest"
)

type fakeStats struct {
	payments []domain.PaymentRecord
	bookings []domain.BookingRecord
	slots    []domain.SlotRecord
	lots     int64
	users    int64
	byStatus map[domain.PaymentStatus]int64
	openLogs int64
	logs     int64
	notes    map[domain.NotificationType]int64
	revenue  decimal.Decimal
	today    decimal.Decimal
	since    *time.Time
	err      error
}

func (f *fakeStats) GetPayments(_ context.Context, _ domain.DateRange) ([]domain.PaymentRecord, error) {
	return f.payments, f.err
}

func (f *fakeStats) GetBookings(_ context.Context, _ domain.DateRange) ([]domain.BookingRecord, error) {
	return f.bookings, f.err
}

func (f *fakeStats) GetSlots(_ context.Context) ([]domain.SlotRecord, error) {
	return f.slots, f.err
}

func (f *fakeStats) CountLots(_ context.Context) (int64, error) {
	return f.lots, f.err
}

func (f *fakeStats) CountUsers(_ context.Context) (int64, error) {
	return f.users, f.err
}

func (f *fakeStats) CountBookingsByStatus(_ context.Context, status domain.PaymentStatus) (int64, error) {
	return f.byStatus[status], f.err
}

func (f *fakeStats) CountOpenLogs(_ context.Context) (int64, error) {
	return f.openLogs, f.err
}

func (f *fakeStats) CountLogs(_ context.Context) (int64, error) {
	return f.logs, f.err
}

func (f *fakeStats) CountNotifications(_ context.Context, notificationType *domain.NotificationType) (int64, error) {
	if notificationType == nil {
		var total int64
		for _, n := range f.notes {
			total += n
		}
		return total, f.err
	}
	return f.notes[*notificationType], f.err
}

func (f *fakeStats) SumCompletedRevenue(_ context.Context, since *time.Time) (decimal.Decimal, error) {
	if since != nil {
		f.since = since
		return f.today, f.err
	}
	return f.revenue, f.err
}

type fakeReports struct {
	saved []*domain.Report
	err   error
}

func (f *fakeReports) Create(_ context.Context, report *domain.Report) (*domain.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	saved := *report
	saved.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, &saved)
	return &saved, nil
}

func (f *fakeReports) GetRecent(_ context.Context, limit uint64) ([]*domain.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	if uint64(len(f.saved)) > limit {
		return f.saved[:limit], nil
	}
	return f.saved, nil
}

type passThroughTx struct{}

func (passThroughTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var now = time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC)

func newTestService(stats *fakeStats, reps *fakeReports) *Service {
	s := NewService(stats, reps, passThroughTx{}, &usecasetest.Logger{})
	s.timeProvider = usecasetest.NewClock(now)
	return s
}

func admin(role domain.AdminRole) *domain.Principal {
	return &domain.Principal{Kind: domain.PrincipalAdmin, ID: 7, Role: role}
}

func may() models.ReportRequest {
	return models.ReportRequest{Period: domain.DateRange{From: at(1, 0), To: at(31, 23)}}
}

func TestFinancial_RecordsAudit(t *testing.T) {
	stats := &fakeStats{payments: []domain.PaymentRecord{
		payment(1, 200, domain.PaymentStatusCompleted, domain.PaymentMethodCard, at(1, 10), "Colombo", "Fort"),
	}}
	reps := &fakeReports{}
	s := newTestService(stats, reps)

	req := may()
	req.City = " Colombo "
	report, err := s.Financial(context.Background(), admin(domain.RoleFinanceOfficer), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.ReportID)
	assert.Equal(t, "Financial", report.Type)
	assert.Equal(t, "2024-05-01", report.From)
	assert.Equal(t, "2024-05-31", report.To)
	assert.True(t, report.FilterApplied)
	assert.Equal(t, "Colombo", report.FilterCity)
	assert.Equal(t, now, report.GeneratedAt)
	assert.True(t, decimal.NewFromInt(200).Equal(report.TotalRevenue))

	require.Len(t, reps.saved, 1)
	assert.Equal(t, domain.ReportFinancial, reps.saved[0].Type)
	assert.Equal(t, int64(7), reps.saved[0].AdminID)
}

func TestReports_Authorization(t *testing.T) {
	tests := []struct {
		name   string
		report domain.ReportType
		who    *domain.Principal
		err    error
	}{
		{"finance officer financial", domain.ReportFinancial, admin(domain.RoleFinanceOfficer), nil},
		{"super admin financial", domain.ReportFinancial, admin(domain.RoleSuperAdmin), nil},
		{"operations financial", domain.ReportFinancial, admin(domain.RoleOperationsManager), ErrForbidden},
		{"operations occupancy", domain.ReportOccupancy, admin(domain.RoleOperationsManager), nil},
		{"finance occupancy", domain.ReportOccupancy, admin(domain.RoleFinanceOfficer), ErrForbidden},
		{"it performance", domain.ReportPerformance, admin(domain.RoleITSupport), nil},
		{"operations performance", domain.ReportPerformance, admin(domain.RoleOperationsManager), nil},
		{"security performance", domain.ReportPerformance, admin(domain.RoleSecuritySupervisor), ErrForbidden},
		{"user", domain.ReportFinancial, &domain.Principal{Kind: domain.PrincipalUser, ID: 1}, ErrForbidden},
		{"anonymous", domain.ReportOccupancy, nil, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reps := &fakeReports{}
			s := newTestService(&fakeStats{}, reps)

			var err error
			switch tt.report {
			case domain.ReportFinancial:
				_, err = s.Financial(context.Background(), tt.who, may())
			case domain.ReportOccupancy:
				_, err = s.Occupancy(context.Background(), tt.who, may())
			case domain.ReportPerformance:
				_, err = s.Performance(context.Background(), tt.who, may())
			}

			if tt.err == nil {
				require.NoError(t, err)
				assert.Len(t, reps.saved, 1)
				return
			}
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, reps.saved)
		})
	}
}

func TestReports_InvalidPeriod(t *testing.T) {
	s := newTestService(&fakeStats{}, &fakeReports{})

	_, err := s.Occupancy(context.Background(), admin(domain.RoleSuperAdmin), models.ReportRequest{
		Period: domain.DateRange{From: at(10, 0), To: at(1, 0)},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Occupancy(context.Background(), admin(domain.RoleSuperAdmin), models.ReportRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReports_RepositoryErrors(t *testing.T) {
	s := newTestService(&fakeStats{err: errors.New("connection refused")}, &fakeReports{})
	_, err := s.Occupancy(context.Background(), admin(domain.RoleSuperAdmin), may())
	assert.ErrorIs(t, err, ErrInternal)

	s = newTestService(&fakeStats{}, &fakeReports{err: errors.New("connection refused")})
	_, err = s.Financial(context.Background(), admin(domain.RoleSuperAdmin), may())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestPerformance_IgnoresLocationFilter(t *testing.T) {
	s := newTestService(&fakeStats{lots: 3}, &fakeReports{})

	req := may()
	req.City = "Colombo"
	report, err := s.Performance(context.Background(), admin(domain.RoleITSupport), req)
	require.NoError(t, err)

	assert.False(t, report.FilterApplied)
	assert.Equal(t, int64(3), report.TotalLots)
}

func TestDashboard_SectionsFollowRole(t *testing.T) {
	stats := &fakeStats{
		slots: append(
			slotRecords("Colombo", "Fort", domain.SlotStatusAvailable, domain.SlotStatusOccupied),
			slotRecords("Kandy", "Lake", domain.SlotStatusAvailable)...,
		),
		users:    12,
		byStatus: map[domain.PaymentStatus]int64{domain.PaymentStatusPending: 4, domain.PaymentStatusCompleted: 9},
		openLogs: 2,
		logs:     30,
		notes:    map[domain.NotificationType]int64{domain.NotificationSecurityIncident: 1, domain.NotificationError: 3, domain.NotificationGeneral: 6},
		revenue:  decimal.NewFromInt(5000),
		today:    decimal.NewFromInt(400),
	}

	t.Run("operations manager", func(t *testing.T) {
		s := newTestService(stats, &fakeReports{})
		d, err := s.Dashboard(context.Background(), admin(domain.RoleOperationsManager))
		require.NoError(t, err)

		require.NotNil(t, d.Operations)
		assert.Nil(t, d.Finance)
		assert.Nil(t, d.Customer)
		assert.Nil(t, d.Security)
		assert.Nil(t, d.IT)
		assert.Equal(t, int64(3), d.Operations.TotalSlots)
		assert.Equal(t, int64(2), d.Operations.TotalAvailableSlots)
		assert.Equal(t, int64(1), d.Operations.TotalActiveSlots)
		assert.Equal(t, map[string]int64{"Colombo": 1, "Kandy": 1}, d.Operations.AvailableSlotsByCity)
	})

	t.Run("super admin", func(t *testing.T) {
		s := newTestService(stats, &fakeReports{})
		d, err := s.Dashboard(context.Background(), admin(domain.RoleSuperAdmin))
		require.NoError(t, err)

		assert.Len(t, d.Capabilities, len(domain.AllCapabilities))
		require.NotNil(t, d.Finance)
		assert.True(t, decimal.NewFromInt(400).Equal(d.Finance.TodayRevenue))
		assert.True(t, decimal.NewFromInt(5000).Equal(d.Finance.TotalRevenue))
		assert.Equal(t, int64(4), d.Finance.PendingPayments)
		require.NotNil(t, stats.since)
		assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), *stats.since)

		require.NotNil(t, d.Customer)
		assert.Equal(t, int64(12), d.Customer.TotalUsers)
		assert.Equal(t, int64(9), d.Customer.CompletedBookings)

		require.NotNil(t, d.Security)
		assert.Equal(t, int64(2), d.Security.ActiveVehicles)
		assert.Equal(t, int64(1), d.Security.SecurityIncidents)
		assert.Equal(t, int64(30), d.Security.TotalVehicleLogs)

		require.NotNil(t, d.IT)
		assert.Equal(t, int64(3), d.IT.ErrorLogs)
		assert.Equal(t, int64(10), d.IT.TotalNotifications)
	})

	t.Run("user is forbidden", func(t *testing.T) {
		s := newTestService(stats, &fakeReports{})
		_, err := s.Dashboard(context.Background(), &domain.Principal{Kind: domain.PrincipalUser, ID: 1})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestRecentReports(t *testing.T) {
	reps := &fakeReports{}
	s := newTestService(&fakeStats{}, reps)

	_, err := s.Occupancy(context.Background(), admin(domain.RoleOperationsManager), may())
	require.NoError(t, err)

	entries, err := s.RecentReports(context.Background(), admin(domain.RoleITSupport))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Occupancy", entries[0].Type)
	assert.Equal(t, int64(7), entries[0].AdminID)

	_, err = s.RecentReports(context.Background(), nil)
	assert.ErrorIs(t, err, ErrForbidden)
}
