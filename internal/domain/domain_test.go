package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStatistics_ZeroTotal(t *testing.T) {
	var s SlotStatistics
	assert.Equal(t, 0.0, s.OccupancyRate())
	assert.Equal(t, 0.0, s.AvailablePercentage())
}

func TestSlotStatistics_Percentages(t *testing.T) {
	var s SlotStatistics
	s.Add(SlotStatusAvailable, 1)
	s.Add(SlotStatusBooked, 1)
	s.Add(SlotStatusOccupied, 1)

	assert.EqualValues(t, 3, s.Total)
	assert.Equal(t, 33.33, s.AvailablePercentage())
	assert.Equal(t, 66.67, s.OccupancyRate())
}

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		in   string
		want PaymentMethod
		ok   bool
	}{
		{"card", PaymentMethodCard, true},
		{"CASH", PaymentMethodCash, true},
		{" Arrival ", PaymentMethodArrival, true},
		{"bitcoin", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePaymentMethod(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRoleCapabilities(t *testing.T) {
	for _, c := range AllCapabilities {
		assert.True(t, RoleSuperAdmin.Can(c))
	}
	assert.True(t, RoleFinanceOfficer.Can(CapabilityFinance))
	assert.False(t, RoleFinanceOfficer.Can(CapabilityOperations))
	assert.False(t, AdminRole("JANITOR").IsValid())
	assert.Empty(t, AdminRole("JANITOR").Capabilities())
}

func TestReportType_CanGenerate(t *testing.T) {
	assert.True(t, ReportFinancial.CanGenerate(RoleFinanceOfficer))
	assert.False(t, ReportFinancial.CanGenerate(RoleOperationsManager))
	assert.True(t, ReportOccupancy.CanGenerate(RoleOperationsManager))
	assert.True(t, ReportPerformance.CanGenerate(RoleITSupport))
	assert.True(t, ReportPerformance.CanGenerate(RoleOperationsManager))
	assert.False(t, ReportPerformance.CanGenerate(RoleCustomerServiceOfficer))
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	require.False(t, ok)

	ctx := WithPrincipal(context.Background(), Principal{Kind: PrincipalUser, ID: 7})
	p, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.True(t, p.IsUser())
	assert.False(t, p.IsAdmin())
	assert.False(t, p.Can(CapabilityFinance))

	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.IsUser())
}

func TestDateRange_Contains(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := DateRange{From: from, To: from.Add(24 * time.Hour)}
	assert.True(t, r.Contains(from))
	assert.True(t, r.Contains(r.To))
	assert.False(t, r.Contains(from.Add(-time.Second)))
}
