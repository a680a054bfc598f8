package get_report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fakeReports struct {
	got models.ReportRequest
	err error
}

func (f *fakeReports) Financial(_ context.Context, _ *domain.Principal, req models.ReportRequest) (*models.FinancialReport, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.FinancialReport{
		ReportMeta:   models.ReportMeta{Type: string(domain.ReportFinancial), From: "2024-05-01", To: "2024-05-31"},
		Currency:     domain.Currency,
		TotalRevenue: decimal.NewFromInt(300),
	}, nil
}

func (f *fakeReports) Occupancy(_ context.Context, _ *domain.Principal, req models.ReportRequest) (*models.OccupancyReport, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.OccupancyReport{ReportMeta: models.ReportMeta{Type: string(domain.ReportOccupancy)}, PeakHours: "N/A"}, nil
}

func (f *fakeReports) Performance(_ context.Context, _ *domain.Principal, req models.ReportRequest) (*models.PerformanceReport, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.PerformanceReport{ReportMeta: models.ReportMeta{Type: string(domain.ReportPerformance)}}, nil
}

func serve(svc *fakeReports, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/reports/{type}", NewHandler(svc, logger.NewDiscard()).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	admin := domain.Principal{Kind: domain.PrincipalAdmin, ID: 1, Role: domain.RoleSuperAdmin}
	req = req.WithContext(domain.WithPrincipal(req.Context(), admin))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestParseReportRequest(t *testing.T) {
	req, err := ParseReportRequest(url.Values{
		"from": {"2024-05-01"}, "to": {"2024-05-31"}, "city": {"Colombo"},
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), req.Period.From)
	assert.Equal(t, time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC), req.Period.To)
	assert.Equal(t, "Colombo", req.City)
	assert.Empty(t, req.Location)

	_, err = ParseReportRequest(url.Values{"from": {"2024-05-01"}})
	assert.Error(t, err)

	_, err = ParseReportRequest(url.Values{"from": {"01/05/2024"}, "to": {"2024-05-31"}})
	assert.Error(t, err)
}

func TestHandle_FinancialJSON(t *testing.T) {
	svc := &fakeReports{}

	rec := serve(svc, "/admin/reports/financial?from=2024-05-01&to=2024-05-31&location=Fort")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Fort", svc.got.Location)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "300", body["totalRevenue"])
	assert.Equal(t, "LKR", body["currency"])
}

func TestHandle_FinancialCSV(t *testing.T) {
	rec := serve(&fakeReports{}, "/admin/reports/Financial?from=2024-05-01&to=2024-05-31&format=csv")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "financial-report-2024-05-01-to-2024-05-31.csv")
	assert.Contains(t, rec.Body.String(), "Total Revenue (LKR),300.00")
}

func TestHandle_OccupancyCSV(t *testing.T) {
	rec := serve(&fakeReports{}, "/admin/reports/occupancy?from=2024-05-01&to=2024-05-02&format=CSV")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "occupancy-report-2024-05-01-to-2024-05-02.csv")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		code   string
	}{
		{"missing period", "/admin/reports/financial", nil, http.StatusBadRequest, handlers.CodeInvalidInterval},
		{"reversed period", "/admin/reports/occupancy?from=2024-05-02&to=2024-05-01", reports.ErrInvalidInput, http.StatusBadRequest, handlers.CodeInvalidInterval},
		{"role", "/admin/reports/financial?from=2024-05-01&to=2024-05-02", reports.ErrForbidden, http.StatusForbidden, handlers.CodeForbidden},
		{"unknown type", "/admin/reports/weather?from=2024-05-01&to=2024-05-02", nil, http.StatusNotFound, handlers.CodeNotFound},
		{"performance csv", "/admin/reports/performance?from=2024-05-01&to=2024-05-02&format=csv", nil, http.StatusBadRequest, handlers.CodeInvalidInput},
		{"internal", "/admin/reports/performance?from=2024-05-01&to=2024-05-02", reports.ErrInternal, http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeReports{err: tt.err}, tt.target)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}
