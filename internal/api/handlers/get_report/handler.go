package get_report

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

const (
	msgMissingPrincipal = "требуется авторизация"
	msgUnknownReport    = "неизвестный тип отчета"
	msgInvalidPeriod    = "некорректный период, ожидаются даты from и to в формате YYYY-MM-DD"
	msgForbidden        = "роль администратора не позволяет построить этот отчет"
	msgCSVUnsupported   = "выгрузка в CSV недоступна для этого отчета"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reports/{type}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	kind := strings.ToLower(mux.Vars(r)["type"])
	asCSV := strings.EqualFold(r.URL.Query().Get("format"), formatCSV)

	req, err := ParseReportRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/reports/%s - Invalid period: %v", kind, err)
		handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidInterval, msgInvalidPeriod)
		return
	}

	var (
		payload interface{}
		csvBuf  bytes.Buffer
	)

	switch kind {
	case "financial":
		var report *models.FinancialReport
		if report, err = h.service.Financial(r.Context(), principal, req); err == nil {
			payload = report
			if asCSV {
				err = reports.WriteFinancialCSV(&csvBuf, report)
			}
		}

	case "occupancy":
		var report *models.OccupancyReport
		if report, err = h.service.Occupancy(r.Context(), principal, req); err == nil {
			payload = report
			if asCSV {
				err = reports.WriteOccupancyCSV(&csvBuf, report)
			}
		}

	case "performance":
		if asCSV {
			handlers.RespondBadRequest(w, msgCSVUnsupported)
			return
		}
		payload, err = h.service.Performance(r.Context(), principal, req)

	default:
		handlers.RespondNotFound(w, msgUnknownReport)
		return
	}

	if err != nil {
		h.handleError(w, kind, principal, err)
		return
	}

	h.logger.Info("GET /admin/reports/%s - Report generated: admin_id=%d, csv=%t", kind, principal.ID, asCSV)
	if asCSV {
		handlers.RespondFile(w, "text/csv; charset=utf-8", csvFileName(kind, req), csvBuf.Bytes())
		return
	}
	handlers.RespondJSON(w, http.StatusOK, payload)
}

func (h *Handler) handleError(w http.ResponseWriter, kind string, principal *domain.Principal, err error) {
	switch {
	case errors.Is(err, reports.ErrForbidden):
		h.logger.Warn("GET /admin/reports/%s - Forbidden: admin_id=%d, role=%s", kind, principal.ID, principal.Role)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, reports.ErrInvalidInput):
		h.logger.Warn("GET /admin/reports/%s - Invalid period: %v", kind, err)
		handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidInterval, msgInvalidPeriod)

	default:
		h.logger.Error("GET /admin/reports/%s - Failed to build report: admin_id=%d, error=%v", kind, principal.ID, err)
		handlers.RespondInternalError(w)
	}
}
