package get_report

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

const formatCSV = "csv"

// ParseReportRequest разбирает ?from=YYYY-MM-DD&to=YYYY-MM-DD&city=&location=
// Конец периода включает весь день to, до 23:59:59
func ParseReportRequest(q url.Values) (models.ReportRequest, error) {
	rawFrom, rawTo := strings.TrimSpace(q.Get("from")), strings.TrimSpace(q.Get("to"))
	if rawFrom == "" || rawTo == "" {
		return models.ReportRequest{}, errors.New("from and to are required")
	}

	from, err := time.ParseInLocation(domain.DateFormat, rawFrom, time.UTC)
	if err != nil {
		return models.ReportRequest{}, fmt.Errorf("from: %w", err)
	}
	to, err := time.ParseInLocation(domain.DateFormat, rawTo, time.UTC)
	if err != nil {
		return models.ReportRequest{}, fmt.Errorf("to: %w", err)
	}

	return models.ReportRequest{
		Period:   domain.DateRange{From: from, To: to.Add(24*time.Hour - time.Second)},
		City:     q.Get("city"),
		Location: q.Get("location"),
	}, nil
}

// csvFileName имя файла выгрузки: financial-report-2024-05-01-to-2024-05-31.csv
func csvFileName(kind string, req models.ReportRequest) string {
	return fmt.Sprintf("%s-report-%s-to-%s.csv", kind,
		req.Period.From.Format(domain.DateFormat), req.Period.To.Format(domain.DateFormat))
}
