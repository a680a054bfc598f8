package reports

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteFinancialCSV(t *testing.T) {
	payments := []domain.PaymentRecord{
		payment(1, 200, domain.PaymentStatusCompleted, domain.PaymentMethodCard, at(1, 10), "Colombo", "Fort, Main"),
	}
	report := BuildFinancial(payments, nil, models.LocationFilter{})
	report.From, report.To = "2024-05-01", "2024-05-31"

	var buf bytes.Buffer
	require.NoError(t, WriteFinancialCSV(&buf, &report))

	rows := readCSV(t, buf.Bytes())
	assert.Equal(t, []string{"Financial Report - 2024-05-01 to 2024-05-31"}, rows[0])
	assert.Contains(t, rows, []string{"Total Revenue (LKR)", "200.00"})
	assert.Contains(t, rows, []string{"Card", "1"})
	assert.Contains(t, rows, []string{"Colombo", "Fort, Main", "200.00"})
	assert.Contains(t, rows, []string{"TXN001", "Nimal", "LKR 200.00", "Card", "Completed", "Colombo - Fort, Main", "2024-05-01"})
}

func TestWriteOccupancyCSV(t *testing.T) {
	bookings := []domain.BookingRecord{{ID: 1, StartTime: at(1, 7), City: "Colombo", Location: "Fort"}}
	report := BuildOccupancy(slotRecords("Colombo", "Fort", domain.SlotStatusAvailable, domain.SlotStatusOccupied), bookings, models.LocationFilter{})

	var buf bytes.Buffer
	require.NoError(t, WriteOccupancyCSV(&buf, &report))

	rows := readCSV(t, buf.Bytes())
	assert.Contains(t, rows, []string{"Total Slots", "2"})
	assert.Contains(t, rows, []string{"Average Occupancy (%)", "50.00"})
	assert.Contains(t, rows, []string{"Peak Hours", "7:00-9:00"})
	assert.Contains(t, rows, []string{"Colombo", "Fort", "2", "1", "0", "1", "50.00"})
	assert.Contains(t, rows, []string{"07:00", "1"})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteOccupancyCSV_WriterError(t *testing.T) {
	report := BuildOccupancy(nil, nil, models.LocationFilter{})

	err := WriteOccupancyCSV(failingWriter{}, &report)
	assert.ErrorIs(t, err, ErrInternal)
}
