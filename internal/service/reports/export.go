package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

// WriteFinancialCSV выгружает финансовый отчет в CSV: сводка, разбивка по локациям, последние транзакции
func WriteFinancialCSV(w io.Writer, r *models.FinancialReport) error {
	cw := csv.NewWriter(w)
	currency := fmt.Sprintf("(%s)", r.Currency)

	rows := [][]string{
		{fmt.Sprintf("Financial Report - %s to %s", r.From, r.To)},
		{},
		{"Summary"},
		{"Total Revenue " + currency, r.TotalRevenue.StringFixed(2)},
		{"Total Payments", strconv.Itoa(r.TotalPayments)},
		{"Average Payment " + currency, r.AvgPayment.StringFixed(2)},
		{"Pending Amount " + currency, r.PendingAmount.StringFixed(2)},
		{"Total Bookings", strconv.Itoa(r.TotalBookings)},
		{},
		{"Payment Status"},
		{"Completed", strconv.Itoa(r.CompletedPayments)},
		{"Pending", strconv.Itoa(r.PendingPayments)},
		{"Failed", strconv.Itoa(r.FailedPayments)},
		{},
	}

	if len(r.PaymentMethods) > 0 {
		rows = append(rows, []string{"Payment Methods"})
		for _, m := range domain.PaymentMethods {
			if n, ok := r.PaymentMethods[string(m)]; ok {
				rows = append(rows, []string{string(m), strconv.Itoa(n)})
			}
		}
		rows = append(rows, []string{})
	}

	if len(r.LocationBreakdown) > 0 {
		rows = append(rows, []string{"Location Breakdown"}, []string{"City", "Location", "Revenue " + currency})
		for _, l := range r.LocationBreakdown {
			rows = append(rows, []string{l.City, l.Location, l.Revenue.StringFixed(2)})
		}
		rows = append(rows, []string{})
	}

	if len(r.RecentTransactions) > 0 {
		rows = append(rows,
			[]string{"Recent Transactions"},
			[]string{"Transaction ID", "User", "Amount", "Method", "Status", "Location", "Date"},
		)
		for _, t := range r.RecentTransactions {
			rows = append(rows, []string{t.ID, t.User, t.Amount, t.Method, t.Status, t.Location, t.Date})
		}
	}

	return writeAll(cw, rows)
}

// WriteOccupancyCSV выгружает отчет о загрузке в CSV
func WriteOccupancyCSV(w io.Writer, r *models.OccupancyReport) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{fmt.Sprintf("Occupancy Report - %s to %s", r.From, r.To)},
		{},
		{"Summary"},
		{"Total Slots", strconv.FormatInt(r.TotalSlots, 10)},
		{"Available Slots", strconv.FormatInt(r.AvailableSlots, 10)},
		{"Booked Slots", strconv.FormatInt(r.BookedSlots, 10)},
		{"Occupied Slots", strconv.FormatInt(r.OccupiedSlots, 10)},
		{"Average Occupancy (%)", formatPercent(r.AvgOccupancy)},
		{"Total Bookings", strconv.Itoa(r.TotalBookings)},
		{"Utilization Rate (%)", formatPercent(r.UtilizationRate)},
		{"Peak Hours", r.PeakHours},
		{},
	}

	if len(r.LocationBreakdown) > 0 {
		rows = append(rows,
			[]string{"Location Breakdown"},
			[]string{"City", "Location", "Total Slots", "Available", "Booked", "Occupied", "Occupancy Rate (%)"},
		)
		for _, l := range r.LocationBreakdown {
			rows = append(rows, []string{
				l.City,
				l.Location,
				strconv.FormatInt(l.TotalSlots, 10),
				strconv.FormatInt(l.Available, 10),
				strconv.FormatInt(l.Booked, 10),
				strconv.FormatInt(l.Occupied, 10),
				formatPercent(l.OccupancyRate),
			})
		}
		rows = append(rows, []string{})
	}

	if len(r.HourlyBookings) > 0 {
		hours := make([]int, 0, len(r.HourlyBookings))
		for h := range r.HourlyBookings {
			hours = append(hours, h)
		}
		sort.Ints(hours)

		rows = append(rows, []string{"Hourly Bookings"}, []string{"Hour", "Bookings"})
		for _, h := range hours {
			rows = append(rows, []string{fmt.Sprintf("%02d:00", h), strconv.Itoa(r.HourlyBookings[h])})
		}
	}

	return writeAll(cw, rows)
}

func writeAll(cw *csv.Writer, rows [][]string) error {
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: write csv: %v", ErrInternal, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: flush csv: %v", ErrInternal, err)
	}
	return nil
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
