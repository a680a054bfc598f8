package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

var weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// BuildFinancial строит финансовый отчет по платежам и бронированиям периода
// Платежи относятся к парковке, сохраненной в самом платеже
func BuildFinancial(payments []domain.PaymentRecord, bookings []domain.BookingRecord, filter models.LocationFilter) models.FinancialReport {
	report := models.FinancialReport{
		Currency:           domain.Currency,
		TotalRevenue:       decimal.Zero,
		AvgPayment:         decimal.Zero,
		PendingAmount:      decimal.Zero,
		PaymentMethods:     make(map[string]int),
		LocationBreakdown:  make([]models.LocationRevenue, 0),
		RevenueData:        make([]models.DailyRevenue, 0),
		RecentTransactions: make([]models.Transaction, 0),
	}

	byLocation := make(map[[2]string]decimal.Decimal)
	byDay := make(map[string]decimal.Decimal)

	filtered := make([]domain.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		if !filter.Matches(p.City, p.Location) {
			continue
		}
		filtered = append(filtered, p)

		report.PaymentMethods[string(p.Method)]++
		switch p.Status {
		case domain.PaymentStatusCompleted:
			report.CompletedPayments++
			report.TotalRevenue = report.TotalRevenue.Add(p.Amount)

			key := [2]string{p.City, p.Location}
			byLocation[key] = byLocation[key].Add(p.Amount)

			day := p.Timestamp.Format(domain.DateFormat)
			byDay[day] = byDay[day].Add(p.Amount)
		case domain.PaymentStatusPending:
			report.PendingPayments++
			report.PendingAmount = report.PendingAmount.Add(p.Amount)
		case domain.PaymentStatusFailed:
			report.FailedPayments++
		}
	}
	report.TotalPayments = len(filtered)

	if report.TotalPayments > 0 {
		report.AvgPayment = report.TotalRevenue.Div(decimal.NewFromInt(int64(report.TotalPayments))).Round(2)
	}

	for key, revenue := range byLocation {
		report.LocationBreakdown = append(report.LocationBreakdown, models.LocationRevenue{
			City:     key[0],
			Location: key[1],
			Revenue:  revenue,
		})
	}
	sort.Slice(report.LocationBreakdown, func(i, j int) bool {
		a, b := report.LocationBreakdown[i], report.LocationBreakdown[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		if a.City != b.City {
			return a.City < b.City
		}
		return a.Location < b.Location
	})

	for day, revenue := range byDay {
		report.RevenueData = append(report.RevenueData, models.DailyRevenue{Date: day, Revenue: revenue})
	}
	sort.Slice(report.RevenueData, func(i, j int) bool {
		return report.RevenueData[i].Date < report.RevenueData[j].Date
	})

	recent := make([]domain.PaymentRecord, len(filtered))
	copy(recent, filtered)
	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].Timestamp.Equal(recent[j].Timestamp) {
			return recent[i].Timestamp.After(recent[j].Timestamp)
		}
		return recent[i].ID > recent[j].ID
	})
	if len(recent) > domain.RecentTransactionsLimit {
		recent = recent[:domain.RecentTransactionsLimit]
	}
	for _, p := range recent {
		report.RecentTransactions = append(report.RecentTransactions, models.Transaction{
			ID:       fmt.Sprintf("TXN%03d", p.ID),
			User:     p.UserName,
			Amount:   fmt.Sprintf("%s %s", domain.Currency, p.Amount.StringFixed(2)),
			Method:   string(p.Method),
			Status:   string(p.Status),
			Location: locationLabel(p.City, p.Location),
			Date:     p.Timestamp.Format(domain.DateFormat),
		})
	}

	for _, b := range bookings {
		if filter.Matches(b.City, b.Location) {
			report.TotalBookings++
		}
	}

	return report
}

// BuildOccupancy строит отчет о загрузке по текущему состоянию мест и бронированиям периода
func BuildOccupancy(slots []domain.SlotRecord, bookings []domain.BookingRecord, filter models.LocationFilter) models.OccupancyReport {
	report := models.OccupancyReport{
		PeakHours:         "N/A",
		CitySlotStatus:    make(map[string]map[domain.SlotStatus]int64),
		LocationBreakdown: make([]models.LocationOccupancy, 0),
		HourlyBookings:    make(map[int]int),
	}

	var total domain.SlotStatistics
	byLocation := make(map[[2]string]*domain.SlotStatistics)

	for _, s := range slots {
		if !filter.Matches(s.City, s.Location) {
			continue
		}
		total.Add(s.Status, 1)

		if report.CitySlotStatus[s.City] == nil {
			report.CitySlotStatus[s.City] = make(map[domain.SlotStatus]int64)
		}
		report.CitySlotStatus[s.City][s.Status]++

		key := [2]string{s.City, s.Location}
		if byLocation[key] == nil {
			byLocation[key] = &domain.SlotStatistics{}
		}
		byLocation[key].Add(s.Status, 1)
	}

	report.TotalSlots = total.Total
	report.AvailableSlots = total.Available
	report.BookedSlots = total.Booked
	report.OccupiedSlots = total.Occupied
	report.AvgOccupancy = total.OccupancyRate()

	for key, st := range byLocation {
		report.LocationBreakdown = append(report.LocationBreakdown, models.LocationOccupancy{
			City:          key[0],
			Location:      key[1],
			TotalSlots:    st.Total,
			Available:     st.Available,
			Booked:        st.Booked,
			Occupied:      st.Occupied,
			OccupancyRate: st.OccupancyRate(),
		})
	}
	sort.Slice(report.LocationBreakdown, func(i, j int) bool {
		a, b := report.LocationBreakdown[i], report.LocationBreakdown[j]
		if a.City != b.City {
			return a.City < b.City
		}
		return a.Location < b.Location
	})

	for _, b := range bookings {
		if !filter.Matches(b.City, b.Location) {
			continue
		}
		report.TotalBookings++
		report.HourlyBookings[b.StartTime.Hour()]++
	}
	report.UtilizationRate = domain.Percentage(int64(report.TotalBookings), report.TotalSlots)

	if peak, ok := peakHour(report.HourlyBookings); ok {
		report.PeakHours = fmt.Sprintf("%d:00-%d:00", peak, (peak+2)%24)
	}

	return report
}

// PerformanceInput исходные данные отчета о производительности
type PerformanceInput struct {
	Payments  []domain.PaymentRecord
	Bookings  []domain.BookingRecord
	Slots     []domain.SlotRecord
	TotalLots int64
}

// BuildPerformance строит отчет о производительности системы
func BuildPerformance(in PerformanceInput) models.PerformanceReport {
	report := models.PerformanceReport{
		TotalBookings:        len(in.Bookings),
		TotalPayments:        len(in.Payments),
		TotalSlots:           int64(len(in.Slots)),
		TotalLots:            in.TotalLots,
		TotalRevenue:         decimal.Zero,
		AvgRevenuePerBooking: decimal.Zero,
		DailyBookingTrends:   make([]models.DayBookings, 0, len(weekdays)),
		CityMetrics:          make([]models.CityPerformance, 0),
	}

	users := make(map[int64]struct{})
	byWeekday := make(map[time.Weekday]int)
	bookingsByCity := make(map[string]int)
	var successfulBookings int64
	for _, b := range in.Bookings {
		users[b.UserID] = struct{}{}
		byWeekday[b.StartTime.Weekday()]++
		if b.City != "" {
			bookingsByCity[b.City]++
		}
		if b.PaymentStatus == domain.PaymentStatusCompleted {
			successfulBookings++
		}
	}
	report.TotalUsers = len(users)

	var successfulPayments int64
	revenueByCity := make(map[string]decimal.Decimal)
	for _, p := range in.Payments {
		if p.Status != domain.PaymentStatusCompleted {
			continue
		}
		successfulPayments++
		report.TotalRevenue = report.TotalRevenue.Add(p.Amount)
		if p.City != "" {
			revenueByCity[p.City] = revenueByCity[p.City].Add(p.Amount)
		}
	}

	totalBookings := int64(report.TotalBookings)
	totalPayments := int64(report.TotalPayments)

	report.BookingSuccessRate = domain.Percentage(successfulBookings, totalBookings)
	report.PaymentSuccessRate = domain.Percentage(successfulPayments, totalPayments)
	report.ErrorRate = domain.Percentage(totalPayments-successfulPayments, totalPayments)
	if successfulBookings > 0 {
		report.AvgRevenuePerBooking = report.TotalRevenue.Div(decimal.NewFromInt(successfulBookings)).Round(2)
	}

	var current domain.SlotStatistics
	for _, s := range in.Slots {
		current.Add(s.Status, 1)
	}
	report.CurrentOccupancyRate = current.OccupancyRate()

	for _, day := range weekdays {
		report.DailyBookingTrends = append(report.DailyBookingTrends, models.DayBookings{
			Day:      day.String(),
			Bookings: byWeekday[day],
		})
	}

	for city, revenue := range revenueByCity {
		share := 0.0
		if report.TotalRevenue.IsPositive() {
			share, _ = revenue.Div(report.TotalRevenue).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		}
		report.CityMetrics = append(report.CityMetrics, models.CityPerformance{
			City:         city,
			Revenue:      revenue,
			Bookings:     bookingsByCity[city],
			RevenueShare: share,
		})
	}
	sort.Slice(report.CityMetrics, func(i, j int) bool {
		a, b := report.CityMetrics[i], report.CityMetrics[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.City < b.City
	})

	return report
}

// peakHour возвращает час с наибольшим числом бронирований (меньший при равенстве)
func peakHour(hourly map[int]int) (int, bool) {
	peak, best := 0, 0
	for hour := 0; hour < 24; hour++ {
		if hourly[hour] > best {
			peak, best = hour, hourly[hour]
		}
	}
	return peak, best > 0
}

func locationLabel(city, location string) string {
	parts := make([]string, 0, 2)
	if city != "" {
		parts = append(parts, city)
	}
	if location != "" {
		parts = append(parts, location)
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, " - ")
}
