package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// ReportRequest параметры построения отчета
type ReportRequest struct {
	Period   domain.DateRange
	City     string // Пусто - без фильтра
	Location string // Пусто - без фильтра
}

// Filter возвращает фильтр по местоположению
func (r ReportRequest) Filter() LocationFilter {
	return LocationFilter{City: strings.TrimSpace(r.City), Location: strings.TrimSpace(r.Location)}
}

// LocationFilter фильтр по городу и локации, сравнение без учета регистра
type LocationFilter struct {
	City     string
	Location string
}

// IsEmpty возвращает true, если фильтр не задан
func (f LocationFilter) IsEmpty() bool {
	return f.City == "" && f.Location == ""
}

// Matches проверяет, проходит ли пара город/локация через фильтр
func (f LocationFilter) Matches(city, location string) bool {
	if f.City != "" && !strings.EqualFold(f.City, city) {
		return false
	}
	if f.Location != "" && !strings.EqualFold(f.Location, location) {
		return false
	}
	return true
}

// Response модели

// ReportMeta общие поля отчета
type ReportMeta struct {
	ReportID       int64     `json:"reportId"`
	Type           string    `json:"type"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	GeneratedAt    time.Time `json:"generatedAt"`
	FilterApplied  bool      `json:"filterApplied"`
	FilterCity     string    `json:"filterCity,omitempty"`
	FilterLocation string    `json:"filterLocation,omitempty"`
}

// LocationRevenue выручка по локации
type LocationRevenue struct {
	City     string          `json:"city"`
	Location string          `json:"location"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DailyRevenue выручка за день
type DailyRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Transaction строка списка последних транзакций
type Transaction struct {
	ID       string `json:"id"`
	User     string `json:"user"`
	Amount   string `json:"amount"`
	Method   string `json:"method"`
	Status   string `json:"status"`
	Location string `json:"location"`
	Date     string `json:"date"`
}

// FinancialReport финансовый отчет
type FinancialReport struct {
	ReportMeta
	Currency           string            `json:"currency"`
	TotalRevenue       decimal.Decimal   `json:"totalRevenue"`
	TotalPayments      int               `json:"totalPayments"`
	CompletedPayments  int               `json:"completedPayments"`
	PendingPayments    int               `json:"pendingPayments"`
	FailedPayments     int               `json:"failedPayments"`
	AvgPayment         decimal.Decimal   `json:"avgPayment"`
	PendingAmount      decimal.Decimal   `json:"pendingAmount"`
	PaymentMethods     map[string]int    `json:"paymentMethods"`
	LocationBreakdown  []LocationRevenue `json:"locationBreakdown"`
	RevenueData        []DailyRevenue    `json:"revenueData"`
	RecentTransactions []Transaction     `json:"recentTransactions"`
	TotalBookings      int               `json:"totalBookings"`
}

// LocationOccupancy загрузка по локации
type LocationOccupancy struct {
	City          string  `json:"city"`
	Location      string  `json:"location"`
	TotalSlots    int64   `json:"totalSlots"`
	Available     int64   `json:"available"`
	Booked        int64   `json:"booked"`
	Occupied      int64   `json:"occupied"`
	OccupancyRate float64 `json:"occupancyRate"`
}

// OccupancyReport отчет о загрузке
type OccupancyReport struct {
	ReportMeta
	TotalSlots        int64                                  `json:"totalSlots"`
	AvailableSlots    int64                                  `json:"availableSlots"`
	BookedSlots       int64                                  `json:"bookedSlots"`
	OccupiedSlots     int64                                  `json:"occupiedSlots"`
	AvgOccupancy      float64                                `json:"avgOccupancy"`
	TotalBookings     int                                    `json:"totalBookings"`
	UtilizationRate   float64                                `json:"utilizationRate"`
	PeakHours         string                                 `json:"peakHours"`
	CitySlotStatus    map[string]map[domain.SlotStatus]int64 `json:"citySlotStatus"`
	LocationBreakdown []LocationOccupancy                    `json:"locationBreakdown"`
	HourlyBookings    map[int]int                            `json:"hourlyBookings"`
}

// DayBookings количество бронирований в день недели
type DayBookings struct {
	Day      string `json:"day"`
	Bookings int    `json:"bookings"`
}

// CityPerformance показатели города
type CityPerformance struct {
	City         string          `json:"city"`
	Revenue      decimal.Decimal `json:"revenue"`
	Bookings     int             `json:"bookings"`
	RevenueShare float64         `json:"revenueShare"`
}

// PerformanceReport отчет о производительности
type PerformanceReport struct {
	ReportMeta
	TotalBookings        int               `json:"totalBookings"`
	TotalPayments        int               `json:"totalPayments"`
	TotalSlots           int64             `json:"totalSlots"`
	TotalLots            int64             `json:"totalLots"`
	TotalUsers           int               `json:"totalUsers"`
	BookingSuccessRate   float64           `json:"bookingSuccessRate"`
	PaymentSuccessRate   float64           `json:"paymentSuccessRate"`
	TotalRevenue         decimal.Decimal   `json:"totalRevenue"`
	AvgRevenuePerBooking decimal.Decimal   `json:"avgRevenuePerBooking"`
	CurrentOccupancyRate float64           `json:"currentOccupancyRate"`
	ErrorRate            float64           `json:"errorRate"`
	DailyBookingTrends   []DayBookings     `json:"dailyBookingTrends"`
	CityMetrics          []CityPerformance `json:"cityMetrics"`
}

// OperationsSection раздел дашборда для операционного отдела
type OperationsSection struct {
	AvailableSlotsByCity map[string]int64 `json:"availableSlotsByCity"`
	TotalActiveSlots     int64            `json:"totalActiveSlots"`
	TotalAvailableSlots  int64            `json:"totalAvailableSlots"`
	TotalSlots           int64            `json:"totalSlots"`
}

// FinanceSection раздел дашборда для финансового отдела
type FinanceSection struct {
	TodayRevenue    decimal.Decimal `json:"todayRevenue"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	PendingPayments int64           `json:"pendingPayments"`
}

// CustomerSection раздел дашборда для поддержки клиентов
type CustomerSection struct {
	TotalUsers        int64 `json:"totalUsers"`
	PendingBookings   int64 `json:"pendingBookings"`
	CompletedBookings int64 `json:"completedBookings"`
}

// SecuritySection раздел дашборда для службы безопасности
type SecuritySection struct {
	ActiveVehicles    int64 `json:"activeVehicles"`
	SecurityIncidents int64 `json:"securityIncidents"`
	TotalVehicleLogs  int64 `json:"totalVehicleLogs"`
}

// ITSection раздел дашборда для IT поддержки
type ITSection struct {
	ErrorLogs          int64 `json:"errorLogs"`
	TotalNotifications int64 `json:"totalNotifications"`
}

// Dashboard дашборд администратора, заполнены только разделы, доступные роли
type Dashboard struct {
	AdminID      int64               `json:"adminId"`
	AdminRole    domain.AdminRole    `json:"adminRole"`
	Capabilities []domain.Capability `json:"capabilities"`
	GeneratedAt  time.Time           `json:"generatedAt"`
	Operations   *OperationsSection  `json:"operations,omitempty"`
	Finance      *FinanceSection     `json:"finance,omitempty"`
	Customer     *CustomerSection    `json:"customer,omitempty"`
	Security     *SecuritySection    `json:"security,omitempty"`
	IT           *ITSection          `json:"it,omitempty"`
}

// ReportEntry запись журнала отчетов
type ReportEntry struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	GeneratedAt time.Time `json:"generatedAt"`
	AdminID     int64     `json:"adminId"`
}

// FromDomainReport конвертирует domain.Report в ReportEntry
func FromDomainReport(r *domain.Report) ReportEntry {
	return ReportEntry{ID: r.ID, Type: string(r.Type), GeneratedAt: r.GeneratedAt, AdminID: r.AdminID}
}
