package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportType тип отчета
type ReportType string

const (
	ReportFinancial   ReportType = "Financial"
	ReportOccupancy   ReportType = "Occupancy"
	ReportPerformance ReportType = "Performance"
)

// RequiredCapability право, необходимое для построения отчета
func (t ReportType) RequiredCapability() (Capability, bool) {
	switch t {
	case ReportFinancial:
		return CapabilityFinance, true
	case ReportOccupancy:
		return CapabilityOperations, true
	case ReportPerformance:
		return CapabilityIT, true
	}
	return "", false
}

// CanGenerate проверяет, может ли роль построить отчет
// Отчет о производительности доступен и операционному отделу
func (t ReportType) CanGenerate(role AdminRole) bool {
	if t == ReportPerformance && role.Can(CapabilityOperations) {
		return true
	}
	c, ok := t.RequiredCapability()
	return ok && role.Can(c)
}

// Report запись аудита о построенном отчете
type Report struct {
	ID          int64
	Type        ReportType
	GeneratedAt time.Time
	AdminID     int64
}

// DateRange интервал дат отчета, обе границы включительно
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains проверяет попадание момента в интервал
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// PaymentRecord платеж с городом и локацией парковки, в которой он был сделан
type PaymentRecord struct {
	ID        int64
	BookingID int64
	Amount    decimal.Decimal
	Method    PaymentMethod
	Status    PaymentStatus
	Timestamp time.Time
	LotID     *int64
	UserName  string
	City      string // пусто, если парковка удалена
	Location  string
}

// BookingRecord бронирование с городом и локацией парковки
type BookingRecord struct {
	ID            int64
	UserID        int64
	StartTime     time.Time
	PaymentStatus PaymentStatus
	City          string
	Location      string
}

// SlotRecord место с городом и локацией парковки
type SlotRecord struct {
	ID       int64
	LotID    int64
	Status   SlotStatus
	City     string
	Location string
}
