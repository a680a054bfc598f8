package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Response модели

// BookingResponse бронирование пользователя
type BookingResponse struct {
	ID            int64      `json:"id"`
	VehicleID     int64      `json:"vehicleId"`
	SlotID        *int64     `json:"slotId,omitempty"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	PaymentStatus string     `json:"paymentStatus"`
	Duration      string     `json:"duration,omitempty"`
}

// QuoteResponse предварительный расчет стоимости стоянки
type QuoteResponse struct {
	BookingID  int64           `json:"bookingId"`
	LotID      int64           `json:"lotId"`
	EntryTime  time.Time       `json:"entryTime"`
	ExitTime   time.Time       `json:"exitTime"`
	Minutes    int64           `json:"minutes"`
	Hours      int64           `json:"hours"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Estimated  bool            `json:"estimated"` // автомобиль еще на парковке, выезд взят текущим временем
}

// PaymentResponse платеж пользователя
type PaymentResponse struct {
	ID            int64           `json:"id"`
	ReceiptNumber string          `json:"receiptNumber"`
	BookingID     int64           `json:"bookingId"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	PaidAt        time.Time       `json:"paidAt"`
	SlotID        *int64          `json:"slotId,omitempty"`
	LotID         *int64          `json:"lotId,omitempty"`
}

// Receipt квитанция об оплате
type Receipt struct {
	FileName string
	Content  string
}

// Конвертеры

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID,
		VehicleID:     b.VehicleID,
		SlotID:        b.SlotID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		PaymentStatus: string(b.PaymentStatus),
	}
	if b.EndTime != nil {
		resp.Duration = FormatDuration(b.Duration())
	}
	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromDomainBooking(b))
	}
	return out
}

// FromDomainPayment конвертирует domain.Payment в PaymentResponse
func FromDomainPayment(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		ReceiptNumber: p.ReceiptNumber(),
		BookingID:     p.BookingID,
		Amount:        p.Amount,
		Method:        string(p.Method),
		Status:        string(p.Status),
		PaidAt:        p.Timestamp,
		SlotID:        p.SlotID,
		LotID:         p.LotID,
	}
}

// FromDomainPaymentList конвертирует список платежей
func FromDomainPaymentList(payments []*domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromDomainPayment(p))
	}
	return out
}

// FormatDuration форматирует длительность как "2h 05m"
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
