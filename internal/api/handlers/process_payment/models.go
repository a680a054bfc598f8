package process_payment

import (
	"time"

	processPayment "github.com/m04kA/SMC-ParkingService/internal/usecase/process_payment"
)

// ProcessPaymentRequest HTTP request model
type ProcessPaymentRequest struct {
	Method string `json:"method"` // Card, Cash, Arrival
}

// PaymentResponse HTTP response model, суммы строками с двумя знаками
type PaymentResponse struct {
	ID            int64  `json:"id"`
	ReceiptNumber string `json:"receiptNumber"`
	BookingID     int64  `json:"bookingId"`
	SlotID        int64  `json:"slotId"`
	LotID         int64  `json:"lotId"`
	Method        string `json:"method"`
	Status        string `json:"status"`
	EntryTime     string `json:"entryTime"`
	ExitTime      string `json:"exitTime"`
	Minutes       int64  `json:"minutes"`
	BilledHours   int64  `json:"billedHours"`
	HourlyRate    string `json:"hourlyRate"`
	Amount        string `json:"amount"`
	PaidAt        string `json:"paidAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *processPayment.Response, receiptNumber string) *PaymentResponse {
	return &PaymentResponse{
		ID:            resp.PaymentID,
		ReceiptNumber: receiptNumber,
		BookingID:     resp.BookingID,
		SlotID:        resp.SlotID,
		LotID:         resp.LotID,
		Method:        string(resp.Method),
		Status:        string(resp.Status),
		EntryTime:     resp.EntryTime.Format(time.RFC3339),
		ExitTime:      resp.ExitTime.Format(time.RFC3339),
		Minutes:       resp.Minutes,
		BilledHours:   resp.Hours,
		HourlyRate:    resp.HourlyRate.StringFixed(2),
		Amount:        resp.Amount.StringFixed(2),
		PaidAt:        resp.PaidAt.Format(time.RFC3339),
	}
}
