package process_payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на оплату бронирования
type Request struct {
	Principal *domain.Principal
	BookingID int64
	Method    string // Card, Cash или Arrival, без учета регистра
}

// Response модель ответа с проведенным платежом
type Response struct {
	PaymentID  int64
	BookingID  int64
	SlotID     int64
	LotID      int64
	Method     domain.PaymentMethod
	Status     domain.PaymentStatus
	EntryTime  time.Time
	ExitTime   time.Time
	Minutes    int64
	Hours      int64
	HourlyRate decimal.Decimal
	Amount     decimal.Decimal
	PaidAt     time.Time
}
