package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentMethodCard    PaymentMethod = "Card"
	PaymentMethodCash    PaymentMethod = "Cash"
	PaymentMethodArrival PaymentMethod = "Arrival"
)

// PaymentMethods все поддерживаемые способы оплаты
var PaymentMethods = []PaymentMethod{PaymentMethodCard, PaymentMethodCash, PaymentMethodArrival}

// ParsePaymentMethod разбирает способ оплаты без учета регистра
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card":
		return PaymentMethodCard, true
	case "cash":
		return PaymentMethodCash, true
	case "arrival":
		return PaymentMethodArrival, true
	default:
		return "", false
	}
}

// Payment платеж, закрывающий бронирование
type Payment struct {
	ID        int64
	BookingID int64
	Amount    decimal.Decimal
	Method    PaymentMethod
	Status    PaymentStatus
	Timestamp time.Time

	// Место и парковка на момент оплаты (у бронирования ссылка на место очищается)
	SlotID *int64
	LotID  *int64
}

// ReceiptNumber номер квитанции
func (p *Payment) ReceiptNumber() string {
	return "PQH-" + strconv.FormatInt(p.ID, 10)
}
