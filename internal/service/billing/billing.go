// Package billing считает стоимость стоянки по почасовому тарифу
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Charge результат расчета стоимости
type Charge struct {
	Minutes    int64           // Полных минут стоянки (секунды отбрасываются)
	Hours      int64           // Оплачиваемых часов, не меньше одного
	HourlyRate decimal.Decimal // Тариф за час
	Amount     decimal.Decimal // Итоговая сумма
}

// Calculate считает стоимость стоянки между entry и exit
// Оплачиваемые часы: max(1, ceil(минуты/60)), сумма: часы * тариф
func Calculate(entry, exit time.Time, hourlyRate decimal.Decimal) (Charge, error) {
	if exit.Before(entry) {
		return Charge{}, fmt.Errorf("%w: entry=%s exit=%s", ErrInvalidInterval, entry.Format(time.RFC3339), exit.Format(time.RFC3339))
	}
	if hourlyRate.IsNegative() {
		return Charge{}, fmt.Errorf("%w: rate=%s", ErrInvalidRate, hourlyRate)
	}

	minutes := int64(exit.Sub(entry) / time.Minute)

	hours := (minutes + 59) / 60
	if hours < domain.MinBillableHours {
		hours = domain.MinBillableHours
	}

	return Charge{
		Minutes:    minutes,
		Hours:      hours,
		HourlyRate: hourlyRate,
		Amount:     hourlyRate.Mul(decimal.NewFromInt(hours)).Round(2),
	}, nil
}
