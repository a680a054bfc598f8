package log_entry

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на фиксацию въезда
type Request struct {
	Principal *domain.Principal
	BookingID int64
	VehicleID *int64 // Опционально; если передан, должен совпадать с автомобилем бронирования
}

// Response модель ответа с открытой записью о въезде
type Response struct {
	LogID     int64
	BookingID int64
	VehicleID int64
	LotID     int64
	SlotID    int64
	EntryTime time.Time
}
