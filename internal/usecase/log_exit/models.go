package log_exit

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на фиксацию выезда
type Request struct {
	Principal *domain.Principal
	BookingID int64
}

// Response модель ответа с закрытой записью
type Response struct {
	LogID     int64
	BookingID int64
	VehicleID int64
	LotID     int64
	EntryTime time.Time
	ExitTime  time.Time
}
