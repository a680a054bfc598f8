package reserve_slot

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на бронирование места
type Request struct {
	Principal *domain.Principal // Аутентифицированный пользователь
	SlotID    int64
	VehicleID int64
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID     int64
	UserID        int64
	VehicleID     int64
	SlotID        int64
	LotID         int64
	StartTime     time.Time
	PaymentStatus domain.PaymentStatus
}
