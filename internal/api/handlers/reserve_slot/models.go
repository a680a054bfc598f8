package reserve_slot

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reserveSlot "github.com/m04kA/SMC-ParkingService/internal/usecase/reserve_slot"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	SlotID    int64 `json:"slotId"`
	VehicleID int64 `json:"vehicleId"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	VehicleID     int64  `json:"vehicleId"`
	SlotID        int64  `json:"slotId"`
	LotID         int64  `json:"lotId"`
	StartTime     string `json:"startTime"`
	PaymentStatus string `json:"paymentStatus"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveSlotRequest) ToUseCaseRequest(principal *domain.Principal) *reserveSlot.Request {
	return &reserveSlot.Request{
		Principal: principal,
		SlotID:    r.SlotID,
		VehicleID: r.VehicleID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.BookingID,
		UserID:        resp.UserID,
		VehicleID:     resp.VehicleID,
		SlotID:        resp.SlotID,
		LotID:         resp.LotID,
		StartTime:     resp.StartTime.Format(time.RFC3339),
		PaymentStatus: string(resp.PaymentStatus),
	}
}
