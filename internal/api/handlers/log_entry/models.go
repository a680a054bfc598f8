package log_entry

import (
	"time"

	logEntry "github.com/m04kA/SMC-ParkingService/internal/usecase/log_entry"
)

// LogEntryRequest HTTP request model, тело необязательно
type LogEntryRequest struct {
	VehicleID *int64 `json:"vehicleId,omitempty"`
}

// VehicleLogResponse HTTP response model
type VehicleLogResponse struct {
	ID        int64  `json:"id"`
	BookingID int64  `json:"bookingId"`
	VehicleID int64  `json:"vehicleId"`
	LotID     int64  `json:"lotId"`
	SlotID    int64  `json:"slotId"`
	EntryTime string `json:"entryTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *logEntry.Response) *VehicleLogResponse {
	return &VehicleLogResponse{
		ID:        resp.LogID,
		BookingID: resp.BookingID,
		VehicleID: resp.VehicleID,
		LotID:     resp.LotID,
		SlotID:    resp.SlotID,
		EntryTime: resp.EntryTime.Format(time.RFC3339),
	}
}
