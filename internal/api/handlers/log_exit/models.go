package log_exit

import (
	"time"

	logExit "github.com/m04kA/SMC-ParkingService/internal/usecase/log_exit"
)

// VehicleLogResponse HTTP response model
type VehicleLogResponse struct {
	ID        int64  `json:"id"`
	BookingID int64  `json:"bookingId"`
	VehicleID int64  `json:"vehicleId"`
	LotID     int64  `json:"lotId"`
	EntryTime string `json:"entryTime"`
	ExitTime  string `json:"exitTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *logExit.Response) *VehicleLogResponse {
	return &VehicleLogResponse{
		ID:        resp.LogID,
		BookingID: resp.BookingID,
		VehicleID: resp.VehicleID,
		LotID:     resp.LotID,
		EntryTime: resp.EntryTime.Format(time.RFC3339),
		ExitTime:  resp.ExitTime.Format(time.RFC3339),
	}
}
