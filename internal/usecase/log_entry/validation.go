package log_entry

import "fmt"

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if !req.Principal.IsUser() {
		return ErrForbidden
	}
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking_id must be positive", ErrInvalidInput)
	}
	if req.VehicleID != nil && *req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicle_id must be positive", ErrInvalidInput)
	}
	return nil
}
