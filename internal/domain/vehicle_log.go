package domain

import "time"

// VehicleLog запись о фактическом въезде и выезде автомобиля
// На один автомобиль одновременно может быть открыта только одна запись (ExitTime == nil)
type VehicleLog struct {
	ID        int64
	VehicleID int64
	LotID     int64
	EntryTime time.Time
	ExitTime  *time.Time
}

// IsOpen возвращает true, если автомобиль еще не выехал
func (l *VehicleLog) IsOpen() bool {
	return l.ExitTime == nil
}
