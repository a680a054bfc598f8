package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// SlotStatus статус парковочного места
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "AVAILABLE"
	SlotStatusBooked    SlotStatus = "BOOKED"
	SlotStatusOccupied  SlotStatus = "OCCUPIED"
)

// IsValid проверяет, что статус входит в допустимое множество
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusBooked, SlotStatusOccupied:
		return true
	}
	return false
}

// ParkingLot парковка
type ParkingLot struct {
	ID           int64
	City         string
	Location     string
	TotalSlots   int
	PricePerHour decimal.Decimal
}

// ParkingSlot парковочное место, принадлежит одной парковке
type ParkingSlot struct {
	ID     int64
	LotID  int64
	Status SlotStatus
}

// IsAvailable возвращает true, если место можно забронировать
func (s *ParkingSlot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

// IsHeld возвращает true, если место удерживается активным бронированием
func (s *ParkingSlot) IsHeld() bool {
	return s.Status == SlotStatusBooked || s.Status == SlotStatusOccupied
}

// ParkingLotFilter фильтр поиска парковок
type ParkingLotFilter struct {
	City          *string          // Точное совпадение без учета регистра
	Location      *string          // Точное совпадение без учета регистра
	MaxPrice      *decimal.Decimal // Максимальная цена за час
	AvailableOnly bool             // Только парковки со свободными местами
}

// ParkingLotSummary парковка с количеством свободных мест
type ParkingLotSummary struct {
	Lot            ParkingLot
	AvailableSlots int64
}

// SlotStatistics распределение мест по статусам
type SlotStatistics struct {
	Available int64
	Booked    int64
	Occupied  int64
	Total     int64
}

// AvailablePercentage доля свободных мест в процентах
func (s SlotStatistics) AvailablePercentage() float64 {
	return Percentage(s.Available, s.Total)
}

// BookedPercentage доля забронированных мест в процентах
func (s SlotStatistics) BookedPercentage() float64 {
	return Percentage(s.Booked, s.Total)
}

// OccupiedPercentage доля занятых мест в процентах
func (s SlotStatistics) OccupiedPercentage() float64 {
	return Percentage(s.Occupied, s.Total)
}

// OccupancyRate доля удерживаемых мест (забронированных и занятых) в процентах
func (s SlotStatistics) OccupancyRate() float64 {
	return Percentage(s.Booked+s.Occupied, s.Total)
}

// Add добавляет одно место с указанным статусом
func (s *SlotStatistics) Add(status SlotStatus, count int64) {
	switch status {
	case SlotStatusAvailable:
		s.Available += count
	case SlotStatusBooked:
		s.Booked += count
	case SlotStatusOccupied:
		s.Occupied += count
	}
	s.Total += count
}

// Percentage считает part/total*100 с округлением до двух знаков
// При нулевом знаменателе возвращает 0
func Percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(part) / float64(total) * 100)
}

// Round2 округляет до двух знаков после запятой
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
