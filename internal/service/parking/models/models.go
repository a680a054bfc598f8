package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// SearchRequest параметры поиска парковок
type SearchRequest struct {
	City          *string
	Location      *string
	MaxPrice      *decimal.Decimal
	AvailableOnly bool
}

// CreateLotRequest запрос на создание парковки
type CreateLotRequest struct {
	City         string          `json:"city"`
	Location     string          `json:"location"`
	TotalSlots   int             `json:"totalSlots"`
	PricePerHour decimal.Decimal `json:"pricePerHour"`
}

// Response модели

// LotResponse парковка
type LotResponse struct {
	ID           int64           `json:"id"`
	City         string          `json:"city"`
	Location     string          `json:"location"`
	TotalSlots   int             `json:"totalSlots"`
	PricePerHour decimal.Decimal `json:"pricePerHour"`
}

// LotSummaryResponse парковка в результатах поиска
type LotSummaryResponse struct {
	LotResponse
	AvailableSlots int64 `json:"availableSlots"`
}

// SlotResponse парковочное место
type SlotResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// StatisticsResponse распределение мест по статусам
type StatisticsResponse struct {
	Available           int64   `json:"available"`
	Booked              int64   `json:"booked"`
	Occupied            int64   `json:"occupied"`
	Total               int64   `json:"total"`
	AvailablePercentage float64 `json:"availablePercentage"`
	BookedPercentage    float64 `json:"bookedPercentage"`
	OccupiedPercentage  float64 `json:"occupiedPercentage"`
	OccupancyRate       float64 `json:"occupancyRate"`
}

// LotDetailsResponse парковка с местами и статистикой
type LotDetailsResponse struct {
	LotResponse
	Statistics StatisticsResponse `json:"statistics"`
	Slots      []SlotResponse     `json:"slots"`
}

// Конвертеры

// FromDomainLot конвертирует domain.ParkingLot в LotResponse
func FromDomainLot(l *domain.ParkingLot) LotResponse {
	return LotResponse{
		ID:           l.ID,
		City:         l.City,
		Location:     l.Location,
		TotalSlots:   l.TotalSlots,
		PricePerHour: l.PricePerHour,
	}
}

// FromDomainSummaries конвертирует результаты поиска
func FromDomainSummaries(items []*domain.ParkingLotSummary) []LotSummaryResponse {
	out := make([]LotSummaryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, LotSummaryResponse{
			LotResponse:    FromDomainLot(&item.Lot),
			AvailableSlots: item.AvailableSlots,
		})
	}
	return out
}

// FromDomainStatistics конвертирует domain.SlotStatistics
func FromDomainStatistics(s domain.SlotStatistics) StatisticsResponse {
	return StatisticsResponse{
		Available:           s.Available,
		Booked:              s.Booked,
		Occupied:            s.Occupied,
		Total:               s.Total,
		AvailablePercentage: s.AvailablePercentage(),
		BookedPercentage:    s.BookedPercentage(),
		OccupiedPercentage:  s.OccupiedPercentage(),
		OccupancyRate:       s.OccupancyRate(),
	}
}

// FromDomainSlots конвертирует список мест
func FromDomainSlots(slots []*domain.ParkingSlot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{ID: s.ID, Status: string(s.Status)})
	}
	return out
}
