package domain

import (
	"strings"
	"time"
)

// VehicleType тип транспортного средства
type VehicleType string

const (
	VehicleTypeCar   VehicleType = "Car"
	VehicleTypeBike  VehicleType = "Bike"
	VehicleTypeVan   VehicleType = "Van"
	VehicleTypeTruck VehicleType = "Truck"
)

// ParseVehicleType разбирает тип транспорта без учета регистра
func ParseVehicleType(s string) (VehicleType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "car":
		return VehicleTypeCar, true
	case "bike":
		return VehicleTypeBike, true
	case "van":
		return VehicleTypeVan, true
	case "truck":
		return VehicleTypeTruck, true
	default:
		return "", false
	}
}

// Vehicle транспортное средство пользователя
type Vehicle struct {
	ID          int64
	UserID      int64
	PlateNumber string
	Type        VehicleType
	Brand       string
	Model       string
	Color       string
	CreatedAt   time.Time
}

// IsOwnedBy проверяет, принадлежит ли автомобиль пользователю
func (v *Vehicle) IsOwnedBy(userID int64) bool {
	return v.UserID == userID
}
