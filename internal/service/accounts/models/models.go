package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// RegisterUserRequest запрос на регистрацию пользователя
type RegisterUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	ContactNo string `json:"contactNo"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAdminRequest запрос на создание администратора
type CreateAdminRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// RegisterVehicleRequest запрос на регистрацию автомобиля
type RegisterVehicleRequest struct {
	PlateNumber string `json:"plateNumber"`
	Type        string `json:"type"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Color       string `json:"color"`
}

// Response модели

// UserResponse пользователь без хеша пароля
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ContactNo string    `json:"contactNo"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminResponse администратор без хеша пароля
type AdminResponse struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Role         domain.AdminRole    `json:"role"`
	Capabilities []domain.Capability `json:"capabilities"`
}

// TokenResponse выданный токен доступа
type TokenResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      *UserResponse  `json:"user,omitempty"`
	Admin     *AdminResponse `json:"admin,omitempty"`
}

// VehicleResponse автомобиль пользователя
type VehicleResponse struct {
	ID          int64     `json:"id"`
	PlateNumber string    `json:"plateNumber"`
	Type        string    `json:"type"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Конвертеры

// FromDomainUser конвертирует domain.User в UserResponse
func FromDomainUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		ContactNo: u.ContactNo,
		CreatedAt: u.CreatedAt,
	}
}

// FromDomainAdmin конвертирует domain.Admin в AdminResponse
func FromDomainAdmin(a *domain.Admin) *AdminResponse {
	return &AdminResponse{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		Role:         a.Role,
		Capabilities: a.Role.Capabilities(),
	}
}

// FromDomainVehicle конвертирует domain.Vehicle в VehicleResponse
func FromDomainVehicle(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:          v.ID,
		PlateNumber: v.PlateNumber,
		Type:        string(v.Type),
		Brand:       v.Brand,
		Model:       v.Model,
		Color:       v.Color,
		CreatedAt:   v.CreatedAt,
	}
}

// FromDomainVehicleList конвертирует список автомобилей
func FromDomainVehicleList(vehicles []*domain.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, FromDomainVehicle(v))
	}
	return out
}
