package domain

import "time"

// User пользователь системы (владелец автомобилей и бронирований)
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	ContactNo    string
	CreatedAt    time.Time
}
