package domain

// Форматы дат и времени
const (
	DateFormat        = "2006-01-02"       // YYYY-MM-DD
	DisplayTimeFormat = "02/01/2006 15:04" // DD/MM/YYYY HH:MM (квитанции и письма)
)

// Currency валюта, в которой хранятся цены и платежи
const Currency = "LKR"

// Бизнес-ограничения
const (
	MinBillableHours        = 1   // минимальная оплата - один час даже за несколько минут
	MaxSlotsPerLot          = 1000
	MaxNotificationLength   = 500
	RecentTransactionsLimit = 10
	MinPasswordLength       = 8
)
