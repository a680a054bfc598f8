// Package usecasetest содержит транзакционное in-memory хранилище для тестов use case
package usecasetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkinglot"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkingslot"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	logRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehiclelog"
)

// Store in-memory хранилище, реализующее репозитории и менеджер транзакций
// Транзакции выполняются строго по одной (эквивалент блокировок строк),
// при ошибке состояние откатывается к снимку
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	Lots     map[int64]domain.ParkingLot
	Slots    map[int64]domain.ParkingSlot
	Vehicles map[int64]domain.Vehicle
	Bookings map[int64]domain.Booking
	Logs     map[int64]domain.VehicleLog
	Payments map[int64]domain.Payment

	nextID int64
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		Lots:     map[int64]domain.ParkingLot{},
		Slots:    map[int64]domain.ParkingSlot{},
		Vehicles: map[int64]domain.Vehicle{},
		Bookings: map[int64]domain.Booking{},
		Logs:     map[int64]domain.VehicleLog{},
		Payments: map[int64]domain.Payment{},
		nextID:   1000,
	}
}

type snapshot struct {
	lots     map[int64]domain.ParkingLot
	slots    map[int64]domain.ParkingSlot
	vehicles map[int64]domain.Vehicle
	bookings map[int64]domain.Booking
	logs     map[int64]domain.VehicleLog
	payments map[int64]domain.Payment
	nextID   int64
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		lots:     copyMap(s.Lots),
		slots:    copyMap(s.Slots),
		vehicles: copyMap(s.Vehicles),
		bookings: copyMap(s.Bookings),
		logs:     copyMap(s.Logs),
		payments: copyMap(s.Payments),
		nextID:   s.nextID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lots = snap.lots
	s.Slots = snap.slots
	s.Vehicles = snap.vehicles
	s.Bookings = snap.bookings
	s.Logs = snap.logs
	s.Payments = snap.payments
	s.nextID = snap.nextID
}

// Do выполняет fn как транзакцию
// Все транзакции фейка идут строго по очереди. В PostgreSQL гонку за место
// сериализует SELECT ... FOR UPDATE в репозитории мест (см. reserve_slot/usecase_sql_test.go)
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// DoReadOnly выполняет fn как транзакцию только для чтения
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Do(ctx, fn)
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// AddLot добавляет парковку с count свободными местами и возвращает ID мест
func (s *Store) AddLot(lot domain.ParkingLot, count int) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lot.ID == 0 {
		lot.ID = s.id()
	}
	lot.TotalSlots = count
	s.Lots[lot.ID] = lot

	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		slot := domain.ParkingSlot{ID: s.id(), LotID: lot.ID, Status: domain.SlotStatusAvailable}
		s.Slots[slot.ID] = slot
		ids = append(ids, slot.ID)
	}
	return ids
}

// AddVehicle добавляет автомобиль пользователя
func (s *Store) AddVehicle(userID int64, plate string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := domain.Vehicle{ID: s.id(), UserID: userID, PlateNumber: plate, Type: domain.VehicleTypeCar}
	s.Vehicles[v.ID] = v
	return v.ID
}

// AddLog добавляет запись о въезде напрямую
func (s *Store) AddLog(vehicleID, lotID int64, entry time.Time, exit *time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := domain.VehicleLog{ID: s.id(), VehicleID: vehicleID, LotID: lotID, EntryTime: entry, ExitTime: exit}
	s.Logs[l.ID] = l
	return l.ID
}

// Slot возвращает копию места
func (s *Store) Slot(id int64) domain.ParkingSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Slots[id]
}

// Booking возвращает копию бронирования
func (s *Store) Booking(id int64) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Bookings[id]
}

// CountBookings возвращает количество бронирований
func (s *Store) CountBookings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Bookings)
}

// CountPayments возвращает количество платежей
func (s *Store) CountPayments() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Payments)
}

// OpenLogs возвращает открытые записи автомобиля
func (s *Store) OpenLogs(vehicleID int64) []domain.VehicleLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.VehicleLog
	for _, l := range s.Logs {
		if l.VehicleID == vehicleID && l.IsOpen() {
			out = append(out, l)
		}
	}
	return out
}

// Slots

// SlotRepo адаптер хранилища под репозиторий мест
type SlotRepo struct{ S *Store }

func (r SlotRepo) GetByID(_ context.Context, id int64) (*domain.ParkingSlot, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	slot, ok := r.S.Slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (r SlotRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.ParkingSlot, error) {
	return r.GetByID(ctx, id)
}

func (r SlotRepo) UpdateStatus(_ context.Context, id int64, status domain.SlotStatus) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	slot, ok := r.S.Slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	slot.Status = status
	r.S.Slots[id] = slot
	return nil
}

// LotRepo адаптер хранилища под репозиторий парковок
type LotRepo struct{ S *Store }

func (r LotRepo) GetByID(_ context.Context, id int64) (*domain.ParkingLot, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	lot, ok := r.S.Lots[id]
	if !ok {
		return nil, lotRepo.ErrLotNotFound
	}
	return &lot, nil
}

// VehicleRepo адаптер хранилища под репозиторий автомобилей
type VehicleRepo struct{ S *Store }

func (r VehicleRepo) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	v, ok := r.S.Vehicles[id]
	if !ok {
		return nil, vehicleRepo.ErrVehicleNotFound
	}
	return &v, nil
}

// BookingRepo адаптер хранилища под репозиторий бронирований
type BookingRepo struct{ S *Store }

func (r BookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	b.ID = r.S.id()
	r.S.Bookings[b.ID] = *b
	return b, nil
}

func (r BookingRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Booking, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	b, ok := r.S.Bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r BookingRepo) CompletePayment(_ context.Context, id int64, endTime time.Time) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	b, ok := r.S.Bookings[id]
	if !ok || !b.IsPending() {
		return bookingRepo.ErrNotPending
	}
	b.EndTime = &endTime
	b.PaymentStatus = domain.PaymentStatusCompleted
	b.SlotID = nil
	r.S.Bookings[id] = b
	return nil
}

// LogRepo адаптер хранилища под репозиторий записей о въезде
type LogRepo struct{ S *Store }

func (r LogRepo) Create(_ context.Context, l *domain.VehicleLog) (*domain.VehicleLog, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, existing := range r.S.Logs {
		if existing.VehicleID == l.VehicleID && existing.IsOpen() {
			return nil, logRepo.ErrOpenLogExists
		}
	}
	l.ID = r.S.id()
	r.S.Logs[l.ID] = *l
	return l, nil
}

func (r LogRepo) GetOpenByVehicleID(_ context.Context, vehicleID int64) (*domain.VehicleLog, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, l := range r.S.Logs {
		if l.VehicleID == vehicleID && l.IsOpen() {
			return &l, nil
		}
	}
	return nil, logRepo.ErrLogNotFound
}

func (r LogRepo) GetLatestClosedByVehicleID(_ context.Context, vehicleID int64) (*domain.VehicleLog, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var latest *domain.VehicleLog
	for _, l := range r.S.Logs {
		if l.VehicleID != vehicleID || l.IsOpen() {
			continue
		}
		if latest == nil || l.ExitTime.After(*latest.ExitTime) ||
			(l.ExitTime.Equal(*latest.ExitTime) && l.ID > latest.ID) {
			l := l
			latest = &l
		}
	}
	if latest == nil {
		return nil, logRepo.ErrLogNotFound
	}
	return latest, nil
}

func (r LogRepo) Close(_ context.Context, id int64, exitTime time.Time) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	l, ok := r.S.Logs[id]
	if !ok || !l.IsOpen() {
		return logRepo.ErrLogNotFound
	}
	l.ExitTime = &exitTime
	r.S.Logs[id] = l
	return nil
}

// PaymentRepo адаптер хранилища под репозиторий платежей
type PaymentRepo struct{ S *Store }

func (r PaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, existing := range r.S.Payments {
		if existing.BookingID == p.BookingID {
			return nil, paymentRepo.ErrPaymentExists
		}
	}
	p.ID = r.S.id()
	r.S.Payments[p.ID] = *p
	return p, nil
}

// Чтение для сервисов

func (r SlotRepo) CreateForLot(_ context.Context, lotID int64, count int) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for i := 0; i < count; i++ {
		slot := domain.ParkingSlot{ID: r.S.id(), LotID: lotID, Status: domain.SlotStatusAvailable}
		r.S.Slots[slot.ID] = slot
	}
	return nil
}

func (r SlotRepo) GetByLotID(_ context.Context, lotID int64) ([]*domain.ParkingSlot, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make([]*domain.ParkingSlot, 0)
	for _, slot := range r.S.Slots {
		if slot.LotID == lotID {
			slot := slot
			out = append(out, &slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r SlotRepo) GetByLotIDForUpdate(ctx context.Context, lotID int64) ([]*domain.ParkingSlot, error) {
	return r.GetByLotID(ctx, lotID)
}

func (r SlotRepo) GetStatistics(_ context.Context, lotID int64) (domain.SlotStatistics, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var stats domain.SlotStatistics
	for _, slot := range r.S.Slots {
		if slot.LotID == lotID {
			stats.Add(slot.Status, 1)
		}
	}
	return stats, nil
}

func (r LotRepo) Create(_ context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	lot.ID = r.S.id()
	r.S.Lots[lot.ID] = *lot
	return lot, nil
}

func (r LotRepo) Search(_ context.Context, filter domain.ParkingLotFilter) ([]*domain.ParkingLotSummary, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make([]*domain.ParkingLotSummary, 0)
	for _, lot := range r.S.Lots {
		if filter.City != nil && !strings.EqualFold(*filter.City, lot.City) {
			continue
		}
		if filter.Location != nil && !strings.EqualFold(*filter.Location, lot.Location) {
			continue
		}
		if filter.MaxPrice != nil && lot.PricePerHour.GreaterThan(*filter.MaxPrice) {
			continue
		}
		var available int64
		for _, slot := range r.S.Slots {
			if slot.LotID == lot.ID && slot.IsAvailable() {
				available++
			}
		}
		if filter.AvailableOnly && available == 0 {
			continue
		}
		out = append(out, &domain.ParkingLotSummary{Lot: lot, AvailableSlots: available})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lot.ID < out[j].Lot.ID })
	return out, nil
}

func (r LotRepo) GetCities(_ context.Context) ([]string, error) {
	return r.distinct(func(domain.ParkingLot) bool { return true }, func(l domain.ParkingLot) string { return l.City }), nil
}

func (r LotRepo) GetLocationsByCity(_ context.Context, city string) ([]string, error) {
	return r.distinct(
		func(l domain.ParkingLot) bool { return strings.EqualFold(l.City, city) },
		func(l domain.ParkingLot) string { return l.Location },
	), nil
}

func (r LotRepo) Delete(_ context.Context, id int64) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Lots[id]; !ok {
		return lotRepo.ErrLotNotFound
	}
	delete(r.S.Lots, id)
	for slotID, slot := range r.S.Slots {
		if slot.LotID == id {
			delete(r.S.Slots, slotID)
		}
	}
	return nil
}

func (r LotRepo) distinct(match func(domain.ParkingLot) bool, field func(domain.ParkingLot) string) []string {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, lot := range r.S.Lots {
		if !match(lot) {
			continue
		}
		v := field(lot)
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func (r BookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetByIDForUpdate(ctx, id)
}

func (r BookingRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Booking, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make([]*domain.Booking, 0)
	for _, b := range r.S.Bookings {
		if b.UserID == userID {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r BookingRepo) GetActiveBySlotID(_ context.Context, slotID int64) (*domain.Booking, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, b := range r.S.Bookings {
		if b.IsPending() && b.SlotID != nil && *b.SlotID == slotID {
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r PaymentRepo) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	p, ok := r.S.Payments[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return &p, nil
}

func (r PaymentRepo) GetByBookingID(_ context.Context, bookingID int64) (*domain.Payment, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, p := range r.S.Payments {
		if p.BookingID == bookingID {
			return &p, nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

func (r PaymentRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Payment, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make([]*domain.Payment, 0)
	for _, p := range r.S.Payments {
		if b, ok := r.S.Bookings[p.BookingID]; ok && b.UserID == userID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
