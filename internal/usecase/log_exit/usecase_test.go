package log_exit

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var (
	entry = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	exit  = time.Date(2024, 5, 1, 11, 30, 0, 0, time.UTC)
)

type fixture struct {
	uc        *UseCase
	store     *usecasetest.Store
	slotID    int64
	lotID     int64
	vehicleID int64
	bookingID int64
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := usecasetest.NewStore()
	slots := store.AddLot(domain.ParkingLot{City: "Colombo", Location: "Fort", PricePerHour: decimal.NewFromInt(100)}, 1)
	slot := store.Slot(slots[0])
	vehicleID := store.AddVehicle(1, "CAB-1111")

	booking, err := usecasetest.BookingRepo{S: store}.Create(context.Background(), &domain.Booking{
		UserID:        1,
		VehicleID:     vehicleID,
		SlotID:        ptr.Ptr(slot.ID),
		StartTime:     entry,
		PaymentStatus: domain.PaymentStatusPending,
	})
	require.NoError(t, err)
	require.NoError(t, usecasetest.SlotRepo{S: store}.UpdateStatus(context.Background(), slot.ID, domain.SlotStatusOccupied))

	uc := NewUseCase(
		usecasetest.BookingRepo{S: store},
		usecasetest.SlotRepo{S: store},
		usecasetest.LogRepo{S: store},
		store,
		&usecasetest.Logger{},
	)
	uc.timeProvider = usecasetest.NewClock(exit)

	return &fixture{uc: uc, store: store, slotID: slot.ID, lotID: slot.LotID, vehicleID: vehicleID, bookingID: booking.ID}
}

func user(id int64) *domain.Principal {
	return &domain.Principal{Kind: domain.PrincipalUser, ID: id}
}

func TestExecute_Success(t *testing.T) {
	f := setup(t)
	f.store.AddLog(f.vehicleID, f.lotID, entry, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{Principal: user(1), BookingID: f.bookingID})
	require.NoError(t, err)

	assert.Equal(t, exit, resp.ExitTime)
	assert.Empty(t, f.store.OpenLogs(f.vehicleID))
	assert.Equal(t, domain.SlotStatusOccupied, f.store.Slot(f.slotID).Status)
	booking := f.store.Booking(f.bookingID)
	assert.True(t, booking.IsPending())
}

func TestExecute_NoActiveEntry(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Execute(context.Background(), &Request{Principal: user(1), BookingID: f.bookingID})
	assert.ErrorIs(t, err, ErrNoActiveEntry)
}

func TestExecute_OpenLogInAnotherLot(t *testing.T) {
	f := setup(t)
	other := f.store.AddLot(domain.ParkingLot{City: "Kandy"}, 1)
	f.store.AddLog(f.vehicleID, f.store.Slot(other[0]).LotID, entry, nil)

	_, err := f.uc.Execute(context.Background(), &Request{Principal: user(1), BookingID: f.bookingID})
	assert.ErrorIs(t, err, ErrNoActiveEntry)
	assert.Len(t, f.store.OpenLogs(f.vehicleID), 1)
}

func TestExecute_Forbidden(t *testing.T) {
	f := setup(t)
	f.store.AddLog(f.vehicleID, f.lotID, entry, nil)

	_, err := f.uc.Execute(context.Background(), &Request{Principal: user(2), BookingID: f.bookingID})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, f.store.OpenLogs(f.vehicleID), 1)
}

func TestExecute_PaidBooking(t *testing.T) {
	f := setup(t)
	require.NoError(t, usecasetest.BookingRepo{S: f.store}.CompletePayment(context.Background(), f.bookingID, exit))

	_, err := f.uc.Execute(context.Background(), &Request{Principal: user(1), BookingID: f.bookingID})
	assert.ErrorIs(t, err, ErrInvalidState)
}
