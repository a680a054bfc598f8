package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	userRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var (
	start = time.Date(2024, 5, 1, 9, 50, 0, 0, time.UTC)
	entry = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	exit  = time.Date(2024, 5, 1, 11, 30, 0, 0, time.UTC)
)

type fakeUsers map[int64]*domain.User

func (f fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

type fixture struct {
	svc       *Service
	store     *usecasetest.Store
	clock     *usecasetest.Clock
	lotID     int64
	slotID    int64
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
		StartTime:     start,
		PaymentStatus: domain.PaymentStatusPending,
	})
	require.NoError(t, err)

	users := fakeUsers{1: {ID: 1, Name: "Nimal Perera", Email: "nimal@example.com"}}
	svc := NewService(
		usecasetest.BookingRepo{S: store},
		usecasetest.SlotRepo{S: store},
		usecasetest.LotRepo{S: store},
		usecasetest.LogRepo{S: store},
		usecasetest.PaymentRepo{S: store},
		usecasetest.VehicleRepo{S: store},
		users,
		store,
		&usecasetest.Logger{},
	)
	clock := usecasetest.NewClock(exit)
	svc.timeProvider = clock

	return &fixture{svc: svc, store: store, clock: clock, lotID: slot.LotID, slotID: slot.ID, vehicleID: vehicleID, bookingID: booking.ID}
}

func user(id int64) *domain.Principal {
	return &domain.Principal{Kind: domain.PrincipalUser, ID: id}
}

func TestGetByID(t *testing.T) {
	f := setup(t)

	b, err := f.svc.GetByID(context.Background(), user(1), f.bookingID)
	require.NoError(t, err)
	assert.Equal(t, "Pending", b.PaymentStatus)
	assert.Equal(t, f.slotID, *b.SlotID)

	_, err = f.svc.GetByID(context.Background(), user(2), f.bookingID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.GetByID(context.Background(), user(1), 999999)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.GetByID(context.Background(), nil, f.bookingID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetUserBookings(t *testing.T) {
	f := setup(t)

	list, err := f.svc.GetUserBookings(context.Background(), user(1))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.bookingID, list[0].ID)

	other, err := f.svc.GetUserBookings(context.Background(), user(2))
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestQuote_ClosedVisit(t *testing.T) {
	f := setup(t)
	f.store.AddLog(f.vehicleID, f.lotID, entry, ptr.Ptr(exit))

	q, err := f.svc.Quote(context.Background(), user(1), f.bookingID)
	require.NoError(t, err)

	assert.False(t, q.Estimated)
	assert.Equal(t, int64(90), q.Minutes)
	assert.Equal(t, int64(2), q.Hours)
	assert.True(t, decimal.NewFromInt(200).Equal(q.Amount))
	assert.Equal(t, "LKR", q.Currency)
}

func TestQuote_StillParkedUsesNow(t *testing.T) {
	f := setup(t)
	f.store.AddLog(f.vehicleID, f.lotID, entry, nil)
	f.clock.Set(entry.Add(3*time.Hour + time.Minute))

	q, err := f.svc.Quote(context.Background(), user(1), f.bookingID)
	require.NoError(t, err)

	assert.True(t, q.Estimated)
	assert.Equal(t, int64(4), q.Hours)
	assert.True(t, decimal.NewFromInt(400).Equal(q.Amount))
}

func TestQuote_Rejections(t *testing.T) {
	t.Run("never entered", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.Quote(context.Background(), user(1), f.bookingID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("parked in another lot", func(t *testing.T) {
		f := setup(t)
		f.store.AddLog(f.vehicleID, f.lotID+100, entry, nil)
		_, err := f.svc.Quote(context.Background(), user(1), f.bookingID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("visit before booking", func(t *testing.T) {
		f := setup(t)
		f.store.AddLog(f.vehicleID, f.lotID, start.Add(-time.Hour), ptr.Ptr(start.Add(-30*time.Minute)))
		_, err := f.svc.Quote(context.Background(), user(1), f.bookingID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("other user", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.Quote(context.Background(), user(2), f.bookingID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("already paid", func(t *testing.T) {
		f := setup(t)
		require.NoError(t, usecasetest.BookingRepo{S: f.store}.CompletePayment(context.Background(), f.bookingID, exit))
		_, err := f.svc.Quote(context.Background(), user(1), f.bookingID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func paid(t *testing.T, f *fixture) *domain.Payment {
	t.Helper()
	payment, err := usecasetest.PaymentRepo{S: f.store}.Create(context.Background(), &domain.Payment{
		BookingID: f.bookingID,
		Amount:    decimal.NewFromInt(200),
		Method:    domain.PaymentMethodCard,
		Status:    domain.PaymentStatusCompleted,
		Timestamp: exit.Add(5 * time.Minute),
		SlotID:    ptr.Ptr(f.slotID),
		LotID:     ptr.Ptr(f.lotID),
	})
	require.NoError(t, err)
	require.NoError(t, usecasetest.BookingRepo{S: f.store}.CompletePayment(context.Background(), f.bookingID, exit))
	return payment
}

func TestGetUserPayments(t *testing.T) {
	f := setup(t)
	payment := paid(t, f)

	list, err := f.svc.GetUserPayments(context.Background(), user(1))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, payment.ReceiptNumber(), list[0].ReceiptNumber)

	other, err := f.svc.GetUserPayments(context.Background(), user(2))
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestReceipt(t *testing.T) {
	f := setup(t)
	payment := paid(t, f)

	r, err := f.svc.Receipt(context.Background(), user(1), payment.ID)
	require.NoError(t, err)

	assert.Equal(t, "parqhub-receipt-"+payment.ReceiptNumber()[4:]+".txt", r.FileName)
	assert.Contains(t, r.Content, "Receipt #: "+payment.ReceiptNumber())
	assert.Contains(t, r.Content, "Customer: Nimal Perera")
	assert.Contains(t, r.Content, "License: CAB-1111")
	assert.Contains(t, r.Content, "Location: Fort, Colombo")
	assert.Contains(t, r.Content, "Start Time: 01/05/2024 09:50")
	assert.Contains(t, r.Content, "End Time: 01/05/2024 11:30")
	assert.Contains(t, r.Content, "Duration: 1h 40m")
	assert.Contains(t, r.Content, "Amount: LKR 200.00")
	assert.Contains(t, r.Content, "Method: Card")

	_, err = f.svc.Receipt(context.Background(), user(2), payment.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Receipt(context.Background(), user(1), 424242)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestReceipt_LotDeleted(t *testing.T) {
	f := setup(t)
	payment := paid(t, f)
	require.NoError(t, usecasetest.LotRepo{S: f.store}.Delete(context.Background(), f.lotID))

	r, err := f.svc.Receipt(context.Background(), user(1), payment.ID)
	require.NoError(t, err)
	assert.NotContains(t, r.Content, "Location:")
	assert.Contains(t, r.Content, "Slot ID: ")
}
