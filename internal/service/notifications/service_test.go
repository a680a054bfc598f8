package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ParkingService/internal/service/notifications/models"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var created = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeNotifications struct {
	items []*domain.Notification
	err   error
}

func (f *fakeNotifications) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	n.ID = int64(len(f.items) + 1)
	n.CreatedAt = created
	f.items = append(f.items, n)
	return n, nil
}

func (f *fakeNotifications) GetByUserID(_ context.Context, userID int64) ([]*domain.Notification, error) {
	out := make([]*domain.Notification, 0)
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

type fakeSender struct {
	sent []notifier.Message
	err  error
}

func (f *fakeSender) Publish(_ context.Context, msg notifier.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fixture struct {
	svc    *Service
	repo   *fakeNotifications
	sender *fakeSender
	log    *usecasetest.Logger
	slotID int64
	free   int64
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := usecasetest.NewStore()
	slots := store.AddLot(domain.ParkingLot{City: "Colombo", Location: "Fort", PricePerHour: decimal.NewFromInt(100)}, 2)
	vehicleID := store.AddVehicle(5, "CAB-5555")
	_, err := usecasetest.BookingRepo{S: store}.Create(context.Background(), &domain.Booking{
		UserID:        5,
		VehicleID:     vehicleID,
		SlotID:        ptr.Ptr(slots[0]),
		StartTime:     created,
		PaymentStatus: domain.PaymentStatusPending,
	})
	require.NoError(t, err)

	f := &fixture{
		repo:   &fakeNotifications{},
		sender: &fakeSender{},
		log:    &usecasetest.Logger{},
		slotID: slots[0],
		free:   slots[1],
	}
	f.svc = NewService(f.repo, usecasetest.SlotRepo{S: store}, usecasetest.BookingRepo{S: store}, f.sender, f.log)
	return f
}

func admin() *domain.Principal {
	return &domain.Principal{Kind: domain.PrincipalAdmin, ID: 3, Role: domain.RoleSecuritySupervisor}
}

func TestSendToSlot(t *testing.T) {
	f := setup(t)

	n, err := f.svc.SendToSlot(context.Background(), admin(), f.slotID, &models.SendRequest{Type: "overstay", Description: " Please move your car "})
	require.NoError(t, err)

	assert.Equal(t, int64(5), n.UserID)
	assert.Equal(t, int64(3), *n.AdminID)
	assert.Equal(t, "OVERSTAY", n.Type)
	assert.Equal(t, "Please move your car", n.Description)

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, int64(5), f.sender.sent[0].UserID)
	assert.Equal(t, "OVERSTAY", f.sender.sent[0].Type)

	list, err := f.svc.GetSlotNotifications(context.Background(), admin(), f.slotID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	mine, err := f.svc.GetUserNotifications(context.Background(), &domain.Principal{Kind: domain.PrincipalUser, ID: 5})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestSendToSlot_DefaultsToGeneral(t *testing.T) {
	f := setup(t)

	n, err := f.svc.SendToSlot(context.Background(), admin(), f.slotID, &models.SendRequest{Description: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "GENERAL", n.Type)
}

func TestSendToSlot_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		principal *domain.Principal
		slot      func(f *fixture) int64
		req       models.SendRequest
		err       error
	}{
		{"user", &domain.Principal{Kind: domain.PrincipalUser, ID: 5}, func(f *fixture) int64 { return f.slotID }, models.SendRequest{Description: "x"}, ErrForbidden},
		{"unknown type", admin(), func(f *fixture) int64 { return f.slotID }, models.SendRequest{Type: "SPAM", Description: "x"}, ErrInvalidInput},
		{"empty description", admin(), func(f *fixture) int64 { return f.slotID }, models.SendRequest{Description: "  "}, ErrInvalidInput},
		{"too long", admin(), func(f *fixture) int64 { return f.slotID }, models.SendRequest{Description: strings.Repeat("a", domain.MaxNotificationLength+1)}, ErrInvalidInput},
		{"missing slot", admin(), func(*fixture) int64 { return 987654 }, models.SendRequest{Description: "x"}, ErrSlotNotFound},
		{"free slot", admin(), func(f *fixture) int64 { return f.free }, models.SendRequest{Description: "x"}, ErrNoActiveBooking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			_, err := f.svc.SendToSlot(context.Background(), tt.principal, tt.slot(f), &tt.req)
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, f.repo.items)
			assert.Empty(t, f.sender.sent)
		})
	}
}

func TestSendToSlot_PublishFailureIsNotFatal(t *testing.T) {
	f := setup(t)
	f.sender.err = errors.New("broker down")

	_, err := f.svc.SendToSlot(context.Background(), admin(), f.slotID, &models.SendRequest{Description: "x"})
	require.NoError(t, err)
	assert.Len(t, f.repo.items, 1)
}

func TestGetSlotNotifications_FreeSlot(t *testing.T) {
	f := setup(t)

	list, err := f.svc.GetSlotNotifications(context.Background(), admin(), f.free)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotifyPayment(t *testing.T) {
	f := setup(t)
	payment := &domain.Payment{ID: 12, BookingID: 7, Amount: decimal.NewFromInt(200), Method: domain.PaymentMethodCash}

	require.NoError(t, f.svc.NotifyPayment(context.Background(), 5, payment))

	require.Len(t, f.repo.items, 1)
	assert.Nil(t, f.repo.items[0].AdminID)
	assert.Contains(t, f.repo.items[0].Description, "PQH-12")
	assert.Contains(t, f.repo.items[0].Description, "LKR 200.00")

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, int64(12), *f.sender.sent[0].PaymentID)
	assert.Equal(t, "200.00", f.sender.sent[0].Amount)
}

func TestNotifyPayment_RepositoryError(t *testing.T) {
	f := setup(t)
	f.repo.err = errors.New("db down")

	err := f.svc.NotifyPayment(context.Background(), 5, &domain.Payment{ID: 1, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.sender.sent)
}
