// Package notifications уведомления пользователей: от администраторов и о платежах
package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkingslot"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ParkingService/internal/service/notifications/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// Service сервис уведомлений
type Service struct {
	notificationRepo NotificationRepository
	slotRepo         SlotRepository
	bookingRepo      BookingRepository
	sender           Sender
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(
	notificationRepo NotificationRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	sender Sender,
	logger Logger,
) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		slotRepo:         slotRepo,
		bookingRepo:      bookingRepo,
		sender:           sender,
		logger:           logger,
	}
}

// SendToSlot отправляет уведомление владельцу активного бронирования места
func (s *Service) SendToSlot(ctx context.Context, principal *domain.Principal, slotID int64, req *models.SendRequest) (*models.NotificationResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	notificationType, ok := domain.ParseNotificationType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !ok {
		s.logger.Warn("SendToSlot: invalid notification type=%q", req.Type)
		return nil, fmt.Errorf("%w: unknown notification type %q", ErrInvalidInput, req.Type)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" || utf8.RuneCountInString(description) > domain.MaxNotificationLength {
		return nil, fmt.Errorf("%w: description must be 1-%d characters", ErrInvalidInput, domain.MaxNotificationLength)
	}

	booking, err := s.activeBooking(ctx, "SendToSlot", slotID)
	if err != nil {
		return nil, err
	}

	notification, err := s.notificationRepo.Create(ctx, &domain.Notification{
		UserID:      booking.UserID,
		AdminID:     ptr.Ptr(principal.ID),
		Type:        notificationType,
		Description: description,
	})
	if err != nil {
		s.logger.Error("SendToSlot: failed to save notification for user=%d: %v", booking.UserID, err)
		return nil, fmt.Errorf("%w: SendToSlot - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, notifier.Message{
		NotificationID: notification.ID,
		UserID:         notification.UserID,
		AdminID:        notification.AdminID,
		Type:           string(notification.Type),
		Description:    notification.Description,
		BookingID:      ptr.Ptr(booking.ID),
		CreatedAt:      notification.CreatedAt,
	})

	s.logger.Info("SendToSlot: admin=%d notified user=%d about slot=%d, type=%s", principal.ID, booking.UserID, slotID, notificationType)
	resp := models.FromDomainNotification(notification)
	return &resp, nil
}

// GetSlotNotifications возвращает уведомления владельца активного бронирования места
// Если активного бронирования нет, список пуст
func (s *Service) GetSlotNotifications(ctx context.Context, principal *domain.Principal, slotID int64) ([]models.NotificationResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	booking, err := s.activeBooking(ctx, "GetSlotNotifications", slotID)
	if err != nil {
		if errors.Is(err, ErrNoActiveBooking) {
			return []models.NotificationResponse{}, nil
		}
		return nil, err
	}

	return s.listForUser(ctx, "GetSlotNotifications", booking.UserID)
}

// GetUserNotifications возвращает уведомления пользователя, новые первыми
func (s *Service) GetUserNotifications(ctx context.Context, principal *domain.Principal) ([]models.NotificationResponse, error) {
	if !principal.IsUser() {
		return nil, ErrForbidden
	}
	return s.listForUser(ctx, "GetUserNotifications", principal.ID)
}

// NotifyPayment сохраняет и публикует подтверждение оплаты
func (s *Service) NotifyPayment(ctx context.Context, userID int64, payment *domain.Payment) error {
	description := fmt.Sprintf("Payment %s of %s %s received (%s). Thank you for using ParQHub!",
		payment.ReceiptNumber(), domain.Currency, payment.Amount.StringFixed(2), payment.Method)

	notification, err := s.notificationRepo.Create(ctx, &domain.Notification{
		UserID:      userID,
		Type:        domain.NotificationGeneral,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("%w: NotifyPayment - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, notifier.Message{
		NotificationID: notification.ID,
		UserID:         userID,
		Type:           string(notification.Type),
		Description:    description,
		PaymentID:      ptr.Ptr(payment.ID),
		BookingID:      ptr.Ptr(payment.BookingID),
		Amount:         payment.Amount.StringFixed(2),
		CreatedAt:      notification.CreatedAt,
	})
	return nil
}

func (s *Service) activeBooking(ctx context.Context, op string, slotID int64) (*domain.Booking, error) {
	if _, err := s.slotRepo.GetByID(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("%s: slot id=%d not found", op, slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: repository error for slot id=%d: %v", op, slotID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	booking, err := s.bookingRepo.GetActiveBySlotID(ctx, slotID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: slot id=%d", ErrNoActiveBooking, slotID)
		}
		s.logger.Error("%s: repository error for slot id=%d: %v", op, slotID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) listForUser(ctx context.Context, op string, userID int64) ([]models.NotificationResponse, error) {
	items, err := s.notificationRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("%s: repository error for user=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return models.FromDomainNotificationList(items), nil
}

// publish доставляет сообщение; уведомление уже сохранено, поэтому ошибка только логируется
func (s *Service) publish(ctx context.Context, msg notifier.Message) {
	if err := s.sender.Publish(ctx, msg); err != nil {
		s.logger.Warn("publish: failed to deliver notification id=%d to user=%d: %v", msg.NotificationID, msg.UserID, err)
	}
}
