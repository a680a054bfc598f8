// Package bookings история бронирований и платежей пользователя, расчет стоимости и квитанции
package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkinglot"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	logRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehiclelog"
	"github.com/m04kA/SMC-ParkingService/internal/service/billing"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и платежей
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	lotRepo      LotRepository
	logRepo      VehicleLogRepository
	paymentRepo  PaymentRepository
	vehicleRepo  VehicleRepository
	userRepo     UserRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	lotRepo LotRepository,
	logRepo VehicleLogRepository,
	paymentRepo PaymentRepository,
	vehicleRepo VehicleRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		lotRepo:      lotRepo,
		logRepo:      logRepo,
		paymentRepo:  paymentRepo,
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetUserBookings возвращает бронирования пользователя, новые первыми
func (s *Service) GetUserBookings(ctx context.Context, principal *domain.Principal) ([]models.BookingResponse, error) {
	if !principal.IsUser() {
		return nil, ErrForbidden
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, principal.ID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", principal.ID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetByID получает бронирование по ID
// Пользователь может видеть только свои бронирования
func (s *Service) GetByID(ctx context.Context, principal *domain.Principal, bookingID int64) (*models.BookingResponse, error) {
	booking, err := s.ownBooking(ctx, "GetByID", principal, bookingID)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainBooking(booking)
	return &resp, nil
}

// Quote рассчитывает стоимость стоянки до оплаты
// Если автомобиль еще на парковке, выезд считается текущим моментом
func (s *Service) Quote(ctx context.Context, principal *domain.Principal, bookingID int64) (*models.QuoteResponse, error) {
	var resp *models.QuoteResponse

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		booking, err := s.ownBooking(txCtx, "Quote", principal, bookingID)
		if err != nil {
			return err
		}
		if !booking.IsPending() || !booking.HasSlot() {
			return fmt.Errorf("%w: booking_id=%d is %s", ErrInvalidState, booking.ID, booking.PaymentStatus)
		}

		slot, err := s.slotRepo.GetByID(txCtx, *booking.SlotID)
		if err != nil {
			return fmt.Errorf("%w: failed to get slot %d: %v", ErrInternal, *booking.SlotID, err)
		}

		visit, estimated, err := s.currentVisit(txCtx, booking, slot.LotID)
		if err != nil {
			return err
		}

		lot, err := s.lotRepo.GetByID(txCtx, slot.LotID)
		if err != nil {
			return fmt.Errorf("%w: failed to get lot %d: %v", ErrInternal, slot.LotID, err)
		}

		exit := s.timeProvider.Now()
		if visit.ExitTime != nil {
			exit = *visit.ExitTime
		}
		if exit.Before(visit.EntryTime) {
			exit = visit.EntryTime
		}

		charge, err := billing.Calculate(visit.EntryTime, exit, lot.PricePerHour)
		if err != nil {
			return fmt.Errorf("%w: failed to calculate charge: %v", ErrInternal, err)
		}

		resp = &models.QuoteResponse{
			BookingID:  booking.ID,
			LotID:      lot.ID,
			EntryTime:  visit.EntryTime,
			ExitTime:   exit,
			Minutes:    charge.Minutes,
			Hours:      charge.Hours,
			HourlyRate: charge.HourlyRate,
			Amount:     charge.Amount,
			Currency:   domain.Currency,
			Estimated:  estimated,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Quote: booking=%d: %v", bookingID, err)
		} else {
			s.logger.Warn("Quote: booking=%d rejected: %v", bookingID, err)
		}
		return nil, err
	}

	return resp, nil
}

// GetUserPayments возвращает платежи пользователя, новые первыми
func (s *Service) GetUserPayments(ctx context.Context, principal *domain.Principal) ([]models.PaymentResponse, error) {
	if !principal.IsUser() {
		return nil, ErrForbidden
	}

	payments, err := s.paymentRepo.GetByUserID(ctx, principal.ID)
	if err != nil {
		s.logger.Error("GetUserPayments: repository error for user=%d: %v", principal.ID, err)
		return nil, fmt.Errorf("%w: GetUserPayments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPaymentList(payments), nil
}

// Receipt формирует текстовую квитанцию по платежу
func (s *Service) Receipt(ctx context.Context, principal *domain.Principal, paymentID int64) (*models.Receipt, error) {
	if !principal.IsUser() {
		return nil, ErrForbidden
	}

	var data receiptData
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		payment, err := s.paymentRepo.GetByID(txCtx, paymentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}

		booking, err := s.bookingRepo.GetByID(txCtx, payment.BookingID)
		if err != nil {
			return fmt.Errorf("%w: failed to get booking %d: %v", ErrInternal, payment.BookingID, err)
		}
		if !booking.IsOwnedBy(principal.ID) {
			return fmt.Errorf("%w: payment %d is not owned by user %d", ErrForbidden, payment.ID, principal.ID)
		}

		user, err := s.userRepo.GetByID(txCtx, booking.UserID)
		if err != nil {
			return fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}
		vehicle, err := s.vehicleRepo.GetByID(txCtx, booking.VehicleID)
		if err != nil {
			return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
		}

		// Парковка могла быть удалена после оплаты
		var lot *domain.ParkingLot
		if payment.LotID != nil {
			lot, err = s.lotRepo.GetByID(txCtx, *payment.LotID)
			if err != nil && !errors.Is(err, lotRepo.ErrLotNotFound) {
				return fmt.Errorf("%w: failed to get lot: %v", ErrInternal, err)
			}
		}

		data = receiptData{
			Payment:     payment,
			Booking:     booking,
			User:        user,
			Vehicle:     vehicle,
			Lot:         lot,
			Currency:    domain.Currency,
			GeneratedAt: s.timeProvider.Now(),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Receipt: payment=%d: %v", paymentID, err)
		} else {
			s.logger.Warn("Receipt: payment=%d rejected: %v", paymentID, err)
		}
		return nil, err
	}

	content, err := renderReceipt(data)
	if err != nil {
		s.logger.Error("Receipt: failed to render payment=%d: %v", paymentID, err)
		return nil, fmt.Errorf("%w: Receipt - render: %v", ErrInternal, err)
	}

	return &models.Receipt{
		FileName: fmt.Sprintf("parqhub-receipt-%d.txt", paymentID),
		Content:  content,
	}, nil
}

// ownBooking загружает бронирование и проверяет, что оно принадлежит пользователю
func (s *Service) ownBooking(ctx context.Context, op string, principal *domain.Principal, bookingID int64) (*domain.Booking, error) {
	if !principal.IsUser() {
		return nil, ErrForbidden
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !booking.IsOwnedBy(principal.ID) {
		s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, principal.ID, bookingID)
		return nil, ErrForbidden
	}
	return booking, nil
}

// currentVisit находит стоянку, за которую будет выставлен счет:
// открытую запись в парковке бронирования или последнюю завершенную после начала бронирования
func (s *Service) currentVisit(ctx context.Context, booking *domain.Booking, lotID int64) (*domain.VehicleLog, bool, error) {
	open, err := s.logRepo.GetOpenByVehicleID(ctx, booking.VehicleID)
	switch {
	case err == nil:
		if open.LotID != lotID {
			return nil, false, fmt.Errorf("%w: vehicle_id=%d is parked in lot %d", ErrInvalidState, booking.VehicleID, open.LotID)
		}
		return open, true, nil
	case !errors.Is(err, logRepo.ErrLogNotFound):
		return nil, false, fmt.Errorf("%w: failed to get open log: %v", ErrInternal, err)
	}

	visit, err := s.logRepo.GetLatestClosedByVehicleID(ctx, booking.VehicleID)
	if err != nil {
		if errors.Is(err, logRepo.ErrLogNotFound) {
			return nil, false, fmt.Errorf("%w: vehicle_id=%d has not entered yet", ErrInvalidState, booking.VehicleID)
		}
		return nil, false, fmt.Errorf("%w: failed to get closed log: %v", ErrInternal, err)
	}
	if visit.LotID != lotID || visit.EntryTime.Before(booking.StartTime) {
		return nil, false, fmt.Errorf("%w: vehicle_id=%d has not entered lot %d since booking start", ErrInvalidState, booking.VehicleID, lotID)
	}
	return visit, false, nil
}
