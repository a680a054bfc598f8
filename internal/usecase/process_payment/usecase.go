package process_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	logRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehiclelog"
	"github.com/m04kA/SMC-ParkingService/internal/service/billing"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// UseCase use case оплаты бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	lotRepo      LotRepository
	logRepo      VehicleLogRepository
	paymentRepo  PaymentRepository
	notifier     PaymentNotifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// notifier может быть nil, тогда подтверждение не отправляется
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	lotRepo LotRepository,
	logRepo VehicleLogRepository,
	paymentRepo PaymentRepository,
	notifier PaymentNotifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		lotRepo:      lotRepo,
		logRepo:      logRepo,
		paymentRepo:  paymentRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute считает стоимость по последней завершенной стоянке, сохраняет платеж,
// закрывает бронирование и освобождает место. Все изменения в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация, включая способ оплаты, до обращения к хранилищу
	method, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ProcessPayment: validation failed: %v", err)
		return nil, err
	}
	userID := req.Principal.ID

	uc.logger.Info("ProcessPayment: user=%d, booking=%d, method=%s", userID, req.BookingID, method)

	var resp *Response
	var payment *domain.Payment

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Блокируем бронирование
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3. Владелец и статус
		if !booking.IsOwnedBy(userID) {
			return fmt.Errorf("%w: booking %d is not owned by user %d", ErrForbidden, booking.ID, userID)
		}
		if !booking.IsPending() {
			return fmt.Errorf("%w: booking_id=%d", ErrAlreadyPaid, booking.ID)
		}
		if !booking.HasSlot() {
			return fmt.Errorf("%w: booking %d has no slot", ErrInvalidState, booking.ID)
		}

		// 4. Автомобиль не должен находиться ни в одной парковке
		_, err = uc.logRepo.GetOpenByVehicleID(txCtx, booking.VehicleID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: vehicle_id=%d has an open entry", ErrVehicleStillParked, booking.VehicleID)
		case !errors.Is(err, logRepo.ErrLogNotFound):
			return fmt.Errorf("%w: failed to get open log: %v", ErrInternal, err)
		}

		// 5. Блокируем место
		slot, err := uc.slotRepo.GetByIDForUpdate(txCtx, *booking.SlotID)
		if err != nil {
			return fmt.Errorf("%w: failed to get slot %d: %v", ErrInternal, *booking.SlotID, err)
		}

		// 6. Последняя завершенная стоянка должна быть в парковке бронирования и после его начала
		visit, err := uc.logRepo.GetLatestClosedByVehicleID(txCtx, booking.VehicleID)
		if err != nil {
			if errors.Is(err, logRepo.ErrLogNotFound) {
				return fmt.Errorf("%w: vehicle_id=%d has no completed visit", ErrVehicleStillParked, booking.VehicleID)
			}
			return fmt.Errorf("%w: failed to get closed log: %v", ErrInternal, err)
		}
		if visit.LotID != slot.LotID {
			return fmt.Errorf("%w: last exit of vehicle_id=%d is from lot %d", ErrVehicleStillParked, booking.VehicleID, visit.LotID)
		}
		if visit.EntryTime.Before(booking.StartTime) {
			return fmt.Errorf("%w: no visit since booking start", ErrInvalidState)
		}

		// 7. Считаем стоимость
		lot, err := uc.lotRepo.GetByID(txCtx, slot.LotID)
		if err != nil {
			return fmt.Errorf("%w: failed to get lot %d: %v", ErrInternal, slot.LotID, err)
		}
		charge, err := billing.Calculate(visit.EntryTime, *visit.ExitTime, lot.PricePerHour)
		if err != nil {
			return fmt.Errorf("%w: failed to calculate charge: %v", ErrInternal, err)
		}

		// 8. Сохраняем платеж
		paidAt := uc.timeProvider.Now()
		payment, err = uc.paymentRepo.Create(txCtx, &domain.Payment{
			BookingID: booking.ID,
			Amount:    charge.Amount,
			Method:    method,
			Status:    domain.PaymentStatusCompleted,
			Timestamp: paidAt,
			SlotID:    ptr.Ptr(slot.ID),
			LotID:     ptr.Ptr(lot.ID),
		})
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentExists) {
				return fmt.Errorf("%w: booking_id=%d", ErrAlreadyPaid, booking.ID)
			}
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		// 9. Закрываем бронирование и освобождаем место
		if err := uc.bookingRepo.CompletePayment(txCtx, booking.ID, *visit.ExitTime); err != nil {
			if errors.Is(err, bookingRepo.ErrNotPending) {
				return fmt.Errorf("%w: booking_id=%d", ErrAlreadyPaid, booking.ID)
			}
			return fmt.Errorf("%w: failed to complete booking: %v", ErrInternal, err)
		}
		if err := uc.slotRepo.UpdateStatus(txCtx, slot.ID, domain.SlotStatusAvailable); err != nil {
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}

		resp = &Response{
			PaymentID:  payment.ID,
			BookingID:  booking.ID,
			SlotID:     slot.ID,
			LotID:      lot.ID,
			Method:     method,
			Status:     payment.Status,
			EntryTime:  visit.EntryTime,
			ExitTime:   *visit.ExitTime,
			Minutes:    charge.Minutes,
			Hours:      charge.Hours,
			HourlyRate: charge.HourlyRate,
			Amount:     charge.Amount,
			PaidAt:     paidAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("ProcessPayment: booking=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Warn("ProcessPayment: booking=%d rejected: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.logger.Info("ProcessPayment: payment id=%d for booking=%d amount=%s", resp.PaymentID, resp.BookingID, resp.Amount.StringFixed(2))

	// 10. Подтверждение после фиксации транзакции, ошибка не откатывает оплату
	if uc.notifier != nil {
		if err := uc.notifier.NotifyPayment(ctx, userID, payment); err != nil {
			uc.logger.Warn("ProcessPayment: failed to notify user=%d about payment id=%d: %v", userID, payment.ID, err)
		}
	}

	return resp, nil
}
