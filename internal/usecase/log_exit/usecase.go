package log_exit

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	logRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehiclelog"
)

// UseCase use case фиксации выезда автомобиля
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	logRepo      VehicleLogRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	logRepo VehicleLogRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		logRepo:      logRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute закрывает открытую запись о въезде в парковке бронирования
// Статус места и бронирования не меняется: место освобождается только после оплаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных и субъекта
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("LogExit: validation failed: %v", err)
		return nil, err
	}
	userID := req.Principal.ID

	uc.logger.Info("LogExit: user=%d, booking=%d", userID, req.BookingID)

	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Блокируем бронирование
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3. Проверяем владельца
		if !booking.IsOwnedBy(userID) {
			return fmt.Errorf("%w: booking %d is not owned by user %d", ErrForbidden, booking.ID, userID)
		}

		// 4. Бронирование должно быть активным
		if !booking.IsPending() || !booking.HasSlot() {
			return fmt.Errorf("%w: booking %d status=%s", ErrInvalidState, booking.ID, booking.PaymentStatus)
		}

		// 5. Парковка бронирования
		slot, err := uc.slotRepo.GetByID(txCtx, *booking.SlotID)
		if err != nil {
			return fmt.Errorf("%w: failed to get slot %d: %v", ErrInternal, *booking.SlotID, err)
		}

		// 6. Открытая запись должна быть в этой же парковке
		log, err := uc.logRepo.GetOpenByVehicleID(txCtx, booking.VehicleID)
		if err != nil {
			if errors.Is(err, logRepo.ErrLogNotFound) {
				return fmt.Errorf("%w: vehicle_id=%d", ErrNoActiveEntry, booking.VehicleID)
			}
			return fmt.Errorf("%w: failed to get open log: %v", ErrInternal, err)
		}
		if log.LotID != slot.LotID {
			return fmt.Errorf("%w: vehicle_id=%d is parked in lot %d", ErrNoActiveEntry, booking.VehicleID, log.LotID)
		}

		// 7. Закрываем запись
		exitTime := uc.timeProvider.Now()
		if exitTime.Before(log.EntryTime) {
			exitTime = log.EntryTime
		}
		if err := uc.logRepo.Close(txCtx, log.ID, exitTime); err != nil {
			return fmt.Errorf("%w: failed to close log %d: %v", ErrInternal, log.ID, err)
		}

		resp = &Response{
			LogID:     log.ID,
			BookingID: booking.ID,
			VehicleID: booking.VehicleID,
			LotID:     log.LotID,
			EntryTime: log.EntryTime,
			ExitTime:  exitTime,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("LogExit: booking=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Warn("LogExit: booking=%d rejected: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.logger.Info("LogExit: log id=%d closed for vehicle=%d", resp.LogID, resp.VehicleID)
	return resp, nil
}
