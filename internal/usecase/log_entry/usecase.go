package log_entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	logRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehiclelog"
)

// UseCase use case фиксации въезда автомобиля на парковку
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

// Execute открывает запись о въезде по активному бронированию и переводит место в OCCUPIED
// Блокировки берутся в порядке бронирование -> место
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных и субъекта
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("LogEntry: validation failed: %v", err)
		return nil, err
	}
	userID := req.Principal.ID

	uc.logger.Info("LogEntry: user=%d, booking=%d", userID, req.BookingID)

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

		// 3. Проверяем владельца до любых изменений
		if !booking.IsOwnedBy(userID) {
			return fmt.Errorf("%w: booking %d is not owned by user %d", ErrForbidden, booking.ID, userID)
		}

		// 4. Бронирование должно быть активным и удерживать место
		if !booking.IsPending() || !booking.HasSlot() {
			return fmt.Errorf("%w: booking %d status=%s", ErrInvalidState, booking.ID, booking.PaymentStatus)
		}
		if req.VehicleID != nil && *req.VehicleID != booking.VehicleID {
			return fmt.Errorf("%w: vehicle %d does not match booking %d", ErrInvalidState, *req.VehicleID, booking.ID)
		}

		// 5. У автомобиля не должно быть открытой записи ни в одной парковке
		_, err = uc.logRepo.GetOpenByVehicleID(txCtx, booking.VehicleID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: vehicle_id=%d", ErrDuplicateLog, booking.VehicleID)
		case !errors.Is(err, logRepo.ErrLogNotFound):
			return fmt.Errorf("%w: failed to get open log: %v", ErrInternal, err)
		}

		// 6. Блокируем место
		slot, err := uc.slotRepo.GetByIDForUpdate(txCtx, *booking.SlotID)
		if err != nil {
			return fmt.Errorf("%w: failed to get slot %d: %v", ErrInternal, *booking.SlotID, err)
		}

		// 7. Открываем запись о въезде
		log, err := uc.logRepo.Create(txCtx, &domain.VehicleLog{
			VehicleID: booking.VehicleID,
			LotID:     slot.LotID,
			EntryTime: uc.timeProvider.Now(),
		})
		if err != nil {
			if errors.Is(err, logRepo.ErrOpenLogExists) {
				return fmt.Errorf("%w: vehicle_id=%d", ErrDuplicateLog, booking.VehicleID)
			}
			return fmt.Errorf("%w: failed to create log: %v", ErrInternal, err)
		}

		// 8. Место переходит в OCCUPIED
		if err := uc.slotRepo.UpdateStatus(txCtx, slot.ID, domain.SlotStatusOccupied); err != nil {
			return fmt.Errorf("%w: failed to update slot status: %v", ErrInternal, err)
		}

		resp = &Response{
			LogID:     log.ID,
			BookingID: booking.ID,
			VehicleID: booking.VehicleID,
			LotID:     slot.LotID,
			SlotID:    slot.ID,
			EntryTime: log.EntryTime,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("LogEntry: booking=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Warn("LogEntry: booking=%d rejected: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.logger.Info("LogEntry: log id=%d opened for vehicle=%d in lot=%d", resp.LogID, resp.VehicleID, resp.LotID)
	return resp, nil
}
