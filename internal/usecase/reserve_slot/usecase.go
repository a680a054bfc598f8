package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkingslot"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// UseCase use case бронирования парковочного места
type UseCase struct {
	slotRepo     SlotRepository
	vehicleRepo  VehicleRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	vehicleRepo VehicleRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		vehicleRepo:  vehicleRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute бронирует место для автомобиля пользователя
// Строка места блокируется (SELECT ... FOR UPDATE), поэтому из двух одновременных
// запросов на одно место успешен ровно один, второй получает ErrSlotUnavailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных и субъекта
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}
	userID := req.Principal.ID

	uc.logger.Info("ReserveSlot: user=%d, slot=%d, vehicle=%d", userID, req.SlotID, req.VehicleID)

	var result *domain.Booking
	var lotID int64

	// 2. Все изменения в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем место
		slot, err := uc.slotRepo.GetByIDForUpdate(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.2. Проверяем автомобиль и владельца
		vehicle, err := uc.vehicleRepo.GetByID(txCtx, req.VehicleID)
		if err != nil {
			if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
				return ErrVehicleNotFound
			}
			return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
		}
		if !vehicle.IsOwnedBy(userID) {
			return fmt.Errorf("%w: vehicle %d is not owned by user %d", ErrForbidden, vehicle.ID, userID)
		}

		// 2.3. Место должно быть свободно
		if !slot.IsAvailable() {
			return fmt.Errorf("%w: slot %d is %s", ErrSlotUnavailable, slot.ID, slot.Status)
		}

		// 2.4. Создаем бронирование
		booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:        userID,
			VehicleID:     vehicle.ID,
			SlotID:        ptr.Ptr(slot.ID),
			StartTime:     uc.timeProvider.Now(),
			PaymentStatus: domain.PaymentStatusPending,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 2.5. Место переходит в BOOKED
		if err := uc.slotRepo.UpdateStatus(txCtx, slot.ID, domain.SlotStatusBooked); err != nil {
			return fmt.Errorf("%w: failed to update slot status: %v", ErrInternal, err)
		}

		result = booking
		lotID = slot.LotID
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("ReserveSlot: user=%d slot=%d: %v", userID, req.SlotID, err)
		} else {
			uc.logger.Warn("ReserveSlot: user=%d slot=%d rejected: %v", userID, req.SlotID, err)
		}
		return nil, err
	}

	uc.logger.Info("ReserveSlot: booking id=%d created for slot=%d", result.ID, req.SlotID)

	return &Response{
		BookingID:     result.ID,
		UserID:        result.UserID,
		VehicleID:     result.VehicleID,
		SlotID:        req.SlotID,
		LotID:         lotID,
		StartTime:     result.StartTime,
		PaymentStatus: result.PaymentStatus,
	}, nil
}
