// Package parking каталог парковок: поиск, просмотр и администрирование
package parking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkinglot"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking/models"
)

// Service сервис каталога парковок
type Service struct {
	lotRepo   LotRepository
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса парковок
func NewService(
	lotRepo LotRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		lotRepo:   lotRepo,
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Search ищет парковки по городу, локации, максимальной цене и наличию свободных мест
func (s *Service) Search(ctx context.Context, req models.SearchRequest) ([]models.LotSummaryResponse, error) {
	if req.MaxPrice != nil && req.MaxPrice.IsNegative() {
		return nil, fmt.Errorf("%w: max price must not be negative", ErrInvalidInput)
	}

	filter := domain.ParkingLotFilter{
		City:          trimmed(req.City),
		Location:      trimmed(req.Location),
		MaxPrice:      req.MaxPrice,
		AvailableOnly: req.AvailableOnly,
	}

	lots, err := s.lotRepo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSummaries(lots), nil
}

// GetLot возвращает парковку с местами и статистикой по статусам
func (s *Service) GetLot(ctx context.Context, lotID int64) (*models.LotDetailsResponse, error) {
	var (
		lot   *domain.ParkingLot
		slots []*domain.ParkingSlot
		stats domain.SlotStatistics
	)

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if lot, err = s.lotRepo.GetByID(txCtx, lotID); err != nil {
			return err
		}
		if slots, err = s.slotRepo.GetByLotID(txCtx, lotID); err != nil {
			return err
		}
		stats, err = s.slotRepo.GetStatistics(txCtx, lotID)
		return err
	})
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("GetLot: lot id=%d not found", lotID)
			return nil, ErrLotNotFound
		}
		s.logger.Error("GetLot: repository error for lot id=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: GetLot - repository error: %v", ErrInternal, err)
	}

	return &models.LotDetailsResponse{
		LotResponse: models.FromDomainLot(lot),
		Statistics:  models.FromDomainStatistics(stats),
		Slots:       models.FromDomainSlots(slots),
	}, nil
}

// Cities возвращает список городов с парковками
func (s *Service) Cities(ctx context.Context) ([]string, error) {
	cities, err := s.lotRepo.GetCities(ctx)
	if err != nil {
		s.logger.Error("Cities: repository error: %v", err)
		return nil, fmt.Errorf("%w: Cities - repository error: %v", ErrInternal, err)
	}
	return cities, nil
}

// Locations возвращает локации парковок в городе
func (s *Service) Locations(ctx context.Context, city string) ([]string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrInvalidInput)
	}

	locations, err := s.lotRepo.GetLocationsByCity(ctx, city)
	if err != nil {
		s.logger.Error("Locations: repository error for city=%s: %v", city, err)
		return nil, fmt.Errorf("%w: Locations - repository error: %v", ErrInternal, err)
	}
	return locations, nil
}

// CreateLot создает парковку и все ее места в одной транзакции
func (s *Service) CreateLot(ctx context.Context, principal *domain.Principal, req *models.CreateLotRequest) (*models.LotResponse, error) {
	if !principal.Can(domain.CapabilityOperations) {
		s.logger.Warn("CreateLot: principal %v has no operations capability", principal)
		return nil, ErrForbidden
	}

	city := strings.TrimSpace(req.City)
	location := strings.TrimSpace(req.Location)
	switch {
	case city == "" || location == "":
		return nil, fmt.Errorf("%w: city and location are required", ErrInvalidInput)
	case req.TotalSlots <= 0 || req.TotalSlots > domain.MaxSlotsPerLot:
		return nil, fmt.Errorf("%w: total slots must be between 1 and %d", ErrInvalidInput, domain.MaxSlotsPerLot)
	case !req.PricePerHour.IsPositive():
		return nil, fmt.Errorf("%w: price per hour must be positive", ErrInvalidInput)
	}

	var created *domain.ParkingLot
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Создаем парковку
		lot, err := s.lotRepo.Create(txCtx, &domain.ParkingLot{
			City:         city,
			Location:     location,
			TotalSlots:   req.TotalSlots,
			PricePerHour: req.PricePerHour.Round(2),
		})
		if err != nil {
			return err
		}

		// 2. Создаем места в статусе AVAILABLE
		if err := s.slotRepo.CreateForLot(txCtx, lot.ID, req.TotalSlots); err != nil {
			return err
		}

		created = lot
		return nil
	})
	if err != nil {
		s.logger.Error("CreateLot: failed to create lot city=%s location=%s: %v", city, location, err)
		return nil, fmt.Errorf("%w: CreateLot - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("CreateLot: lot id=%d with %d slots created by admin=%d", created.ID, created.TotalSlots, principal.ID)
	resp := models.FromDomainLot(created)
	return &resp, nil
}

// DeleteLot удаляет парковку вместе с местами
// Парковку с забронированными или занятыми местами удалить нельзя
func (s *Service) DeleteLot(ctx context.Context, principal *domain.Principal, lotID int64) error {
	if !principal.Can(domain.CapabilityOperations) {
		s.logger.Warn("DeleteLot: principal %v has no operations capability", principal)
		return ErrForbidden
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.lotRepo.GetByID(txCtx, lotID); err != nil {
			return err
		}

		// Места блокируются до проверки статусов
		slots, err := s.slotRepo.GetByLotIDForUpdate(txCtx, lotID)
		if err != nil {
			return err
		}
		for _, slot := range slots {
			if slot.IsHeld() {
				return fmt.Errorf("%w: lot id=%d slot id=%d is %s", ErrLotInUse, lotID, slot.ID, slot.Status)
			}
		}

		return s.lotRepo.Delete(txCtx, lotID)
	})
	if err != nil {
		switch {
		case errors.Is(err, lotRepo.ErrLotNotFound):
			s.logger.Warn("DeleteLot: lot id=%d not found", lotID)
			return ErrLotNotFound
		case errors.Is(err, ErrLotInUse):
			s.logger.Warn("DeleteLot: %v", err)
			return err
		}
		s.logger.Error("DeleteLot: failed to delete lot id=%d: %v", lotID, err)
		return fmt.Errorf("%w: DeleteLot - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteLot: lot id=%d deleted by admin=%d", lotID, principal.ID)
	return nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
