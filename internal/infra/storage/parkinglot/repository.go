package parkinglot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository репозиторий парковок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает парковку (без мест, места создаются отдельно)
func (r *Repository) Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_lots").
		Columns("city", "location", "total_slots", "price_per_hour").
		Values(lot.City, lot.Location, lot.TotalSlots, lot.PricePerHour).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&lot.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return lot, nil
}

// GetByID получает парковку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "city", "location", "total_slots", "price_per_hour").
		From("parking_lots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var lot domain.ParkingLot
	err = executor.QueryRowContext(ctx, query, args...).Scan(&lot.ID, &lot.City, &lot.Location, &lot.TotalSlots, &lot.PricePerHour)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLotNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - execute select: %v", ErrExecQuery, err)
	}
	return &lot, nil
}

// Search ищет парковки по фильтру и считает свободные места
// Город и локация сравниваются без учета регистра
func (r *Repository) Search(ctx context.Context, filter domain.ParkingLotFilter) ([]*domain.ParkingLotSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"l.id",
		"l.city",
		"l.location",
		"l.total_slots",
		"l.price_per_hour",
		"COUNT(s.id) FILTER (WHERE s.status = 'AVAILABLE') AS available_slots",
	).
		From("parking_lots l").
		LeftJoin("parking_slots s ON s.lot_id = l.id")

	if filter.City != nil {
		builder = builder.Where("LOWER(l.city) = LOWER(?)", *filter.City)
	}
	if filter.Location != nil {
		builder = builder.Where("LOWER(l.location) = LOWER(?)", *filter.Location)
	}
	if filter.MaxPrice != nil {
		builder = builder.Where(squirrel.LtOrEq{"l.price_per_hour": *filter.MaxPrice})
	}

	builder = builder.GroupBy("l.id", "l.city", "l.location", "l.total_slots", "l.price_per_hour")
	if filter.AvailableOnly {
		builder = builder.Having("COUNT(s.id) FILTER (WHERE s.status = 'AVAILABLE') > 0")
	}
	builder = builder.OrderBy("l.city", "l.location", "l.id")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ParkingLotSummary, 0)
	for rows.Next() {
		var s domain.ParkingLotSummary
		if err := rows.Scan(&s.Lot.ID, &s.Lot.City, &s.Lot.Location, &s.Lot.TotalSlots, &s.Lot.PricePerHour, &s.AvailableSlots); err != nil {
			return nil, fmt.Errorf("%w: Search - scan: %v", ErrScanRow, err)
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Search - rows iteration: %v", ErrScanRow, err)
	}
	return result, nil
}

// GetAll возвращает все парковки
func (r *Repository) GetAll(ctx context.Context) ([]*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "city", "location", "total_slots", "price_per_hour").
		From("parking_lots").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lots := make([]*domain.ParkingLot, 0)
	for rows.Next() {
		var lot domain.ParkingLot
		if err := rows.Scan(&lot.ID, &lot.City, &lot.Location, &lot.TotalSlots, &lot.PricePerHour); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan: %v", ErrScanRow, err)
		}
		lots = append(lots, &lot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows iteration: %v", ErrScanRow, err)
	}
	return lots, nil
}

// GetCities возвращает список различных городов в алфавитном порядке
func (r *Repository) GetCities(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "GetCities", "city", nil)
}

// GetLocationsByCity возвращает различные локации города
func (r *Repository) GetLocationsByCity(ctx context.Context, city string) ([]string, error) {
	return r.distinct(ctx, "GetLocationsByCity", "location", squirrel.Expr("LOWER(city) = LOWER(?)", city))
}

// Delete удаляет парковку вместе с местами (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("parking_lots").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrLotNotFound
	}
	return nil
}

func (r *Repository) distinct(ctx context.Context, op, column string, where squirrel.Sqlizer) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("DISTINCT " + column).From("parking_lots")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.OrderBy(column).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%w: %s - scan: %v", ErrScanRow, op, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}
	return values, nil
}
