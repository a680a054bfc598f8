package vehiclelog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository репозиторий записей о въезде и выезде
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create открывает запись о въезде
// Частичный уникальный индекс по vehicle_id WHERE exit_time IS NULL не дает открыть вторую запись
func (r *Repository) Create(ctx context.Context, log *domain.VehicleLog) (*domain.VehicleLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicle_logs").
		Columns("vehicle_id", "lot_id", "entry_time").
		Values(log.VehicleID, log.LotID, log.EntryTime).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&log.ID); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - vehicle_id: %d", ErrOpenLogExists, log.VehicleID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return log, nil
}

// GetOpenByVehicleID возвращает открытую запись автомобиля (в любой парковке)
func (r *Repository) GetOpenByVehicleID(ctx context.Context, vehicleID int64) (*domain.VehicleLog, error) {
	return r.getOne(ctx, "GetOpenByVehicleID", squirrel.And{
		squirrel.Eq{"vehicle_id": vehicleID},
		squirrel.Eq{"exit_time": nil},
	}, "id DESC")
}

// GetLatestClosedByVehicleID возвращает последнюю закрытую запись автомобиля
func (r *Repository) GetLatestClosedByVehicleID(ctx context.Context, vehicleID int64) (*domain.VehicleLog, error) {
	return r.getOne(ctx, "GetLatestClosedByVehicleID", squirrel.And{
		squirrel.Eq{"vehicle_id": vehicleID},
		squirrel.NotEq{"exit_time": nil},
	}, "exit_time DESC", "id DESC")
}

// Close проставляет время выезда открытой записи
func (r *Repository) Close(ctx context.Context, id int64, exitTime time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vehicle_logs").
		Set("exit_time", exitTime).
		Where(squirrel.And{
			squirrel.Eq{"id": id},
			squirrel.Eq{"exit_time": nil},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Close - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Close - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Close - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrLogNotFound
	}
	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer, orderBy ...string) (*domain.VehicleLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "vehicle_id", "lot_id", "entry_time", "exit_time").
		From("vehicle_logs").
		Where(where).
		OrderBy(orderBy...).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var l domain.VehicleLog
	var exitTime sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&l.ID, &l.VehicleID, &l.LotID, &l.EntryTime, &exitTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	if exitTime.Valid {
		l.ExitTime = &exitTime.Time
	}
	return &l, nil
}
