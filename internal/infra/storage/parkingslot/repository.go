package parkingslot

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

// Repository репозиторий парковочных мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateForLot создает count свободных мест для парковки одним запросом
func (r *Repository) CreateForLot(ctx context.Context, lotID int64, count int) error {
	if count <= 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("parking_slots").Columns("lot_id", "status")
	for i := 0; i < count; i++ {
		builder = builder.Values(lotID, domain.SlotStatusAvailable)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateForLot - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateForLot - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает место по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingSlot, error) {
	return r.get(ctx, "GetByID", id, false)
}

// GetByIDForUpdate получает место по ID и блокирует строку до конца транзакции
// Должен вызываться внутри транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.ParkingSlot, error) {
	return r.get(ctx, "GetByIDForUpdate", id, true)
}

// UpdateStatus меняет статус места
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: UpdateStatus - status: %s", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_slots").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// GetByLotID возвращает места парковки по порядку
func (r *Repository) GetByLotID(ctx context.Context, lotID int64) ([]*domain.ParkingSlot, error) {
	return r.list(ctx, "GetByLotID", lotID, false)
}

// GetByLotIDForUpdate возвращает места парковки и блокирует их строки до конца транзакции
// Должен вызываться внутри транзакции
func (r *Repository) GetByLotIDForUpdate(ctx context.Context, lotID int64) ([]*domain.ParkingSlot, error) {
	return r.list(ctx, "GetByLotIDForUpdate", lotID, true)
}

func (r *Repository) list(ctx context.Context, op string, lotID int64, forUpdate bool) ([]*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "lot_id", "status").
		From("parking_slots").
		Where(squirrel.Eq{"lot_id": lotID}).
		OrderBy("id")
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]*domain.ParkingSlot, 0)
	for rows.Next() {
		var s domain.ParkingSlot
		if err := rows.Scan(&s.ID, &s.LotID, &s.Status); err != nil {
			return nil, fmt.Errorf("%w: %s - scan: %v", ErrScanRow, op, err)
		}
		slots = append(slots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}
	return slots, nil
}

// GetStatistics считает места парковки по статусам
func (r *Repository) GetStatistics(ctx context.Context, lotID int64) (domain.SlotStatistics, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var stats domain.SlotStatistics

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("parking_slots").
		Where(squirrel.Eq{"lot_id": lotID}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("%w: GetStatistics - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return stats, fmt.Errorf("%w: GetStatistics - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.SlotStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return stats, fmt.Errorf("%w: GetStatistics - scan: %v", ErrScanRow, err)
		}
		stats.Add(status, count)
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("%w: GetStatistics - rows iteration: %v", ErrScanRow, err)
	}
	return stats, nil
}

func (r *Repository) get(ctx context.Context, op string, id int64, forUpdate bool) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "lot_id", "status").
		From("parking_slots").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var s domain.ParkingSlot
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.LotID, &s.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	return &s, nil
}
