package vehicle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var columns = []string{"id", "user_id", "plate_number", "type", "brand", "model", "color", "created_at"}

// Repository репозиторий транспортных средств
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория транспортных средств
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует автомобиль, номер хранится в верхнем регистре
func (r *Repository) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	v.PlateNumber = strings.ToUpper(strings.TrimSpace(v.PlateNumber))

	query, args, err := psqlbuilder.Insert("vehicles").
		Columns("user_id", "plate_number", "type", "brand", "model", "color").
		Values(v.UserID, v.PlateNumber, v.Type, v.Brand, v.Model, v.Color).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&v.ID, &v.CreatedAt); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - plate: %s", ErrPlateTaken, v.PlateNumber)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return v, nil
}

// GetByID получает автомобиль по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	v, err := scanVehicle(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - execute select: %v", ErrExecQuery, err)
	}
	return v, nil
}

// GetByUserID возвращает автомобили пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("vehicles").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan: %v", ErrScanRow, err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows iteration: %v", ErrScanRow, err)
	}
	return vehicles, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanVehicle(s scanner) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := s.Scan(&v.ID, &v.UserID, &v.PlateNumber, &v.Type, &v.Brand, &v.Model, &v.Color, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
