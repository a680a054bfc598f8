package report

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository журнал построенных отчетов (только добавление)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отчетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись о построенном отчете
func (r *Repository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reports").
		Columns("type", "generated_at", "admin_id").
		Values(report.Type, report.GeneratedAt, report.AdminID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&report.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return report, nil
}

// GetRecent возвращает последние limit записей журнала
func (r *Repository) GetRecent(ctx context.Context, limit uint64) ([]*domain.Report, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "type", "generated_at", "admin_id").
		From("reports").
		OrderBy("generated_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecent - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reports := make([]*domain.Report, 0)
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.Type, &rep.GeneratedAt, &rep.AdminID); err != nil {
			return nil, fmt.Errorf("%w: GetRecent - scan: %v", ErrScanRow, err)
		}
		reports = append(reports, &rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRecent - rows iteration: %v", ErrScanRow, err)
	}
	return reports, nil
}
