// Package stats читает плоские выборки для построения отчетов
// Агрегация выполняется в сервисе отчетов, здесь только чтение
package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository репозиторий выборок для отчетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPayments возвращает платежи за период вместе с городом и локацией парковки
func (r *Repository) GetPayments(ctx context.Context, period domain.DateRange) ([]domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.id",
		"p.booking_id",
		"p.amount",
		"p.method",
		"p.status",
		"p.paid_at",
		"p.lot_id",
		"u.name",
		"COALESCE(l.city, '')",
		"COALESCE(l.location, '')",
	).
		From("payments p").
		Join("bookings b ON b.id = p.booking_id").
		Join("users u ON u.id = b.user_id").
		LeftJoin("parking_lots l ON l.id = p.lot_id").
		Where(squirrel.GtOrEq{"p.paid_at": period.From}).
		Where(squirrel.LtOrEq{"p.paid_at": period.To}).
		OrderBy("p.paid_at DESC", "p.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPayments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPayments - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.PaymentRecord, 0)
	for rows.Next() {
		var rec domain.PaymentRecord
		var lotID sql.NullInt64
		if err := rows.Scan(
			&rec.ID,
			&rec.BookingID,
			&rec.Amount,
			&rec.Method,
			&rec.Status,
			&rec.Timestamp,
			&lotID,
			&rec.UserName,
			&rec.City,
			&rec.Location,
		); err != nil {
			return nil, fmt.Errorf("%w: GetPayments - scan: %v", ErrScanRow, err)
		}
		if lotID.Valid {
			rec.LotID = &lotID.Int64
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPayments - rows iteration: %v", ErrScanRow, err)
	}
	return records, nil
}

// GetBookings возвращает бронирования, начатые в периоде
// Парковка берется из места (пока бронирование активно) или из платежа (после оплаты)
func (r *Repository) GetBookings(ctx context.Context, period domain.DateRange) ([]domain.BookingRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.user_id",
		"b.start_time",
		"b.payment_status",
		"COALESCE(l.city, '')",
		"COALESCE(l.location, '')",
	).
		From("bookings b").
		LeftJoin("parking_slots s ON s.id = b.slot_id").
		LeftJoin("payments p ON p.booking_id = b.id").
		LeftJoin("parking_lots l ON l.id = COALESCE(s.lot_id, p.lot_id)").
		Where(squirrel.GtOrEq{"b.start_time": period.From}).
		Where(squirrel.LtOrEq{"b.start_time": period.To}).
		OrderBy("b.start_time", "b.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookings - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.BookingRecord, 0)
	for rows.Next() {
		var rec domain.BookingRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.StartTime, &rec.PaymentStatus, &rec.City, &rec.Location); err != nil {
			return nil, fmt.Errorf("%w: GetBookings - scan: %v", ErrScanRow, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookings - rows iteration: %v", ErrScanRow, err)
	}
	return records, nil
}

// GetSlots возвращает текущее состояние всех мест с городом и локацией
func (r *Repository) GetSlots(ctx context.Context) ([]domain.SlotRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("s.id", "s.lot_id", "s.status", "l.city", "l.location").
		From("parking_slots s").
		Join("parking_lots l ON l.id = s.lot_id").
		OrderBy("s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlots - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.SlotRecord, 0)
	for rows.Next() {
		var rec domain.SlotRecord
		if err := rows.Scan(&rec.ID, &rec.LotID, &rec.Status, &rec.City, &rec.Location); err != nil {
			return nil, fmt.Errorf("%w: GetSlots - scan: %v", ErrScanRow, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSlots - rows iteration: %v", ErrScanRow, err)
	}
	return records, nil
}

// CountLots возвращает количество парковок
func (r *Repository) CountLots(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountLots", "parking_lots")
}

// CountUsers возвращает количество пользователей
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountUsers", "users")
}

// CountBookingsByStatus возвращает количество бронирований в статусе оплаты
func (r *Repository) CountBookingsByStatus(ctx context.Context, status domain.PaymentStatus) (int64, error) {
	return r.count(ctx, "CountBookingsByStatus", "bookings", squirrel.Eq{"payment_status": status})
}

// CountOpenLogs возвращает количество автомобилей, находящихся на парковках
func (r *Repository) CountOpenLogs(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountOpenLogs", "vehicle_logs", squirrel.Eq{"exit_time": nil})
}

// CountLogs возвращает общее количество записей о въезде
func (r *Repository) CountLogs(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountLogs", "vehicle_logs")
}

// CountNotifications возвращает количество уведомлений; при заданном типе только этого типа
func (r *Repository) CountNotifications(ctx context.Context, notificationType *domain.NotificationType) (int64, error) {
	if notificationType == nil {
		return r.count(ctx, "CountNotifications", "notifications")
	}
	return r.count(ctx, "CountNotifications", "notifications", squirrel.Eq{"type": *notificationType})
}

// SumCompletedRevenue возвращает сумму завершенных платежей, начиная с since (nil - за все время)
func (r *Repository) SumCompletedRevenue(ctx context.Context, since *time.Time) (decimal.Decimal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("payments").
		Where(squirrel.Eq{"status": domain.PaymentStatusCompleted})
	if since != nil {
		builder = builder.Where(squirrel.GtOrEq{"paid_at": *since})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: SumCompletedRevenue - build select query: %v", ErrBuildQuery, err)
	}

	var sum decimal.Decimal
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("%w: SumCompletedRevenue - execute select: %v", ErrExecQuery, err)
	}
	return sum, nil
}

func (r *Repository) count(ctx context.Context, op, table string, where ...squirrel.Sqlizer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("COUNT(*)").From(table)
	for _, w := range where {
		builder = builder.Where(w)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var n int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	return n, nil
}
