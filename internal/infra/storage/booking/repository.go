package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var columns = []string{"id", "user_id", "vehicle_id", "slot_id", "start_time", "end_time", "payment_status"}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Бронирование создается вместе со сменой статуса места, поэтому вызывается в транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("user_id", "vehicle_id", "slot_id", "start_time", "end_time", "payment_status").
		Values(
			booking.UserID,
			booking.VehicleID,
			booking.SlotID,
			booking.StartTime,
			booking.EndTime,
			booking.PaymentStatus,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id}, false)
}

// GetByIDForUpdate получает бронирование и блокирует строку до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByIDForUpdate", squirrel.Eq{"id": id}, true)
}

// GetActiveBySlotID возвращает ожидающее оплаты бронирование, удерживающее место
func (r *Repository) GetActiveBySlotID(ctx context.Context, slotID int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetActiveBySlotID", squirrel.Eq{
		"slot_id":        slotID,
		"payment_status": domain.PaymentStatusPending,
	}, false)
}

// GetByUserID получает бронирования пользователя, новые первыми
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_time DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows iteration: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// CompletePayment закрывает бронирование после оплаты:
// фиксирует время окончания, статус Completed и очищает ссылку на место
// Обновляет только бронирования в статусе Pending
func (r *Repository) CompletePayment(ctx context.Context, id int64, endTime time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("end_time", endTime).
		Set("payment_status", domain.PaymentStatusCompleted).
		Set("slot_id", nil).
		Where(squirrel.Eq{"id": id, "payment_status": domain.PaymentStatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CompletePayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CompletePayment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CompletePayment - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: CompletePayment - booking_id: %d", ErrNotPending, id)
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(where).
		OrderBy("id DESC").
		Limit(1)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}

	return b, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(s scanner) (*domain.Booking, error) {
	var b domain.Booking
	var slotID sql.NullInt64
	var endTime sql.NullTime

	err := s.Scan(&b.ID, &b.UserID, &b.VehicleID, &slotID, &b.StartTime, &endTime, &b.PaymentStatus)
	if err != nil {
		return nil, err
	}

	if slotID.Valid {
		b.SlotID = &slotID.Int64
	}
	if endTime.Valid {
		b.EndTime = &endTime.Time
	}
	return &b, nil
}
