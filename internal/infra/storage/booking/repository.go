package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HomeHair-BookingService/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"service_id",
	"booking_date",
	"start_time",
	"name",
	"email",
	"phone",
	"address",
	"message",
	"status",
	"created_at",
	"updated_at",
}

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
// ID генерируется на стороне сервиса, если не задан.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"service_id",
			"booking_date",
			"start_time",
			"name",
			"email",
			"phone",
			"address",
			"message",
			"status",
		).
		Values(
			booking.ID,
			booking.ServiceID,
			domain.FormatDate(booking.Date),
			booking.Time,
			booking.Name,
			booking.Email,
			booking.Phone,
			booking.Address,
			booking.Message,
			booking.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.Date = domain.DateOf(booking.Date)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		// Невалидный UUID не может существовать в таблице
		return nil, ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByFilter получает бронирования по периоду и статусам
// Сортировка: по дате и времени начала
func (r *Repository) GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("booking_date ASC", "start_time ASC", "created_at ASC")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": domain.FormatDate(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": domain.FormatDate(*filter.EndDate)})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			statuses = append(statuses, string(st))
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows, "GetByFilter")
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "UpdateStatus")
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "Delete")
}

// DeleteObsolete удаляет прошедшие (дата < today) и отменённые бронирования
// Возвращает количество удалённых записей
func (r *Repository) DeleteObsolete(ctx context.Context, today time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Or{
			squirrel.Lt{"booking_date": domain.FormatDate(today)},
			squirrel.Eq{"status": string(domain.StatusCancelled)},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteObsolete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteObsolete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteObsolete - get rows affected: %v", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		date                 time.Time
		message              sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	if err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&date,
		&booking.Time,
		&booking.Name,
		&booking.Email,
		&booking.Phone,
		&booking.Address,
		&message,
		&booking.Status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	booking.Date = domain.DateOf(date)
	if message.Valid {
		booking.Message = &message.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует все строки результата в список бронирований
func scanBookings(rows *sql.Rows, op string) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}
