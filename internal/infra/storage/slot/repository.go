package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HomeHair-BookingService/pkg/psqlbuilder"
)

const table = "available_slots"

// upsertSuffix обновляет существующую запись; service_id сохраняется, если не передан новый
const upsertSuffix = `ON CONFLICT (id) DO UPDATE SET
	is_available = EXCLUDED.is_available,
	service_id = COALESCE(EXCLUDED.service_id, available_slots.service_id),
	last_updated = EXCLUDED.last_updated`

var columns = []string{
	"id",
	"slot_date",
	"slot_time",
	"is_available",
	"service_id",
	"last_updated",
}

// Repository репозиторий слотов доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет слот по детерминированному ID
// Повторный вызов с теми же аргументами не меняет состояние (кроме last_updated)
func (r *Repository) Upsert(ctx context.Context, slot *domain.Slot) error {
	return r.UpsertMany(ctx, []*domain.Slot{slot})
}

// UpsertMany пакетный upsert слотов одним запросом
func (r *Repository) UpsertMany(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	now := time.Now().UTC()

	// Postgres не даёт обновить одну строку дважды в одном INSERT ... ON CONFLICT
	builder := psqlbuilder.Insert(table).Columns(columns...)
	for _, s := range dedupe(slots) {
		builder = builder.Values(
			s.ID,
			domain.FormatDate(s.Date),
			s.Time,
			s.IsAvailable,
			s.ServiceID,
			now,
		)
	}

	query, args, err := builder.Suffix(upsertSuffix).ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertMany - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertMany - execute upsert: %v", ErrExecQuery, err)
	}

	for _, s := range slots {
		s.LastUpdated = now
	}
	return nil
}

// Claim атомарно занимает слот: создаёт его недоступным или переводит доступный в недоступный
// Возвращает false, если слот уже был недоступен
func (r *Repository) Claim(ctx context.Context, slot *domain.Slot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	now := time.Now().UTC()

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(
			slot.ID,
			domain.FormatDate(slot.Date),
			slot.Time,
			false,
			slot.ServiceID,
			now,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
	is_available = FALSE,
	service_id = COALESCE(EXCLUDED.service_id, available_slots.service_id),
	last_updated = EXCLUDED.last_updated
WHERE available_slots.is_available = TRUE
RETURNING id`).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Claim - build insert query: %v", ErrBuildQuery, err)
	}

	var id string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Claim - execute upsert: %v", ErrExecQuery, err)
	}

	slot.IsAvailable = false
	slot.LastUpdated = now
	return true, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}
	return slot, nil
}

// GetByDate получает все слоты календарного дня
// onlyAvailable = true оставляет только доступные
func (r *Repository) GetByDate(ctx context.Context, date time.Time, onlyAvailable bool) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"slot_date": domain.FormatDate(date)}).
		OrderBy("slot_time ASC")

	if onlyAvailable {
		builder = builder.Where(squirrel.Eq{"is_available": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// DeleteBefore удаляет слоты с датой строго раньше date
// Возвращает количество удалённых записей
func (r *Repository) DeleteBefore(ctx context.Context, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Lt{"slot_date": domain.FormatDate(date)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBefore - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

// InsertMissing создаёт только отсутствующие слоты, существующие записи не трогает
// Возвращает количество созданных слотов
func (r *Repository) InsertMissing(ctx context.Context, slots []*domain.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	now := time.Now().UTC()

	builder := psqlbuilder.Insert(table).Columns(columns...)
	for _, s := range dedupe(slots) {
		builder = builder.Values(
			s.ID,
			domain.FormatDate(s.Date),
			s.Time,
			s.IsAvailable,
			s.ServiceID,
			now,
		)
	}

	query, args, err := builder.Suffix("ON CONFLICT (id) DO NOTHING").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: InsertMissing - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: InsertMissing - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: InsertMissing - rows affected: %v", ErrExecQuery, err)
	}
	return int(inserted), nil
}

// dedupe оставляет последнюю запись для каждого ID, сохраняя порядок
func dedupe(slots []*domain.Slot) []*domain.Slot {
	index := make(map[string]int, len(slots))
	out := make([]*domain.Slot, 0, len(slots))
	for _, s := range slots {
		if i, ok := index[s.ID]; ok {
			out[i] = s
			continue
		}
		index[s.ID] = len(out)
		out = append(out, s)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		slot        domain.Slot
		date        time.Time
		serviceID   sql.NullString
		lastUpdated sql.NullTime
	)

	if err := row.Scan(
		&slot.ID,
		&date,
		&slot.Time,
		&slot.IsAvailable,
		&serviceID,
		&lastUpdated,
	); err != nil {
		return nil, err
	}

	slot.Date = domain.DateOf(date)
	if serviceID.Valid {
		slot.ServiceID = &serviceID.String
	}
	slot.LastUpdated = lastUpdated.Time

	return &slot, nil
}
