package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	slotRepo "github.com/m04kA/HomeHair-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// Service хранилище доступности слотов (date, time) -> isAvailable
// Отсутствующая запись считается доступной
type Service struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	metrics      Metrics
	location     *time.Location
	workers      int
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	metrics Metrics,
	location *time.Location,
	workers int,
	logger Logger,
) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		metrics:      metrics,
		location:     location,
		workers:      workers,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Today текущий календарный день в часовом поясе сервиса
func (s *Service) Today() time.Time {
	return domain.Today(s.timeProvider.Now(), s.location)
}

// SetAvailability создает или обновляет слот (date, time)
// serviceID == nil сохраняет ранее записанную услугу
func (s *Service) SetAvailability(ctx context.Context, date time.Time, t types.TimeString, isAvailable bool, serviceID *string) error {
	slot := domain.NewSlot(date, t, isAvailable, serviceID)

	if err := s.slotRepo.Upsert(ctx, slot); err != nil {
		s.logger.Error("SetAvailability: failed to upsert slot id=%s: %v", slot.ID, err)
		return fmt.Errorf("%w: SetAvailability - repository error: %v", ErrStoreUnavailable, err)
	}

	s.metrics.IncSlotUpdate(isAvailable)
	s.logger.Info("SetAvailability: slot id=%s available=%t", slot.ID, isAvailable)
	return nil
}

// UpsertSlots записывает набор слотов одним вызовом хранилища
// Для одного ID применяется последняя запись
func (s *Service) UpsertSlots(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	if err := s.slotRepo.UpsertMany(ctx, slots); err != nil {
		s.logger.Error("UpsertSlots: failed to upsert %d slots: %v", len(slots), err)
		return fmt.Errorf("%w: UpsertSlots - repository error: %v", ErrStoreUnavailable, err)
	}

	for _, slot := range slots {
		s.metrics.IncSlotUpdate(slot.IsAvailable)
	}
	return nil
}

// Claim атомарно занимает слот
// Возвращает false, если слот уже недоступен
func (s *Service) Claim(ctx context.Context, date time.Time, t types.TimeString, serviceID string) (bool, error) {
	slot := domain.NewSlot(date, t, false, &serviceID)

	ok, err := s.slotRepo.Claim(ctx, slot)
	if err != nil {
		s.logger.Error("Claim: failed to claim slot id=%s: %v", slot.ID, err)
		return false, fmt.Errorf("%w: Claim - repository error: %v", ErrStoreUnavailable, err)
	}

	if ok {
		s.metrics.IncSlotUpdate(false)
	}
	return ok, nil
}

// GetSlotsForDate возвращает все записи слотов календарного дня
func (s *Service) GetSlotsForDate(ctx context.Context, date time.Time) ([]*domain.Slot, error) {
	slots, err := s.slotRepo.GetByDate(ctx, date, false)
	if err != nil {
		s.logger.Error("GetSlotsForDate: repository error for date=%s: %v", domain.FormatDate(date), err)
		return nil, fmt.Errorf("%w: GetSlotsForDate - repository error: %v", ErrStoreUnavailable, err)
	}
	return slots, nil
}

// GetAvailableSlotsForDate возвращает доступные записи слотов календарного дня
func (s *Service) GetAvailableSlotsForDate(ctx context.Context, date time.Time) ([]*domain.Slot, error) {
	slots, err := s.slotRepo.GetByDate(ctx, date, true)
	if err != nil {
		s.logger.Error("GetAvailableSlotsForDate: repository error for date=%s: %v", domain.FormatDate(date), err)
		return nil, fmt.Errorf("%w: GetAvailableSlotsForDate - repository error: %v", ErrStoreUnavailable, err)
	}
	return slots, nil
}

// Lookup возвращает состояние слота: unknown (нет записи), available или unavailable
func (s *Service) Lookup(ctx context.Context, date time.Time, t types.TimeString) (domain.Availability, error) {
	id := domain.SlotID(date, t)

	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return domain.AvailabilityUnknown, nil
		}
		s.logger.Error("Lookup: repository error for slot id=%s: %v", id, err)
		return domain.AvailabilityUnknown, fmt.Errorf("%w: Lookup - repository error: %v", ErrStoreUnavailable, err)
	}

	return domain.AvailabilityOf(slot), nil
}

// IsSlotAvailable возвращает true, если слот можно бронировать
// Слот без записи считается доступным
func (s *Service) IsSlotAvailable(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	availability, err := s.Lookup(ctx, date, t)
	if err != nil {
		return false, err
	}
	return availability.IsBookable(), nil
}

// GenerateForRange открывает все labels для каждого дня [start, end], кроме исключённых дней недели
// Возвращает количество записанных слотов
func (s *Service) GenerateForRange(
	ctx context.Context,
	start, end time.Time,
	labels []types.TimeString,
	excluded []time.Weekday,
) (int, error) {
	days, err := generationDays(start, end, labels)
	if err != nil {
		return 0, err
	}

	s.logger.Info("GenerateForRange: generating slots from %s to %s (%d labels, excluded=%v)",
		domain.FormatDate(start), domain.FormatDate(end), len(labels), excluded)

	written := 0
	for _, day := range days {
		if domain.IsExcludedWeekday(day, excluded) {
			continue
		}

		batch := make([]*domain.Slot, 0, len(labels))
		for _, label := range labels {
			batch = append(batch, domain.NewSlot(day, label, true, nil))
		}

		if err := s.UpsertSlots(ctx, batch); err != nil {
			s.logger.Error("GenerateForRange: stopped at %s after %d slots: %v", domain.FormatDate(day), written, err)
			return written, err
		}
		written += len(batch)
	}

	s.logger.Info("GenerateForRange: %d slots written", written)
	return written, nil
}

// SeedForRange создаёт отсутствующие слоты labels для каждого дня [start, end], кроме исключённых
// Существующие слоты (закрытые вручную или занятые бронированием) не меняются
// Возвращает количество созданных слотов
func (s *Service) SeedForRange(
	ctx context.Context,
	start, end time.Time,
	labels []types.TimeString,
	excluded []time.Weekday,
) (int, error) {
	days, err := generationDays(start, end, labels)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, day := range days {
		if domain.IsExcludedWeekday(day, excluded) {
			continue
		}

		batch := make([]*domain.Slot, 0, len(labels))
		for _, label := range labels {
			batch = append(batch, domain.NewSlot(day, label, true, nil))
		}

		n, err := s.slotRepo.InsertMissing(ctx, batch)
		if err != nil {
			s.logger.Error("SeedForRange: stopped at %s after %d slots: %v", domain.FormatDate(day), created, err)
			return created, fmt.Errorf("%w: SeedForRange - repository error: %v", ErrStoreUnavailable, err)
		}
		for i := 0; i < n; i++ {
			s.metrics.IncSlotUpdate(true)
		}
		created += n
	}

	s.logger.Info("SeedForRange: %s..%s seeded, %d new slots", domain.FormatDate(start), domain.FormatDate(end), created)
	return created, nil
}

func generationDays(start, end time.Time, labels []types.TimeString) ([]time.Time, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no time labels", ErrInvalidInput)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidInput, domain.FormatDate(end), domain.FormatDate(start))
	}

	days := domain.DaysBetween(start, end)
	if len(days) > domain.MaxGenerateDays {
		return nil, fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLarge, len(days), domain.MaxGenerateDays)
	}
	return days, nil
}

// GetActuallyAvailableSlotsForDate пересечение доступных записей слотов и времени,
// не занятого бронированиями pending/confirmed
// Если бронирования получить не удалось, возвращает только доступные записи слотов
func (s *Service) GetActuallyAvailableSlotsForDate(ctx context.Context, date time.Time) ([]types.TimeString, error) {
	available, err := s.GetAvailableSlotsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	day := domain.DateOf(date)
	bookings, err := s.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{
		StartDate: &day,
		EndDate:   &day,
		Statuses:  domain.OccupyingStatuses,
	})
	if err != nil {
		s.logger.Warn("GetActuallyAvailableSlotsForDate: bookings unavailable for date=%s, using slot records only: %v",
			domain.FormatDate(date), err)
		bookings = nil
	}

	occupied := make(map[types.TimeString]struct{}, len(bookings))
	for _, b := range bookings {
		occupied[b.Time] = struct{}{}
	}

	times := make([]types.TimeString, 0, len(available))
	for _, slot := range available {
		if _, taken := occupied[slot.Time]; taken {
			continue
		}
		times = append(times, slot.Time)
	}

	return times, nil
}
