package get_available_slots

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// UseCase use case для получения свободного времени на дату
type UseCase struct {
	slots        SlotStore
	sync         SlotSync
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slots SlotStore, sync SlotSync, opts Options, logger Logger) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &UseCase{
		slots:        slots,
		sync:         sync,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободного времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", domain.FormatDate(req.Date))

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := domain.DateOf(req.Date)
	localNow := uc.timeProvider.Now().In(uc.opts.Location)
	today := domain.Today(localNow, uc.opts.Location)

	// 2. Проверяем дату
	if date.Before(today) {
		uc.logger.Warn("GetAvailableSlots: date=%s is in the past", domain.FormatDate(date))
		return nil, ErrInvalidDate
	}
	if uc.opts.HorizonMonths > 0 && !date.Before(today.AddDate(0, uc.opts.HorizonMonths, 0)) {
		uc.logger.Warn("GetAvailableSlots: date=%s is beyond the %d months horizon", domain.FormatDate(date), uc.opts.HorizonMonths)
		return nil, ErrDateTooFarInFuture
	}

	// 3. День без записей слотов заполняем по бронированиям
	if uc.opts.AutoSeedEmptyDates && !domain.IsExcludedWeekday(date, uc.opts.ExcludedWeekdays) {
		uc.seedIfEmpty(ctx, date)
	}

	// 4. Пересечение доступных слотов и незанятого времени
	times, err := uc.slots.GetActuallyAvailableSlotsForDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots for date=%s: %v", domain.FormatDate(date), err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// 5. На сегодня убираем время, до которого осталось меньше минимального запаса
	if date.Equal(today) {
		times = filterByNotice(times, localNow, uc.opts.MinBookingNoticeMinutes)
	}

	sort.Slice(times, func(i, j int) bool { return times[i].IsBefore(times[j]) })

	uc.logger.Info("GetAvailableSlots: %d times available on %s", len(times), domain.FormatDate(date))
	return &Response{Date: date, Times: times}, nil
}

// seedIfEmpty запускает SyncSlotsForDate, если на дату нет ни одной записи
// Ошибки не прерывают чтение
func (uc *UseCase) seedIfEmpty(ctx context.Context, date time.Time) {
	existing, err := uc.slots.GetSlotsForDate(ctx, date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cannot check slot records for date=%s: %v", domain.FormatDate(date), err)
		return
	}
	if len(existing) > 0 {
		return
	}

	uc.logger.Info("GetAvailableSlots: no slot records for date=%s, seeding", domain.FormatDate(date))
	if err := uc.sync.SyncSlotsForDate(ctx, date, uc.opts.TimeLabels); err != nil {
		uc.logger.Warn("GetAvailableSlots: seeding date=%s failed: %v", domain.FormatDate(date), err)
	}
}

func filterByNotice(times []types.TimeString, localNow time.Time, minNoticeMinutes int) []types.TimeString {
	minAllowed, err := types.NewTimeString(localNow).AddMinutes(minNoticeMinutes)
	if err != nil {
		return []types.TimeString{}
	}

	out := make([]types.TimeString, 0, len(times))
	for _, t := range times {
		if t.IsBefore(minAllowed) {
			continue
		}
		out = append(out, t)
	}
	return out
}
