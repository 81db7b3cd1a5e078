package slotsync

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// Виды запусков синхронизации (метки метрик)
const (
	KindDate       = "date"
	KindUpcoming   = "upcoming"
	KindInitialize = "initialize"
	KindSeed       = "seed"
	KindTransition = "transition"
)

// Service выводит состояние слотов из бронирований
// Хранилище бронирований считается источником истины
type Service struct {
	slots               SlotStore
	bookingRepo         BookingRepository
	metrics             Metrics
	rebuildOnTransition bool
	workers             int
	logger              Logger
}

// NewService создает новый экземпляр сервиса синхронизации
func NewService(
	slots SlotStore,
	bookingRepo BookingRepository,
	metrics Metrics,
	rebuildOnTransition bool,
	workers int,
	logger Logger,
) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		slots:               slots,
		bookingRepo:         bookingRepo,
		metrics:             metrics,
		rebuildOnTransition: rebuildOnTransition,
		workers:             workers,
		logger:              logger,
	}
}

// UpdateSlotBasedOnBooking записывает доступность слота бронирования с его услугой
func (s *Service) UpdateSlotBasedOnBooking(ctx context.Context, booking *domain.Booking, isAvailable bool) error {
	serviceID := booking.ServiceID
	if err := s.slots.SetAvailability(ctx, booking.Date, booking.Time, isAvailable, &serviceID); err != nil {
		return fmt.Errorf("%w: UpdateSlotBasedOnBooking - booking id=%s: %v", ErrStoreUnavailable, booking.ID, err)
	}
	return nil
}

// ApplyTransition применяет к слоту эффект перехода бронирования в статус status:
// cancelled открывает слот, confirmed/completed закрывают, pending ничего не меняет.
// Затем ключ перепроверяется по активным бронированиям (кроме pending).
func (s *Service) ApplyTransition(ctx context.Context, booking *domain.Booking, status domain.BookingStatus) (err error) {
	defer func() { s.metrics.IncSyncRun(KindTransition, err) }()

	switch domain.SlotEffectOf(status) {
	case domain.SlotEffectNone:
		return nil
	case domain.SlotEffectRelease:
		err = s.UpdateSlotBasedOnBooking(ctx, booking, true)
	case domain.SlotEffectOccupy:
		err = s.UpdateSlotBasedOnBooking(ctx, booking, false)
	}
	if err != nil {
		return err
	}

	if s.rebuildOnTransition {
		if _, err = s.ReconcileKey(ctx, booking.Date, booking.Time); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseBookingSlot открывает слот удалённого бронирования независимо от его статуса
func (s *Service) ReleaseBookingSlot(ctx context.Context, booking *domain.Booking) error {
	if err := s.UpdateSlotBasedOnBooking(ctx, booking, true); err != nil {
		return err
	}
	if s.rebuildOnTransition {
		if _, err := s.ReconcileKey(ctx, booking.Date, booking.Time); err != nil {
			return err
		}
	}
	return nil
}

// ReconcileKey закрывает слот (date, t), если его держит бронирование pending/confirmed
// Никогда не открывает слот, поэтому ручные закрытия сохраняются
func (s *Service) ReconcileKey(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	day := domain.DateOf(date)
	bookings, err := s.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{
		StartDate: &day,
		EndDate:   &day,
		Statuses:  domain.OccupyingStatuses,
	})
	if err != nil {
		s.logger.Error("ReconcileKey: failed to get bookings for date=%s: %v", domain.FormatDate(day), err)
		return false, fmt.Errorf("%w: ReconcileKey - repository error: %v", ErrStoreUnavailable, err)
	}

	for _, b := range bookings {
		if b.Time != t {
			continue
		}
		s.logger.Info("ReconcileKey: slot id=%s still held by booking id=%s", domain.SlotID(day, t), b.ID)
		serviceID := b.ServiceID
		if err := s.slots.SetAvailability(ctx, day, t, false, &serviceID); err != nil {
			return true, fmt.Errorf("%w: ReconcileKey - %v", ErrStoreUnavailable, err)
		}
		return true, nil
	}
	return false, nil
}

// SyncSlotsForDate перестраивает слоты дня: все labels доступны,
// затем время бронирований pending/confirmed недоступно
func (s *Service) SyncSlotsForDate(ctx context.Context, date time.Time, labels []types.TimeString) (err error) {
	defer func() { s.metrics.IncSyncRun(KindDate, err) }()

	day := domain.DateOf(date)
	s.logger.Info("SyncSlotsForDate: syncing date=%s with %d labels", domain.FormatDate(day), len(labels))

	bookings, err := s.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{
		StartDate: &day,
		EndDate:   &day,
	})
	if err != nil {
		s.logger.Error("SyncSlotsForDate: failed to get bookings for date=%s: %v", domain.FormatDate(day), err)
		return fmt.Errorf("%w: SyncSlotsForDate - repository error: %v", ErrStoreUnavailable, err)
	}

	// Одна пакетная запись: при совпадении ID побеждает последняя (занятая) запись
	batch := make([]*domain.Slot, 0, len(labels)+len(bookings))
	for _, label := range labels {
		batch = append(batch, domain.NewSlot(day, label, true, nil))
	}

	occupied := 0
	for _, b := range bookings {
		if !b.OccupiesSlot() {
			continue
		}
		serviceID := b.ServiceID
		batch = append(batch, domain.NewSlot(day, b.Time, false, &serviceID))
		occupied++
	}

	if err := s.slots.UpsertSlots(ctx, batch); err != nil {
		return fmt.Errorf("%w: SyncSlotsForDate - %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("SyncSlotsForDate: date=%s synced, %d of %d bookings occupy slots",
		domain.FormatDate(day), occupied, len(bookings))
	return nil
}

// InitializeUpcomingSlots открывает labels на горизонт [сегодня, сегодня + months)
func (s *Service) InitializeUpcomingSlots(
	ctx context.Context,
	labels []types.TimeString,
	excluded []time.Weekday,
	months int,
) (count int, err error) {
	defer func() { s.metrics.IncSyncRun(KindInitialize, err) }()

	if months < 1 {
		return 0, fmt.Errorf("%w: months must be positive", ErrInvalidInput)
	}

	start, end := s.horizon(months)
	s.logger.Info("InitializeUpcomingSlots: initializing %s..%s", domain.FormatDate(start), domain.FormatDate(end))

	return s.slots.GenerateForRange(ctx, start, end, labels, excluded)
}

// SeedUpcomingSlots создаёт недостающие слоты labels на горизонт [сегодня, сегодня + months)
// В отличие от InitializeUpcomingSlots не открывает закрытые и занятые слоты
func (s *Service) SeedUpcomingSlots(
	ctx context.Context,
	labels []types.TimeString,
	excluded []time.Weekday,
	months int,
) (count int, err error) {
	defer func() { s.metrics.IncSyncRun(KindSeed, err) }()

	if months < 1 {
		return 0, fmt.Errorf("%w: months must be positive", ErrInvalidInput)
	}

	start, end := s.horizon(months)
	s.logger.Info("SeedUpcomingSlots: seeding %s..%s", domain.FormatDate(start), domain.FormatDate(end))

	return s.slots.SeedForRange(ctx, start, end, labels, excluded)
}

// SyncUpcoming выполняет SyncSlotsForDate для каждого рабочего дня горизонта
// Возвращает количество синхронизированных дней
func (s *Service) SyncUpcoming(
	ctx context.Context,
	labels []types.TimeString,
	excluded []time.Weekday,
	months int,
) (count int, err error) {
	defer func() { s.metrics.IncSyncRun(KindUpcoming, err) }()

	if months < 1 {
		return 0, fmt.Errorf("%w: months must be positive", ErrInvalidInput)
	}

	start, end := s.horizon(months)
	s.logger.Info("SyncUpcoming: syncing %s..%s with %d workers", domain.FormatDate(start), domain.FormatDate(end), s.workers)

	var synced atomic.Int64
	p := pool.New().WithMaxGoroutines(s.workers).WithContext(ctx)
	for _, day := range domain.DaysBetween(start, end) {
		if domain.IsExcludedWeekday(day, excluded) {
			continue
		}
		p.Go(func(ctx context.Context) error {
			if err := s.SyncSlotsForDate(ctx, day, labels); err != nil {
				return err
			}
			synced.Add(1)
			return nil
		})
	}

	err = p.Wait()
	count = int(synced.Load())
	if err != nil {
		s.logger.Error("SyncUpcoming: %d days synced before failure: %v", count, err)
		return count, err
	}

	s.logger.Info("SyncUpcoming: %d days synced", count)
	return count, nil
}

// horizon первый и последний день горизонта [сегодня, сегодня + months)
func (s *Service) horizon(months int) (time.Time, time.Time) {
	today := s.slots.Today()
	return today, today.AddDate(0, months, -1)
}
