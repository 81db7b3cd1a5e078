package slots

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
)

// Названия процедур очистки (метки метрик и отчётов)
const (
	SweepObsoleteSlots     = "obsolete_slots"
	SweepCancelledBookings = "cancelled_booking_slots"
	SweepObsoleteBookings  = "obsolete_bookings"
)

// CleanupObsoleteSlots удаляет слоты с датой раньше сегодняшнего дня
func (s *Service) CleanupObsoleteSlots(ctx context.Context) (int, error) {
	today := s.Today()

	removed, err := s.slotRepo.DeleteBefore(ctx, today)
	if err != nil {
		s.logger.Error("CleanupObsoleteSlots: repository error: %v", err)
		return 0, fmt.Errorf("%w: CleanupObsoleteSlots - repository error: %v", ErrStoreUnavailable, err)
	}

	s.metrics.AddCleanup(SweepObsoleteSlots, removed)
	s.logger.Info("CleanupObsoleteSlots: removed %d slots before %s", removed, domain.FormatDate(today))
	return removed, nil
}

// CleanupCancelledBookingSlots открывает (или создаёт) слот каждого отменённого бронирования
// Слоты, которые держит активное бронирование, не трогаются
func (s *Service) CleanupCancelledBookingSlots(ctx context.Context) (int, error) {
	cancelled, err := s.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{
		Statuses: []domain.BookingStatus{domain.StatusCancelled},
	})
	if err != nil {
		s.logger.Error("CleanupCancelledBookingSlots: failed to list cancelled bookings: %v", err)
		return 0, fmt.Errorf("%w: CleanupCancelledBookingSlots - repository error: %v", ErrStoreUnavailable, err)
	}

	if len(cancelled) == 0 {
		return 0, nil
	}

	active, err := s.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{Statuses: domain.OccupyingStatuses})
	if err != nil {
		s.logger.Error("CleanupCancelledBookingSlots: failed to list active bookings: %v", err)
		return 0, fmt.Errorf("%w: CleanupCancelledBookingSlots - repository error: %v", ErrStoreUnavailable, err)
	}

	held := make(map[string]struct{}, len(active))
	for _, b := range active {
		held[b.SlotID()] = struct{}{}
	}

	targets := make(map[string]*domain.Booking, len(cancelled))
	for _, b := range cancelled {
		if _, busy := held[b.SlotID()]; busy {
			continue
		}
		targets[b.SlotID()] = b
	}

	var reopened atomic.Int64
	p := pool.New().WithMaxGoroutines(s.workers).WithContext(ctx)
	for _, b := range targets {
		p.Go(func(ctx context.Context) error {
			if err := s.SetAvailability(ctx, b.Date, b.Time, true, nil); err != nil {
				return err
			}
			reopened.Add(1)
			return nil
		})
	}

	err = p.Wait()
	count := int(reopened.Load())
	s.metrics.AddCleanup(SweepCancelledBookings, count)

	if err != nil {
		s.logger.Error("CleanupCancelledBookingSlots: reopened %d of %d slots before failure: %v", count, len(targets), err)
		return count, err
	}

	s.logger.Info("CleanupCancelledBookingSlots: reopened %d slots for %d cancelled bookings", count, len(cancelled))
	return count, nil
}

// CleanupObsoleteBookings удаляет прошедшие и отменённые бронирования
func (s *Service) CleanupObsoleteBookings(ctx context.Context) (int, error) {
	today := s.Today()

	removed, err := s.bookingRepo.DeleteObsolete(ctx, today)
	if err != nil {
		s.logger.Error("CleanupObsoleteBookings: repository error: %v", err)
		return 0, fmt.Errorf("%w: CleanupObsoleteBookings - repository error: %v", ErrStoreUnavailable, err)
	}

	s.metrics.AddCleanup(SweepObsoleteBookings, removed)
	s.logger.Info("CleanupObsoleteBookings: removed %d bookings", removed)
	return removed, nil
}
