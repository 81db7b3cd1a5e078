package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HomeHair-BookingService/internal/infra/storage/booking"
)

// BookingRepository in-memory реализация репозитория бронирований
type BookingRepository struct {
	store *Store
}

func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := r.store.now().UTC()
	booking.Date = domain.DateOf(booking.Date)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	r.store.bookings[booking.ID] = *cloneBooking(*booking)
	return booking, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (r *BookingRepository) GetByFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if filter.Matches(&b) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].Time != out[j].Time {
			return out[i].Time.IsBefore(out[j].Time)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = r.store.now().UTC()
	r.store.bookings[id] = b
	return nil
}

func (r *BookingRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.store.bookings, id)
	return nil
}

func (r *BookingRepository) DeleteObsolete(_ context.Context, today time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	removed := 0
	for id, b := range r.store.bookings {
		if b.IsObsolete(today) {
			delete(r.store.bookings, id)
			removed++
		}
	}
	return removed, nil
}

func cloneBooking(b domain.Booking) *domain.Booking {
	b.Message = copyString(b.Message)
	return &b
}
