package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/HomeHair-BookingService/pkg/logger"
	"github.com/m04kA/HomeHair-BookingService/pkg/metrics"
	"github.com/m04kA/HomeHair-BookingService/pkg/ptr"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var (
	paris, _ = time.LoadLocation("Europe/Paris")
	// 00:30 по Парижу уже 10 июня, в UTC ещё 9 июня
	now     = time.Date(2024, 6, 10, 0, 30, 0, 0, paris)
	today   = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
)

func newService(store *memory.Store) *Service {
	return NewService(store.Slots(), store.Bookings(), metrics.New("test"), paris, 3, logger.NewNop()).
		WithTimeProvider(fixedTime{t: now})
}

func createBooking(t *testing.T, store *memory.Store, date time.Time, at string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := store.Bookings().Create(context.Background(), &domain.Booking{
		ServiceID: "balayage",
		Date:      date,
		Time:      types.MustTimeString(at),
		Name:      "Client",
		Email:     "client@example.com",
		Phone:     "0600000000",
		Address:   "Paris",
		Status:    status,
	})
	require.NoError(t, err)
	return b
}

func TestService_TodayUsesConfiguredTimezone(t *testing.T) {
	s := newService(memory.NewStore())
	assert.Equal(t, today, s.Today())
}

func TestService_LookupTriState(t *testing.T) {
	ctx := context.Background()
	s := newService(memory.NewStore())

	availability, err := s.Lookup(ctx, tuesday, "10:00")
	require.NoError(t, err)
	assert.Equal(t, domain.AvailabilityUnknown, availability)

	ok, err := s.IsSlotAvailable(ctx, tuesday, "10:00")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.SetAvailability(ctx, tuesday, "10:00", false, ptr.Ptr("coloration")))
	require.NoError(t, s.SetAvailability(ctx, tuesday, "10:00", false, nil))

	availability, err = s.Lookup(ctx, tuesday, "10:00")
	require.NoError(t, err)
	assert.Equal(t, domain.AvailabilityUnavailable, availability)

	records, err := s.GetSlotsForDate(ctx, tuesday)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-06-11_1000", records[0].ID)
	assert.Equal(t, "coloration", ptr.Value(records[0].ServiceID))
}

func TestService_GenerateForRange(t *testing.T) {
	ctx := context.Background()
	s := newService(memory.NewStore())
	labels := []types.TimeString{"09:00", "14:00"}

	// Понедельник 10 - воскресенье 16 июня
	written, err := s.GenerateForRange(ctx, today, today.AddDate(0, 0, 6), labels, []time.Weekday{time.Sunday})
	require.NoError(t, err)
	assert.Equal(t, 12, written)

	sunday, err := s.GetSlotsForDate(ctx, today.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Empty(t, sunday)

	available, err := s.GetAvailableSlotsForDate(ctx, tuesday)
	require.NoError(t, err)
	assert.Len(t, available, 2)

	// Повторная генерация открывает закрытый слот
	require.NoError(t, s.SetAvailability(ctx, tuesday, "09:00", false, nil))
	_, err = s.GenerateForRange(ctx, tuesday, tuesday, labels, nil)
	require.NoError(t, err)
	ok, err := s.IsSlotAvailable(ctx, tuesday, "09:00")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_GenerateForRangeRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	s := newService(memory.NewStore())

	_, err := s.GenerateForRange(ctx, tuesday, today, []types.TimeString{"09:00"}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.GenerateForRange(ctx, today, tuesday, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.GenerateForRange(ctx, today, today.AddDate(2, 0, 0), []types.TimeString{"09:00"}, nil)
	assert.ErrorIs(t, err, ErrRangeTooLarge)
}

func TestService_SeedForRangeKeepsExistingSlots(t *testing.T) {
	ctx := context.Background()
	s := newService(memory.NewStore())
	labels := []types.TimeString{"09:00", "14:00"}

	require.NoError(t, s.SetAvailability(ctx, tuesday, "09:00", false, ptr.Ptr("coloration")))

	created, err := s.SeedForRange(ctx, today, tuesday, labels, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	ok, err := s.IsSlotAvailable(ctx, tuesday, "09:00")
	require.NoError(t, err)
	assert.False(t, ok)

	records, err := s.GetSlotsForDate(ctx, tuesday)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// Повторный запуск ничего не создаёт
	created, err = s.SeedForRange(ctx, today, tuesday, labels, nil)
	require.NoError(t, err)
	assert.Zero(t, created)

	_, err = s.SeedForRange(ctx, tuesday, today, labels, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ClaimIsExclusive(t *testing.T) {
	ctx := context.Background()
	s := newService(memory.NewStore())

	ok, err := s.Claim(ctx, tuesday, "11:00", "coloration")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Claim(ctx, tuesday, "11:00", "coloration")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_GetActuallyAvailableSlotsForDate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := newService(store)

	_, err := s.GenerateForRange(ctx, tuesday, tuesday, []types.TimeString{"09:00", "10:00", "11:00", "14:00"}, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetAvailability(ctx, tuesday, "11:00", false, nil))

	createBooking(t, store, tuesday, "09:00", domain.StatusPending)
	createBooking(t, store, tuesday, "10:00", domain.StatusCancelled)

	times, err := s.GetActuallyAvailableSlotsForDate(ctx, tuesday)
	require.NoError(t, err)
	assert.ElementsMatch(t, []types.TimeString{"10:00", "14:00"}, times)
}

type failingBookings struct {
	BookingRepository
}

func (failingBookings) GetByFilter(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, errors.New("timeout")
}

func TestService_GetActuallyAvailableSlotsDegradesWithoutBookings(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := NewService(store.Slots(), failingBookings{}, metrics.New("test"), paris, 1, logger.NewNop())

	require.NoError(t, s.SetAvailability(ctx, tuesday, "15:00", true, nil))

	times, err := s.GetActuallyAvailableSlotsForDate(ctx, tuesday)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"15:00"}, times)
}

func TestService_CleanupObsoleteSlots(t *testing.T) {
	ctx := context.Background()
	s := newService(memory.NewStore())

	require.NoError(t, s.SetAvailability(ctx, today.AddDate(0, 0, -1), "09:00", true, nil))
	require.NoError(t, s.SetAvailability(ctx, today, "09:00", true, nil))

	removed, err := s.CleanupObsoleteSlots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	left, err := s.GetSlotsForDate(ctx, today)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestService_CleanupCancelledBookingSlots(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := newService(store)

	// Слот отменённого бронирования закрыт вручную
	createBooking(t, store, tuesday, "09:00", domain.StatusCancelled)
	require.NoError(t, s.SetAvailability(ctx, tuesday, "09:00", false, nil))

	// Второе отменённое бронирование на то же время не дублирует запись
	createBooking(t, store, tuesday, "09:00", domain.StatusCancelled)

	// Отменённое бронирование, чей слот уже держит новое бронирование
	createBooking(t, store, tuesday, "10:00", domain.StatusCancelled)
	createBooking(t, store, tuesday, "10:00", domain.StatusConfirmed)
	require.NoError(t, s.SetAvailability(ctx, tuesday, "10:00", false, nil))

	reopened, err := s.CleanupCancelledBookingSlots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened)

	ok, err := s.IsSlotAvailable(ctx, tuesday, "09:00")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IsSlotAvailable(ctx, tuesday, "10:00")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_CleanupObsoleteBookings(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := newService(store)

	createBooking(t, store, today.AddDate(0, 0, -3), "09:00", domain.StatusCompleted)
	createBooking(t, store, tuesday, "09:00", domain.StatusCancelled)
	kept := createBooking(t, store, tuesday, "10:00", domain.StatusConfirmed)

	removed, err := s.CleanupObsoleteBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	left, err := store.Bookings().GetByFilter(ctx, domain.BookingsFilter{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, kept.ID, left[0].ID)
}
