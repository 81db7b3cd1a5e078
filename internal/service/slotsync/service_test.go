package slotsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/HomeHair-BookingService/internal/service/slots"
	"github.com/m04kA/HomeHair-BookingService/pkg/logger"
	"github.com/m04kA/HomeHair-BookingService/pkg/metrics"
	"github.com/m04kA/HomeHair-BookingService/pkg/ptr"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var (
	paris, _ = time.LoadLocation("Europe/Paris")
	now      = time.Date(2024, 6, 10, 9, 0, 0, 0, paris)
	today    = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	labels   = []types.TimeString{"09:00", "10:00", "14:00"}
)

type fixture struct {
	store *memory.Store
	slots *slots.Service
	sync  *Service
}

func newFixture(rebuild bool) *fixture {
	log := logger.NewNop()
	m := metrics.New("test")
	store := memory.NewStore()
	slotService := slots.NewService(store.Slots(), store.Bookings(), m, paris, 2, log).
		WithTimeProvider(fixedTime{t: now})
	return &fixture{
		store: store,
		slots: slotService,
		sync:  NewService(slotService, store.Bookings(), m, rebuild, 3, log),
	}
}

func (f *fixture) book(t *testing.T, date time.Time, at string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		ServiceID: "coupe-homme",
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

func (f *fixture) availability(t *testing.T, date time.Time, at string) domain.Availability {
	t.Helper()
	a, err := f.slots.Lookup(context.Background(), date, types.TimeString(at))
	require.NoError(t, err)
	return a
}

func TestApplyTransition_SlotEffects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)
	b := f.book(t, tuesday, "10:00", domain.StatusPending)

	// pending ничего не меняет
	require.NoError(t, f.sync.ApplyTransition(ctx, b, domain.StatusPending))
	assert.Equal(t, domain.AvailabilityUnknown, f.availability(t, tuesday, "10:00"))

	require.NoError(t, f.sync.ApplyTransition(ctx, b, domain.StatusConfirmed))
	assert.Equal(t, domain.AvailabilityUnavailable, f.availability(t, tuesday, "10:00"))

	record, err := f.store.Slots().GetByID(ctx, b.SlotID())
	require.NoError(t, err)
	assert.Equal(t, "coupe-homme", ptr.Value(record.ServiceID))

	require.NoError(t, f.sync.ApplyTransition(ctx, b, domain.StatusCancelled))
	assert.Equal(t, domain.AvailabilityAvailable, f.availability(t, tuesday, "10:00"))

	require.NoError(t, f.sync.ApplyTransition(ctx, b, domain.StatusCompleted))
	assert.Equal(t, domain.AvailabilityUnavailable, f.availability(t, tuesday, "10:00"))
}

func TestApplyTransition_PendingLeavesSlotUntouchedWithRebuild(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)

	// Неизвестный слот остаётся неизвестным
	b := f.book(t, tuesday, "10:00", domain.StatusPending)
	require.NoError(t, f.sync.ApplyTransition(ctx, b, domain.StatusPending))
	assert.Equal(t, domain.AvailabilityUnknown, f.availability(t, tuesday, "10:00"))

	// Открытый слот остаётся открытым
	require.NoError(t, f.slots.SetAvailability(ctx, tuesday, "14:00", true, nil))
	other := f.book(t, tuesday, "14:00", domain.StatusPending)
	require.NoError(t, f.sync.ApplyTransition(ctx, other, domain.StatusPending))
	assert.Equal(t, domain.AvailabilityAvailable, f.availability(t, tuesday, "14:00"))
}

func TestApplyTransition_ReconcileKeepsSlotHeldByAnotherBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)

	cancelled := f.book(t, tuesday, "10:00", domain.StatusCancelled)
	f.book(t, tuesday, "10:00", domain.StatusConfirmed)

	require.NoError(t, f.sync.ApplyTransition(ctx, cancelled, domain.StatusCancelled))
	assert.Equal(t, domain.AvailabilityUnavailable, f.availability(t, tuesday, "10:00"))
}

func TestReleaseBookingSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)
	b := f.book(t, tuesday, "14:00", domain.StatusConfirmed)
	require.NoError(t, f.sync.ApplyTransition(ctx, b, domain.StatusConfirmed))

	require.NoError(t, f.store.Bookings().Delete(ctx, b.ID))
	require.NoError(t, f.sync.ReleaseBookingSlot(ctx, b))
	assert.Equal(t, domain.AvailabilityAvailable, f.availability(t, tuesday, "14:00"))
}

func TestReconcileKey_NeverReopens(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)
	require.NoError(t, f.slots.SetAvailability(ctx, tuesday, "09:00", false, nil))

	held, err := f.sync.ReconcileKey(ctx, tuesday, "09:00")
	require.NoError(t, err)
	assert.False(t, held)
	assert.Equal(t, domain.AvailabilityUnavailable, f.availability(t, tuesday, "09:00"))
}

func TestSyncSlotsForDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	f.book(t, tuesday, "09:00", domain.StatusPending)
	f.book(t, tuesday, "10:00", domain.StatusCancelled)
	f.book(t, tuesday, "14:00", domain.StatusCompleted)
	// Бронирование вне сетки времени тоже закрывает свой слот
	f.book(t, tuesday, "16:30", domain.StatusConfirmed)

	// Ручное закрытие перезаписывается: бронирования авторитетны
	require.NoError(t, f.slots.SetAvailability(ctx, tuesday, "10:00", false, nil))

	require.NoError(t, f.sync.SyncSlotsForDate(ctx, tuesday, labels))

	assert.Equal(t, domain.AvailabilityUnavailable, f.availability(t, tuesday, "09:00"))
	assert.Equal(t, domain.AvailabilityAvailable, f.availability(t, tuesday, "10:00"))
	assert.Equal(t, domain.AvailabilityAvailable, f.availability(t, tuesday, "14:00"))
	assert.Equal(t, domain.AvailabilityUnavailable, f.availability(t, tuesday, "16:30"))

	// Повторный запуск не меняет результат
	require.NoError(t, f.sync.SyncSlotsForDate(ctx, tuesday, labels))
	records, err := f.slots.GetSlotsForDate(ctx, tuesday)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestInitializeUpcomingSlots_HalfOpenHorizon(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	written, err := f.sync.InitializeUpcomingSlots(ctx, labels, nil, 1)
	require.NoError(t, err)
	// 10 июня - 9 июля включительно
	assert.Equal(t, 30*len(labels), written)

	last, err := f.slots.GetSlotsForDate(ctx, time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, last, len(labels))

	beyond, err := f.slots.GetSlotsForDate(ctx, time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, beyond)

	_, err = f.sync.InitializeUpcomingSlots(ctx, labels, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSeedUpcomingSlots_KeepsClosedAndBookedSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	b := f.book(t, tuesday, "10:00", domain.StatusConfirmed)
	require.NoError(t, f.sync.ApplyTransition(ctx, b, domain.StatusConfirmed))
	require.NoError(t, f.slots.SetAvailability(ctx, tuesday, "14:00", false, nil))

	created, err := f.sync.SeedUpcomingSlots(ctx, labels, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 30*len(labels)-2, created)

	assert.Equal(t, domain.AvailabilityUnavailable, f.availability(t, tuesday, "10:00"))
	assert.Equal(t, domain.AvailabilityUnavailable, f.availability(t, tuesday, "14:00"))
	assert.Equal(t, domain.AvailabilityAvailable, f.availability(t, tuesday, "09:00"))

	_, err = f.sync.SeedUpcomingSlots(ctx, labels, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSyncUpcoming(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)
	f.book(t, tuesday, "10:00", domain.StatusConfirmed)

	days, err := f.sync.SyncUpcoming(ctx, labels, []time.Weekday{time.Sunday}, 1)
	require.NoError(t, err)
	// 30 дней горизонта без 4 воскресений (16, 23, 30 июня и 7 июля)
	assert.Equal(t, 26, days)
	assert.Equal(t, domain.AvailabilityUnavailable, f.availability(t, tuesday, "10:00"))
	assert.Equal(t, domain.AvailabilityAvailable, f.availability(t, today, "10:00"))
}

type failingBookings struct{}

func (failingBookings) GetByFilter(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, errors.New("connection reset")
}

func TestSyncSlotsForDate_StoreUnavailable(t *testing.T) {
	f := newFixture(false)
	s := NewService(f.slots, failingBookings{}, metrics.New("test"), false, 1, logger.NewNop())

	err := s.SyncSlotsForDate(context.Background(), tuesday, labels)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
