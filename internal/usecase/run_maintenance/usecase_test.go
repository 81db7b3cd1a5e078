package run_maintenance

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
	"github.com/m04kA/HomeHair-BookingService/internal/service/slotsync"
	"github.com/m04kA/HomeHair-BookingService/pkg/logger"
	"github.com/m04kA/HomeHair-BookingService/pkg/metrics"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

type fakeSweeper struct {
	calls       []string
	bookingsErr error
}

func (f *fakeSweeper) CleanupObsoleteSlots(context.Context) (int, error) {
	f.calls = append(f.calls, StepObsoleteSlots)
	return 3, nil
}

func (f *fakeSweeper) CleanupCancelledBookingSlots(context.Context) (int, error) {
	f.calls = append(f.calls, StepCancelledBookings)
	return 1, nil
}

func (f *fakeSweeper) CleanupObsoleteBookings(context.Context) (int, error) {
	f.calls = append(f.calls, StepObsoleteBookings)
	return 0, f.bookingsErr
}

type fakeInitializer struct {
	months int
}

func (f *fakeInitializer) SeedUpcomingSlots(_ context.Context, labels []types.TimeString, _ []time.Weekday, months int) (int, error) {
	f.months = months
	return len(labels) * 10, nil
}

func TestExecute_RunsStepsInOrder(t *testing.T) {
	sweeper := &fakeSweeper{}
	initializer := &fakeInitializer{}
	uc := NewUseCase(sweeper, initializer, Options{TimeLabels: []types.TimeString{"09:00", "10:00"}, HorizonMonths: 2}, logger.NewNop())

	resp := uc.Execute(context.Background(), &Request{InitializeHorizon: true})

	assert.Equal(t, []string{StepObsoleteSlots, StepCancelledBookings, StepObsoleteBookings}, sweeper.calls)
	require.Len(t, resp.Steps, 4)
	assert.Equal(t, 3, resp.Steps[0].Count)
	assert.Equal(t, StepInitializeHorizon, resp.Steps[3].Name)
	assert.Equal(t, 20, resp.Steps[3].Count)
	assert.Equal(t, 2, initializer.months)
	assert.False(t, resp.Failed())
}

func TestExecute_FailingStepDoesNotAbortOthers(t *testing.T) {
	sweeper := &fakeSweeper{bookingsErr: errors.New("db down")}
	uc := NewUseCase(sweeper, &fakeInitializer{}, Options{}, logger.NewNop())

	resp := uc.Execute(context.Background(), &Request{})

	require.Len(t, resp.Steps, 3)
	assert.NoError(t, resp.Steps[0].Err)
	assert.NoError(t, resp.Steps[1].Err)
	assert.Error(t, resp.Steps[2].Err)
	assert.True(t, resp.Failed())
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func TestExecute_HorizonKeepsClosedAndBookedSlots(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()
	m := metrics.New("test")
	store := memory.NewStore()
	utc := time.UTC
	slotService := slots.NewService(store.Slots(), store.Bookings(), m, utc, 2, log).
		WithTimeProvider(fixedTime{t: time.Date(2024, 6, 10, 8, 0, 0, 0, utc)})
	syncer := slotsync.NewService(slotService, store.Bookings(), m, false, 2, log)

	tuesday := time.Date(2024, 6, 11, 0, 0, 0, 0, utc)
	booking, err := store.Bookings().Create(ctx, &domain.Booking{
		ServiceID: "coupe-homme",
		Date:      tuesday,
		Time:      "10:00",
		Name:      "Client",
		Email:     "client@example.com",
		Phone:     "0600000000",
		Address:   "Paris",
		Status:    domain.StatusConfirmed,
	})
	require.NoError(t, err)
	require.NoError(t, syncer.ApplyTransition(ctx, booking, domain.StatusConfirmed))
	require.NoError(t, slotService.SetAvailability(ctx, tuesday, "14:00", false, nil))

	uc := NewUseCase(slotService, syncer, Options{
		TimeLabels:    []types.TimeString{"09:00", "10:00", "14:00"},
		HorizonMonths: 1,
	}, log)
	resp := uc.Execute(ctx, &Request{InitializeHorizon: true})
	require.False(t, resp.Failed())

	for _, at := range []types.TimeString{"10:00", "14:00"} {
		ok, err := slotService.IsSlotAvailable(ctx, tuesday, at)
		require.NoError(t, err)
		assert.False(t, ok, at)
	}
	ok, err := slotService.IsSlotAvailable(ctx, tuesday, "09:00")
	require.NoError(t, err)
	assert.True(t, ok)
}
