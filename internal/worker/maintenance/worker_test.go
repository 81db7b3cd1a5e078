package maintenance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeHair-BookingService/internal/usecase/run_maintenance"
	"github.com/m04kA/HomeHair-BookingService/pkg/logger"
)

type fakeUseCase struct {
	mu    sync.Mutex
	calls []*run_maintenance.Request
	err   error
}

func (f *fakeUseCase) Execute(_ context.Context, req *run_maintenance.Request) *run_maintenance.Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return &run_maintenance.Response{Steps: []run_maintenance.StepResult{
		{Name: run_maintenance.StepObsoleteSlots, Count: 2, Err: f.err},
	}}
}

func (f *fakeUseCase) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestNewWorker_InvalidSchedule(t *testing.T) {
	_, err := NewWorker(&fakeUseCase{}, Options{Schedule: "every night"}, logger.NewNop())
	require.Error(t, err)
}

func TestWorker_RunOnce(t *testing.T) {
	fake := &fakeUseCase{err: errors.New("store unavailable")}
	w, err := NewWorker(fake, Options{Schedule: "0 3 * * *", InitializeHorizon: true}, logger.NewNop())
	require.NoError(t, err)

	w.RunOnce()

	require.Equal(t, 1, fake.count())
	assert.True(t, fake.calls[0].InitializeHorizon)
}

func TestWorker_StartStop(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	fake := &fakeUseCase{}
	w, err := NewWorker(fake, Options{Schedule: "0 3 * * *", Location: loc}, logger.NewNop())
	require.NoError(t, err)

	assert.True(t, w.NextRun().IsZero())

	w.Start(context.Background())
	next := w.NextRun().In(loc)
	w.Stop()

	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.Zero(t, fake.count())
}
