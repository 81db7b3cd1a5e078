package sync_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/service/slotsync"
	"github.com/m04kA/HomeHair-BookingService/pkg/logger"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

type fakeSync struct {
	dates  []time.Time
	months int
	err    error
}

func (f *fakeSync) SyncSlotsForDate(_ context.Context, date time.Time, _ []types.TimeString) error {
	f.dates = append(f.dates, date)
	return f.err
}

func (f *fakeSync) SyncUpcoming(_ context.Context, _ []types.TimeString, _ []time.Weekday, months int) (int, error) {
	f.months = months
	return 26, f.err
}

func handle(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/slots/sync", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	defaults := Defaults{TimeLabels: []types.TimeString{"10:00"}, HorizonMonths: 3}

	t.Run("single date", func(t *testing.T) {
		fake := &fakeSync{}
		h := NewHandler(fake, defaults, handlers.NewValidator(), logger.NewNop())

		rec := handle(h, `{"date":"2024-06-11"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"date":"2024-06-11","syncedDays":1}`, rec.Body.String())
		require.Len(t, fake.dates, 1)
		assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), fake.dates[0])
	})

	t.Run("horizon with default months", func(t *testing.T) {
		fake := &fakeSync{}
		h := NewHandler(fake, defaults, handlers.NewValidator(), logger.NewNop())

		rec := handle(h, ``)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"syncedDays":26}`, rec.Body.String())
		assert.Equal(t, 3, fake.months)
	})

	t.Run("store unavailable", func(t *testing.T) {
		fake := &fakeSync{err: errors.Join(slotsync.ErrStoreUnavailable, errors.New("connection refused"))}
		h := NewHandler(fake, defaults, handlers.NewValidator(), logger.NewNop())

		assert.Equal(t, http.StatusServiceUnavailable, handle(h, `{"date":"2024-06-11"}`).Code)
	})

	t.Run("invalid date", func(t *testing.T) {
		h := NewHandler(&fakeSync{}, defaults, handlers.NewValidator(), logger.NewNop())

		assert.Equal(t, http.StatusBadRequest, handle(h, `{"date":"11/06/2024"}`).Code)
	})
}
