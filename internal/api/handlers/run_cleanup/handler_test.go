package run_cleanup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeHair-BookingService/internal/usecase/run_maintenance"
	"github.com/m04kA/HomeHair-BookingService/pkg/logger"
)

type fakeUseCase struct {
	req  *run_maintenance.Request
	resp *run_maintenance.Response
}

func (f *fakeUseCase) Execute(_ context.Context, req *run_maintenance.Request) *run_maintenance.Response {
	f.req = req
	return f.resp
}

func TestHandle(t *testing.T) {
	fake := &fakeUseCase{resp: &run_maintenance.Response{Steps: []run_maintenance.StepResult{
		{Name: run_maintenance.StepObsoleteSlots, Count: 4},
		{Name: run_maintenance.StepCancelledBookings, Err: errors.New("store unavailable")},
		{Name: run_maintenance.StepObsoleteBookings, Count: 1},
	}}}
	h := NewHandler(fake, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/maintenance/cleanup",
		strings.NewReader(`{"initializeHorizon":true}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, fake.req.InitializeHorizon)
	assert.JSONEq(t, `{
		"success": false,
		"steps": [
			{"name":"obsolete_slots","count":4},
			{"name":"cancelled_booking_slots","count":0,"error":"store unavailable"},
			{"name":"obsolete_bookings","count":1}
		]
	}`, rec.Body.String())
}

func TestHandle_InvalidBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/maintenance/cleanup", strings.NewReader(`{"x":1}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
