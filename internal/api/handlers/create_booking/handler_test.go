package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/HomeHair-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/HomeHair-BookingService/pkg/logger"
)

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{
		ID:          "7c1f",
		ServiceID:   req.ServiceID,
		ServiceName: "Coloration",
		Date:        req.Date,
		Time:        req.Time,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Status:      "pending",
		CreatedAt:   time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
	}, nil
}

const validBody = `{
	"service": "coloration",
	"date": "2024-06-12",
	"time": "10:00",
	"name": "Camille",
	"email": "camille@example.com",
	"phone": "06 12 34 56 78",
	"address": "12 rue des Lilas"
}`

func serve(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, handlers.NewValidator(), logger.NewNop())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(t, uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "0612345678", uc.got.Phone)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "7c1f", resp.ID)
	assert.Equal(t, "2024-06-12", resp.Date)
	assert.Equal(t, "10:00", resp.Time)
	assert.Equal(t, "pending", resp.Status)
}

func TestHandle_ValidationErrors(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(t, uc, `{"service":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, uc, strings.Replace(validBody, "camille@example.com", "camille", 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email")

	rec = serve(t, uc, strings.Replace(validBody, `"10:00"`, `"10h"`, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{createBooking.ErrServiceNotFound, http.StatusBadRequest},
		{createBooking.ErrInvalidDate, http.StatusBadRequest},
		{createBooking.ErrTooLateToBook, http.StatusBadRequest},
		{fmt.Errorf("%w: timeout", createBooking.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
