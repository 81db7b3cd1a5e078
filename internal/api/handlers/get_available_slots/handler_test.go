package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	getAvailableSlots "github.com/m04kA/HomeHair-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/HomeHair-BookingService/pkg/logger"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

type fakeUseCase struct {
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{Date: req.Date, Times: []types.TimeString{"09:00", "15:00"}}, nil
}

func get(uc *fakeUseCase, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/available-slots"+query, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := get(&fakeUseCase{}, "?date=2024-06-12")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2024-06-12","times":["09:00","15:00"]}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, get(&fakeUseCase{}, "").Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeUseCase{}, "?date=12/06/2024").Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeUseCase{err: getAvailableSlots.ErrInvalidDate}, "?date=2020-01-01").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(&fakeUseCase{err: getAvailableSlots.ErrStoreUnavailable}, "?date=2024-06-12").Code)
}
