package brevo

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/pkg/logger"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:        "b-1",
		ServiceID: "coloration",
		Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Time:      types.MustTimeString("14:00"),
		Name:      "Camille",
		Email:     "camille@example.com",
		Phone:     "0600000000",
		Address:   "1 rue de la Paix, Paris",
		Status:    domain.StatusConfirmed,
	}
}

func newTestClient(endpoint string, retries uint) *Client {
	c := NewClient(Config{
		Enabled:     true,
		APIKey:      "key",
		Endpoint:    endpoint,
		SenderEmail: "salon@example.com",
		SenderName:  "Salon",
		Sandbox:     true,
		Timeout:     time.Second,
		MaxRetries:  retries,
	}, domain.DefaultCatalog(), logger.NewNop())
	c.backoff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return c
}

func TestClient_SendConfirmation(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("api-key"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<m1@brevo>"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL, 1).SendConfirmation(context.Background(), testBooking())
	require.NoError(t, err)

	require.Len(t, got.To, 1)
	assert.Equal(t, "camille@example.com", got.To[0].Email)
	assert.Equal(t, "salon@example.com", got.Sender.Email)
	assert.Equal(t, "drop", got.Headers["X-Sib-Sandbox"])
	assert.Contains(t, got.Subject, "Coloration")
	assert.Contains(t, got.HTMLContent, "lundi 10 juin 2024")
	assert.Contains(t, got.HTMLContent, "14:00")
	assert.Contains(t, got.HTMLContent, "b-1")
}

func TestClient_SendCancellation(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"messageId":"m2"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL, 1).SendCancellation(context.Background(), testBooking())
	require.NoError(t, err)
	assert.Contains(t, got.Subject, "lundi 10 juin 2024")
	assert.Contains(t, got.HTMLContent, "annulé")
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"messageId":"m3"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL, 3).SendConfirmation(context.Background(), testBooking())
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryRejection(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_parameter"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL, 5).SendConfirmation(context.Background(), testBooking())
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Disabled(t *testing.T) {
	c := NewClient(Config{Enabled: true}, domain.DefaultCatalog(), logger.NewNop())
	assert.False(t, c.Enabled())
	assert.ErrorIs(t, c.SendConfirmation(context.Background(), testBooking()), ErrDisabled)
}

func TestFormatDateFR(t *testing.T) {
	assert.Equal(t, "dimanche 1 décembre 2024", FormatDateFR(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
}
