package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeHair-BookingService/internal/auth"
	"github.com/m04kA/HomeHair-BookingService/pkg/logger"
	"github.com/m04kA/HomeHair-BookingService/pkg/metrics"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestAdminAuth(t *testing.T) {
	manager := auth.NewManager("secret", time.Hour, "homehair")
	authenticator := auth.NewAdminAuthenticator("admin@example.com", "unused", manager)
	token, _, err := manager.NewAccessToken("admin@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	var subject string
	h := AdminAuth(authenticator, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = GetAdminSubject(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "admin@example.com", subject)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer forged")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Токен без роли admin отклоняется
	userToken, _, err := manager.NewAccessToken("someone", "customer")
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	limiter, err := NewRateLimiter(60, 2, nil, logger.NewNop())
	require.NoError(t, err)
	h := limiter.Middleware(http.HandlerFunc(okHandler))

	send := func(ip string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.RemoteAddr = ip + ":1234"
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2"))
}

func TestRateLimiter_IgnoresForwardedHeadersFromUntrustedClient(t *testing.T) {
	limiter, err := NewRateLimiter(60, 2, []string{"10.0.0.0/8"}, logger.NewNop())
	require.NoError(t, err)
	h := limiter.Middleware(http.HandlerFunc(okHandler))

	// Каждый запрос с новым X-Forwarded-For, но с одного адреса
	for i, want := range []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.RemoteAddr = "198.51.100.9:4321"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i+1))
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "request %d", i)
	}
}

func TestRateLimiter_ClientIP(t *testing.T) {
	limiter, err := NewRateLimiter(60, 2, []string{"10.0.0.0/8", "192.168.1.10"}, logger.NewNop())
	require.NoError(t, err)

	tests := []struct {
		name      string
		remote    string
		forwarded string
		realIP    string
		want      string
	}{
		{name: "direct client", remote: "198.51.100.9:1234", forwarded: "203.0.113.7", want: "198.51.100.9"},
		{name: "trusted proxy", remote: "10.0.0.5:1234", forwarded: "203.0.113.7", want: "203.0.113.7"},
		{name: "spoofed hop before proxy", remote: "10.0.0.5:1234", forwarded: "1.2.3.4, 203.0.113.7, 10.0.0.6", want: "203.0.113.7"},
		{name: "single trusted host", remote: "192.168.1.10:80", realIP: "203.0.113.8", want: "203.0.113.8"},
		{name: "trusted proxy without headers", remote: "10.0.0.5:1234", want: "10.0.0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			assert.Equal(t, tt.want, limiter.clientIP(req))
		})
	}

	_, err = NewRateLimiter(60, 2, []string{"not-an-ip"}, logger.NewNop())
	assert.Error(t, err)
}

func TestRateLimiter_CleanupEvictsIdleClients(t *testing.T) {
	limiter, err := NewRateLimiter(60, 2, nil, logger.NewNop())
	require.NoError(t, err)

	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	limiter.getLimiter("203.0.113.1", start)
	limiter.getLimiter("203.0.113.2", start.Add(8*time.Minute))

	assert.Equal(t, 1, limiter.Cleanup(start.Add(11*time.Minute)))
	assert.Len(t, limiter.limiters, 1)

	// Клиенты накапливаются между очистками, а не сканируются на каждом запросе
	for i := 0; i < 50; i++ {
		limiter.getLimiter(fmt.Sprintf("198.51.100.%d", i), start.Add(12*time.Minute))
	}
	assert.Len(t, limiter.limiters, 51)

	limiter.getLimiter("198.51.100.200", start.Add(30*time.Minute))
	assert.Len(t, limiter.limiters, 1)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	m := metrics.New("test")
	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/api/v1/admin/bookings/{bookingId}", okHandler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/abc", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	body := httptest.NewRecorder()
	m.Handler().ServeHTTP(body, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, body.Body.String(), `route="/api/v1/admin/bookings/{bookingId}"`)
	assert.NotContains(t, body.Body.String(), `route="/api/v1/admin/bookings/abc"`)
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
