package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
)

const msgTooManyRequests = "trop de requêtes, veuillez réessayer dans un instant"

// RateLimiter ограничивает частоту запросов с одного IP
// Заголовки X-Forwarded-For и X-Real-IP учитываются только от доверенных прокси
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*visitor
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	trusted   []*net.IPNet
	logger    Logger
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создает ограничитель: requestsPerMinute запросов в минуту с запасом burst
// trustedProxies - IP или CIDR обратных прокси перед сервисом
func NewRateLimiter(requestsPerMinute, burst int, trustedProxies []string, logger Logger) (*RateLimiter, error) {
	trusted, err := parseTrustedProxies(trustedProxies)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{
		limiters: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
		ttl:      10 * time.Minute,
		trusted:  trusted,
		logger:   logger,
	}, nil
}

func parseTrustedProxies(entries []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", entry)
			}
			bits := 8 * net.IPv6len
			if ip.To4() != nil {
				ip, bits = ip.To4(), 8*net.IPv4len
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}

func (l *RateLimiter) getLimiter(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Очистка не чаще одного раза за половину ttl
	if now.Sub(l.lastSweep) > l.ttl/2 {
		l.sweepLocked(now)
	}

	v, ok := l.limiters[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Cleanup удаляет клиентов, неактивных дольше ttl, и возвращает их количество
func (l *RateLimiter) Cleanup(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweepLocked(now)
}

func (l *RateLimiter) sweepLocked(now time.Time) int {
	removed := 0
	for key, v := range l.limiters {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.limiters, key)
			removed++
		}
	}
	l.lastSweep = now
	return removed
}

// Middleware возвращает 429, если клиент превысил лимит
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := l.clientIP(r)
		if !l.getLimiter(ip, time.Now()).Allow() {
			l.logger.Warn("%s %s - Rate limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP адрес клиента: RemoteAddr, либо первый недоверенный адрес
// X-Forwarded-For справа налево, если запрос пришёл от доверенного прокси
func (l *RateLimiter) clientIP(r *http.Request) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !l.isTrusted(remote) {
		return remote
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !l.isTrusted(hop) || i == 0 {
				return hop
			}
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return remote
}

func (l *RateLimiter) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range l.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
