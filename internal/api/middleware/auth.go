package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/auth"
)

const (
	msgMissingToken = "authentification requise"
	msgInvalidToken = "session invalide ou expirée"
)

type contextKey string

const adminSubjectKey contextKey = "admin_subject"

// TokenVerifier проверяет токен администратора
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminAuth пропускает только запросы с валидным Bearer токеном администратора
func AdminAuth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), adminSubjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminSubject возвращает email администратора из контекста
func GetAdminSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(adminSubjectKey).(string)
	return subject, ok
}
