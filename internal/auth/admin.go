package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrNotConfigured      = errors.New("auth: admin account is not configured")
)

// Session выданный администратору токен
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AdminAuthenticator проверяет учетные данные единственного администратора салона
type AdminAuthenticator struct {
	email        string
	passwordHash string
	tokens       *Manager
}

func NewAdminAuthenticator(email, passwordHash string, tokens *Manager) *AdminAuthenticator {
	return &AdminAuthenticator{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

// Login сверяет email и пароль и выдает токен с ролью admin
func (a *AdminAuthenticator) Login(email, password string) (*Session, error) {
	if a.email == "" || a.passwordHash == "" || len(a.tokens.Secret) == 0 {
		return nil, ErrNotConfigured
	}

	given := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(given), []byte(a.email)) == 1
	// bcrypt проверяем всегда, чтобы время ответа не зависело от email
	passErr := ComparePassword(a.passwordHash, password)
	if !emailOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := a.tokens.NewAccessToken(a.email, RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Verify проверяет токен и роль администратора
func (a *AdminAuthenticator) Verify(token string) (*Claims, error) {
	claims, err := a.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
