package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

var (
	ErrInvalidToken  = errors.New("auth: invalid token")
	ErrSigningMethod = errors.New("auth: unexpected signing method")
)

// Manager выпускает и проверяет JWT токены администратора
type Manager struct {
	Secret    []byte
	AccessTTL time.Duration
	Issuer    string

	now func() time.Time
}

// Claims содержимое токена
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewManager создает менеджер токенов
func NewManager(secret string, ttl time.Duration, issuer string) *Manager {
	return &Manager{
		Secret:    []byte(secret),
		AccessTTL: ttl,
		Issuer:    issuer,
		now:       time.Now,
	}
}

// NewAccessToken выпускает токен для субъекта с ролью; возвращает токен и момент истечения
func (m *Manager) NewAccessToken(subject, role string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.AccessTTL)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Parse проверяет подпись и срок действия токена
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrSigningMethod
		}
		return m.Secret, nil
	},
		jwt.WithIssuer(m.Issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
