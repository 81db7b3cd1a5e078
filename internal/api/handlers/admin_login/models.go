package admin_login

import (
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/auth"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse HTTP response model
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresAt string `json:"expiresAt"`
}

// FromSession конвертирует сессию в HTTP response
func FromSession(s *auth.Session) *LoginResponse {
	return &LoginResponse{
		Token:     s.Token,
		TokenType: "Bearer",
		ExpiresAt: s.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
