package admin_login

import (
	"errors"
	"net/http"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/auth"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidCredentials = "e-mail ou mot de passe incorrect"
	msgNotConfigured      = "l'accès administrateur n'est pas configuré"
)

type Handler struct {
	authenticator Authenticator
	validator     *handlers.Validator
	logger        Logger
}

func NewHandler(authenticator Authenticator, validator *handlers.Validator, logger Logger) *Handler {
	return &Handler{
		authenticator: authenticator,
		validator:     validator,
		logger:        logger,
	}
}

// Handle POST /api/v1/admin/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("POST /admin/login - Validation failed: field=%s", h.validator.FirstInvalidField(err))
		handlers.RespondBadRequest(w, msgInvalidCredentials)
		return
	}

	session, err := h.authenticator.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /admin/login - Invalid credentials")
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, auth.ErrNotConfigured):
			h.logger.Error("POST /admin/login - Admin account is not configured")
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /admin/login - Failed to issue token: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/login - Admin logged in")
	handlers.RespondJSON(w, http.StatusOK, FromSession(session))
}
