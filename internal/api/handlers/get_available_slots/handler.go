package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/HomeHair-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate = "la date est obligatoire"
	msgInvalidDate = "format de date invalide, attendu AAAA-MM-JJ"
	msgPastDate    = "la date choisie est déjà passée"
	msgDateTooFar  = "la date choisie est trop éloignée"
)

type Handler struct {
	useCase AvailabilityQuery
	logger  Logger
}

func NewHandler(useCase AvailabilityQuery, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Date in the past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-slots - Date too far: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingDate)

		case errors.Is(err, getAvailableSlots.ErrStoreUnavailable):
			h.logger.Error("GET /available-slots - Store unavailable: date=%s, error=%v", dateStr, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved successfully: date=%s, count=%d", dateStr, len(result.Times))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
