package get_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/internal/service/slots"
)

const msgInvalidDate = "format de date invalide, attendu AAAA-MM-JJ"

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /admin/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	records, err := h.service.GetSlotsForDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, slots.ErrStoreUnavailable) {
			h.logger.Error("GET /admin/slots - Store unavailable: date=%s, error=%v", dateStr, err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /admin/slots - Failed to get slots: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/slots - Slots retrieved successfully: date=%s, count=%d", dateStr, len(records))
	handlers.RespondJSON(w, http.StatusOK, FromDomainSlots(date, records))
}
