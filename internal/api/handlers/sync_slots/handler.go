package sync_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/internal/service/slotsync"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidField       = "champ invalide : "
)

type Handler struct {
	sync      SlotSync
	defaults  Defaults
	validator *handlers.Validator
	logger    Logger
}

func NewHandler(sync SlotSync, defaults Defaults, validator *handlers.Validator, logger Logger) *Handler {
	return &Handler{
		sync:      sync,
		defaults:  defaults,
		validator: validator,
		logger:    logger,
	}
}

// Handle POST /api/v1/admin/slots/sync
// Перестраивает слоты по бронированиям: один день или весь горизонт
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SyncSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /admin/slots/sync - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		field := h.validator.FirstInvalidField(err)
		h.logger.Warn("POST /admin/slots/sync - Validation failed: field=%s", field)
		handlers.RespondBadRequest(w, msgInvalidField+field)
		return
	}

	if req.Date != "" {
		date, err := domain.ParseDate(req.Date)
		if err != nil {
			h.logger.Warn("POST /admin/slots/sync - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidField+"date")
			return
		}
		if err := h.sync.SyncSlotsForDate(r.Context(), date, h.defaults.TimeLabels); err != nil {
			h.respondError(w, err)
			return
		}
		h.logger.Info("POST /admin/slots/sync - Date synced successfully: date=%s", req.Date)
		handlers.RespondJSON(w, http.StatusOK, &SyncSlotsResponse{Date: &req.Date, SyncedDays: 1})
		return
	}

	months := req.Months
	if months == 0 {
		months = h.defaults.HorizonMonths
	}
	count, err := h.sync.SyncUpcoming(r.Context(), h.defaults.TimeLabels, h.defaults.ExcludedWeekdays, months)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.Info("POST /admin/slots/sync - Horizon synced successfully: months=%d, days=%d", months, count)
	handlers.RespondJSON(w, http.StatusOK, &SyncSlotsResponse{SyncedDays: count})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, slotsync.ErrInvalidInput):
		h.logger.Warn("POST /admin/slots/sync - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
	case errors.Is(err, slotsync.ErrStoreUnavailable):
		h.logger.Error("POST /admin/slots/sync - Store unavailable: %v", err)
		handlers.RespondServiceUnavailable(w)
	default:
		h.logger.Error("POST /admin/slots/sync - Failed to sync slots: %v", err)
		handlers.RespondInternalError(w)
	}
}
