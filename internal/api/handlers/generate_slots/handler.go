package generate_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/service/slots"
	"github.com/m04kA/HomeHair-BookingService/internal/service/slotsync"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidField       = "champ invalide : "
	msgPartialRange       = "startDate et endDate doivent être fournis ensemble"
	msgInvalidRange       = "plage de dates invalide"
	msgRangeTooLarge      = "plage de dates trop longue"
)

const (
	modeRange   = "range"
	modeHorizon = "horizon"
)

type Handler struct {
	service   SlotService
	sync      SlotSync
	defaults  Defaults
	validator *handlers.Validator
	logger    Logger
}

func NewHandler(service SlotService, sync SlotSync, defaults Defaults, validator *handlers.Validator, logger Logger) *Handler {
	return &Handler{
		service:   service,
		sync:      sync,
		defaults:  defaults,
		validator: validator,
		logger:    logger,
	}
}

// Handle POST /api/v1/admin/slots/generate
// Пустое тело открывает слоты на горизонт из конфигурации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /admin/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		field := h.validator.FirstInvalidField(err)
		h.logger.Warn("POST /admin/slots/generate - Validation failed: field=%s", field)
		handlers.RespondBadRequest(w, msgInvalidField+field)
		return
	}

	hasRange, err := req.HasRange()
	if err != nil {
		h.logger.Warn("POST /admin/slots/generate - %v", err)
		handlers.RespondBadRequest(w, msgPartialRange)
		return
	}

	labels, err := req.Labels(h.defaults)
	if err != nil {
		h.logger.Warn("POST /admin/slots/generate - Invalid times: %v", err)
		handlers.RespondBadRequest(w, msgInvalidField+"times")
		return
	}
	excluded := req.Excluded(h.defaults)

	resp := &GenerateSlotsResponse{Mode: modeHorizon}
	if hasRange {
		start, end, err := req.Range()
		if err != nil {
			h.logger.Warn("POST /admin/slots/generate - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		resp.Mode = modeRange
		resp.Written, err = h.service.GenerateForRange(r.Context(), start, end, labels, excluded)
		if err != nil {
			h.respondError(w, err)
			return
		}
	} else {
		months := req.Months
		if months == 0 {
			months = h.defaults.HorizonMonths
		}
		resp.Written, err = h.sync.InitializeUpcomingSlots(r.Context(), labels, excluded, months)
		if err != nil {
			h.respondError(w, err)
			return
		}
	}

	h.logger.Info("POST /admin/slots/generate - Slots generated successfully: mode=%s, written=%d, labels=%s",
		resp.Mode, resp.Written, joinLabels(req.Times))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, slots.ErrRangeTooLarge):
		h.logger.Warn("POST /admin/slots/generate - Range too large: %v", err)
		handlers.RespondBadRequest(w, msgRangeTooLarge)
	case errors.Is(err, slots.ErrInvalidInput), errors.Is(err, slotsync.ErrInvalidInput):
		h.logger.Warn("POST /admin/slots/generate - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
	case errors.Is(err, slots.ErrStoreUnavailable), errors.Is(err, slotsync.ErrStoreUnavailable):
		h.logger.Error("POST /admin/slots/generate - Store unavailable: %v", err)
		handlers.RespondServiceUnavailable(w)
	default:
		h.logger.Error("POST /admin/slots/generate - Failed to generate slots: %v", err)
		handlers.RespondInternalError(w)
	}
}

func joinLabels(times []string) string {
	if len(times) == 0 {
		return "default"
	}
	return strings.Join(times, ",")
}
