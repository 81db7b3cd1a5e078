package set_slot_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/internal/service/slots"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidField       = "champ invalide : "
	msgUnknownService     = "prestation inconnue"
)

type Handler struct {
	service   SlotService
	catalog   domain.Catalog
	validator *handlers.Validator
	logger    Logger
}

func NewHandler(service SlotService, catalog domain.Catalog, validator *handlers.Validator, logger Logger) *Handler {
	return &Handler{
		service:   service,
		catalog:   catalog,
		validator: validator,
		logger:    logger,
	}
}

// Handle PUT /api/v1/admin/slots
// Открывает или закрывает слот вручную; повторный вызов ничего не меняет
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		field := h.validator.FirstInvalidField(err)
		h.logger.Warn("PUT /admin/slots - Validation failed: field=%s", field)
		handlers.RespondBadRequest(w, msgInvalidField+field)
		return
	}

	if req.ServiceID != nil {
		if _, ok := h.catalog.Lookup(*req.ServiceID); !ok {
			h.logger.Warn("PUT /admin/slots - Unknown service: %s", *req.ServiceID)
			handlers.RespondBadRequest(w, msgUnknownService)
			return
		}
	}

	date, t, err := req.Parse()
	if err != nil {
		h.logger.Warn("PUT /admin/slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetAvailability(r.Context(), date, t, *req.IsAvailable, req.ServiceID); err != nil {
		if errors.Is(err, slots.ErrStoreUnavailable) {
			h.logger.Error("PUT /admin/slots - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("PUT /admin/slots - Failed to set availability: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	id := domain.SlotID(date, t)
	h.logger.Info("PUT /admin/slots - Slot updated successfully: slot=%s, available=%t", id, *req.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, &SetAvailabilityResponse{
		ID:          id,
		Date:        req.Date,
		Time:        t.String(),
		IsAvailable: *req.IsAvailable,
	})
}
