package get_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/service/bookings"
)

const (
	msgInvalidParams = "paramètres invalides : indiquez date=AAAA-MM-JJ ou month=AAAA-MM"
	msgInvalidStatus = "statut inconnu"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: date или month, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceReq, err := ToServiceRequest(query.Get("date"), query.Get("month"), query.Get("status"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetBookingsInRange(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("GET /admin/bookings - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("GET /admin/bookings - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /admin/bookings - Failed to get bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
