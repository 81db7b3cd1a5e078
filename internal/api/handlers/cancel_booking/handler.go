package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "identifiant de réservation invalide"
	msgNotFound         = "réservation introuvable"
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

// Handle PATCH /api/v1/admin/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.Cancel(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/cancel - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("PATCH /admin/bookings/{id}/cancel - Store unavailable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /admin/bookings/{id}/cancel - Failed to cancel booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/cancel - Booking cancelled successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
