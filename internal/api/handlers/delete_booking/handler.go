package delete_booking

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

// Handle DELETE /api/v1/admin/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Delete(r.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /admin/bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("DELETE /admin/bookings/{id} - Store unavailable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("DELETE /admin/bookings/{id} - Failed to delete booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id} - Booking deleted successfully: booking_id=%s", bookingID)
	w.WriteHeader(http.StatusNoContent)
}
