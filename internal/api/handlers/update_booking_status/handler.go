package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "identifiant de réservation invalide"
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidStatus      = "statut inconnu (pending, confirmed, cancelled, completed)"
	msgNotFound           = "réservation introuvable"
)

type Handler struct {
	service   BookingService
	validator *handlers.Validator
	logger    Logger
}

func NewHandler(service BookingService, validator *handlers.Validator, logger Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

// Handle PATCH /api/v1/admin/bookings/{bookingId}/status
// Ошибка отправки письма возвращается полем warning при статусе 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid status: %s", req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), bookingID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("PATCH /admin/bookings/{id}/status - Store unavailable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /admin/bookings/{id}/status - Failed to update status: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.NotificationError != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Status updated without notification: booking_id=%s, error=%v",
			bookingID, result.NotificationError)
	}

	h.logger.Info("PATCH /admin/bookings/{id}/status - Status updated successfully: booking_id=%s, %s -> %s",
		bookingID, result.PreviousStatus, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
