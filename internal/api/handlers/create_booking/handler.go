package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/HomeHair-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidField       = "champ invalide : "
	msgInvalidDateTime    = "date ou heure invalide (formats attendus : AAAA-MM-JJ et HH:MM)"
	msgSlotNotAvailable   = "ce créneau n'est plus disponible, veuillez en choisir un autre"
	msgServiceNotFound    = "prestation inconnue"
	msgInvalidBookingDate = "la date choisie est déjà passée"
	msgDateTooFar         = "la date choisie est trop éloignée"
	msgTooLateToBook      = "ce créneau est trop proche pour être réservé en ligne"
	msgInvalidInput       = "informations de réservation invalides"
)

type Handler struct {
	useCase   BookingCreator
	validator RequestValidator
	logger    Logger
}

func NewHandler(useCase BookingCreator, validator RequestValidator, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		validator: validator,
		logger:    logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		field := h.validator.FirstInvalidField(err)
		h.logger.Warn("POST /bookings - Validation failed: field=%s, error=%v", field, err)
		handlers.RespondBadRequest(w, msgInvalidField+field)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service=%s", req.Service)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in the past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v", req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, slot=%s_%s",
		result.ID, req.Date, result.Time.Compact())
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
