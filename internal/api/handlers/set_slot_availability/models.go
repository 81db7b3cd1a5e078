package set_slot_availability

import (
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// SetAvailabilityRequest HTTP request model
type SetAvailabilityRequest struct {
	Date        string  `json:"date" validate:"required,date"`
	Time        string  `json:"time" validate:"required,clock"`
	IsAvailable *bool   `json:"isAvailable" validate:"required"`
	ServiceID   *string `json:"serviceId,omitempty"`
}

// SetAvailabilityResponse HTTP response model
type SetAvailabilityResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	IsAvailable bool   `json:"isAvailable"`
}

// Parse разбирает дату и время запроса
func (r *SetAvailabilityRequest) Parse() (time.Time, types.TimeString, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, "", err
	}
	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return time.Time{}, "", err
	}
	return date, t, nil
}
