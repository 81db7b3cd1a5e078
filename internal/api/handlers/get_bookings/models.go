package get_bookings

import (
	"errors"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/internal/service/bookings/models"
)

var errMissingPeriod = errors.New("either date or month is required")

// ToServiceRequest формирует запрос к сервису из query параметров
// date выбирает один день, month (YYYY-MM) - весь месяц
func ToServiceRequest(dateStr, monthStr, statusStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	switch {
	case dateStr != "":
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate, req.EndDate = date, date

	case monthStr != "":
		first, last, err := domain.ParseMonth(monthStr)
		if err != nil {
			return nil, err
		}
		req.StartDate, req.EndDate = first, last

	default:
		return nil, errMissingPeriod
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
