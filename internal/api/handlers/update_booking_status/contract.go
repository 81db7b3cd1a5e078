package update_booking_status

import (
	"context"

	"github.com/m04kA/HomeHair-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	UpdateStatus(ctx context.Context, id string, status string) (*models.StatusUpdateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
