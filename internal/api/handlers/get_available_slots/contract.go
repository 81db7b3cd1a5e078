package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/m04kA/HomeHair-BookingService/internal/usecase/get_available_slots"
)

// AvailabilityQuery свободное время на дату для публичной формы
type AvailabilityQuery interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
