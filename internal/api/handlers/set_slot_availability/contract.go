package set_slot_availability

import (
	"context"
	"time"

	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

type SlotService interface {
	SetAvailability(ctx context.Context, date time.Time, t types.TimeString, isAvailable bool, serviceID *string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
