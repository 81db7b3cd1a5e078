package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

type SlotService interface {
	GenerateForRange(ctx context.Context, start, end time.Time, labels []types.TimeString, excluded []time.Weekday) (int, error)
}

type SlotSync interface {
	InitializeUpcomingSlots(ctx context.Context, labels []types.TimeString, excluded []time.Weekday, months int) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
