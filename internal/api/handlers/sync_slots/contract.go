package sync_slots

import (
	"context"
	"time"

	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

type SlotSync interface {
	SyncSlotsForDate(ctx context.Context, date time.Time, labels []types.TimeString) error
	SyncUpcoming(ctx context.Context, labels []types.TimeString, excluded []time.Weekday, months int) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
