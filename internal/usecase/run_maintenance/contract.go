package run_maintenance

import (
	"context"
	"time"

	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// Sweeper процедуры очистки хранилища слотов
type Sweeper interface {
	CleanupObsoleteSlots(ctx context.Context) (int, error)
	CleanupCancelledBookingSlots(ctx context.Context) (int, error)
	CleanupObsoleteBookings(ctx context.Context) (int, error)
}

// HorizonInitializer создаёт недостающие слоты на горизонт бронирования
type HorizonInitializer interface {
	SeedUpcomingSlots(ctx context.Context, labels []types.TimeString, excluded []time.Weekday, months int) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
