package slotsync

import (
	"context"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// SlotStore интерфейс хранилища слотов
type SlotStore interface {
	SetAvailability(ctx context.Context, date time.Time, t types.TimeString, isAvailable bool, serviceID *string) error
	UpsertSlots(ctx context.Context, slots []*domain.Slot) error
	GenerateForRange(ctx context.Context, start, end time.Time, labels []types.TimeString, excluded []time.Weekday) (int, error)
	SeedForRange(ctx context.Context, start, end time.Time, labels []types.TimeString, excluded []time.Weekday) (int, error)
	Today() time.Time
}

// BookingRepository интерфейс чтения бронирований
type BookingRepository interface {
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Metrics метрики синхронизации
type Metrics interface {
	IncSyncRun(kind string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
