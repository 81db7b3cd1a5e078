package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// SlotStore интерфейс хранилища слотов
type SlotStore interface {
	GetSlotsForDate(ctx context.Context, date time.Time) ([]*domain.Slot, error)
	GetActuallyAvailableSlotsForDate(ctx context.Context, date time.Time) ([]types.TimeString, error)
}

// SlotSync интерфейс сервиса синхронизации (первичное заполнение дня)
type SlotSync interface {
	SyncSlotsForDate(ctx context.Context, date time.Time, labels []types.TimeString) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
