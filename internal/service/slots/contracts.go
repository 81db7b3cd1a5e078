package slots

import (
	"context"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Upsert(ctx context.Context, slot *domain.Slot) error
	UpsertMany(ctx context.Context, slots []*domain.Slot) error
	InsertMissing(ctx context.Context, slots []*domain.Slot) (int, error)
	Claim(ctx context.Context, slot *domain.Slot) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	GetByDate(ctx context.Context, date time.Time, onlyAvailable bool) ([]*domain.Slot, error)
	DeleteBefore(ctx context.Context, date time.Time) (int, error)
}

// BookingRepository интерфейс репозитория бронирований (чтение и очистка)
type BookingRepository interface {
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	DeleteObsolete(ctx context.Context, today time.Time) (int, error)
}

// Metrics бизнес-метрики слотов
type Metrics interface {
	IncSlotUpdate(available bool)
	AddCleanup(sweep string, count int)
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
