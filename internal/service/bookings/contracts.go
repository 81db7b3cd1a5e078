package bookings

import (
	"context"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	Delete(ctx context.Context, id string) error
}

// SlotSync интерфейс сервиса синхронизации слотов
type SlotSync interface {
	ApplyTransition(ctx context.Context, booking *domain.Booking, status domain.BookingStatus) error
	ReleaseBookingSlot(ctx context.Context, booking *domain.Booking) error
}

// Notifier интерфейс отправки писем клиенту
type Notifier interface {
	SendConfirmation(ctx context.Context, booking *domain.Booking) error
	SendCancellation(ctx context.Context, booking *domain.Booking) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	IncStatusChange(status string)
	IncNotification(kind string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
