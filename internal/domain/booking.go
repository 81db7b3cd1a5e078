package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// Booking represents a home visit reservation
type Booking struct {
	ID        string
	ServiceID string
	Date      time.Time
	Time      types.TimeString
	Name      string
	Email     string
	Phone     string
	Address   string
	Message   *string
	Status    BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotID returns the key of the slot the booking refers to
func (b *Booking) SlotID() string {
	return SlotID(b.Date, b.Time)
}

// OccupiesSlot returns true if the booking holds its slot (pending or confirmed)
func (b *Booking) OccupiesSlot() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsPast returns true if the booking date is before today
func (b *Booking) IsPast(today time.Time) bool {
	return DateOf(b.Date).Before(DateOf(today))
}

// IsObsolete returns true if the booking can be removed by the cleanup sweep
func (b *Booking) IsObsolete(today time.Time) bool {
	return b.IsPast(today) || b.IsCancelled()
}

// SlotEffect describes what a status transition does to the booking's slot
type SlotEffect int

const (
	SlotEffectNone SlotEffect = iota
	SlotEffectRelease
	SlotEffectOccupy
)

// SlotEffectOf returns the slot change triggered by moving a booking into status
func SlotEffectOf(status BookingStatus) SlotEffect {
	switch status {
	case StatusCancelled:
		return SlotEffectRelease
	case StatusConfirmed, StatusCompleted:
		return SlotEffectOccupy
	default:
		return SlotEffectNone
	}
}

// BookingsFilter фильтр выборки бронирований
type BookingsFilter struct {
	StartDate *time.Time      // Начало периода включительно (nil - без ограничения)
	EndDate   *time.Time      // Конец периода включительно (nil - без ограничения)
	Statuses  []BookingStatus // Пустой список - все статусы
}

// Matches checks a booking against the filter
func (f BookingsFilter) Matches(b *Booking) bool {
	date := DateOf(b.Date)
	if f.StartDate != nil && date.Before(DateOf(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && date.After(DateOf(*f.EndDate)) {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, st := range f.Statuses {
		if b.Status == st {
			return true
		}
	}
	return false
}
