package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// Slot availability record for one (date, time) pair
type Slot struct {
	ID          string
	Date        time.Time
	Time        types.TimeString
	IsAvailable bool
	ServiceID   *string // service that consumed the slot, nil keeps the stored value on upsert
	LastUpdated time.Time
}

// SlotID derives the deterministic slot key "<YYYY-MM-DD>_<HHMM>"
func SlotID(date time.Time, t types.TimeString) string {
	return fmt.Sprintf("%s_%s", FormatDate(date), t.Compact())
}

// NewSlot builds a slot record with a derived id
func NewSlot(date time.Time, t types.TimeString, isAvailable bool, serviceID *string) *Slot {
	date = DateOf(date)
	return &Slot{
		ID:          SlotID(date, t),
		Date:        date,
		Time:        t,
		IsAvailable: isAvailable,
		ServiceID:   serviceID,
	}
}

// Availability tri-state view of a slot
type Availability int

const (
	// AvailabilityUnknown no record exists for the key
	AvailabilityUnknown Availability = iota
	AvailabilityAvailable
	AvailabilityUnavailable
)

// AvailabilityOf converts a possibly missing record into the tri-state
func AvailabilityOf(slot *Slot) Availability {
	switch {
	case slot == nil:
		return AvailabilityUnknown
	case slot.IsAvailable:
		return AvailabilityAvailable
	default:
		return AvailabilityUnavailable
	}
}

// IsBookable applies the open-world policy: a missing record counts as available
func (a Availability) IsBookable() bool {
	return a != AvailabilityUnavailable
}

func (a Availability) String() string {
	switch a {
	case AvailabilityAvailable:
		return "available"
	case AvailabilityUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}
