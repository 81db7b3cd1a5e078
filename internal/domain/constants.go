package domain

import "time"

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// Defaults used when the configuration leaves a value empty
const (
	DefaultTimezone                = "Europe/Paris"
	DefaultHorizonMonths           = 2
	DefaultMinBookingNoticeMinutes = 60
	DefaultSyncWorkers             = 4
)

// Business validation constants
const (
	MaxNameLength    = 100
	MaxAddressLength = 300
	MaxMessageLength = 1000
	MaxHorizonMonths = 12
	MaxGenerateDays  = 366
)

// DefaultTimeLabels daily time labels offered by the hairdresser
var DefaultTimeLabels = []string{
	"09:00", "10:00", "11:00", "12:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

// DefaultExcludedWeekdays days without visits
var DefaultExcludedWeekdays = []time.Weekday{time.Sunday}

// OccupyingStatuses statuses that hold a slot
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses every valid booking status
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}
