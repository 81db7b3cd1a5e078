package sync_slots

import (
	"time"

	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// Defaults параметры синхронизации из конфигурации
type Defaults struct {
	TimeLabels       []types.TimeString
	ExcludedWeekdays []time.Weekday
	HorizonMonths    int
}

// SyncSlotsRequest HTTP request model
// Без даты синхронизируется весь горизонт
type SyncSlotsRequest struct {
	Date   string `json:"date,omitempty" validate:"omitempty,date"`
	Months int    `json:"months,omitempty" validate:"omitempty,min=1,max=24"`
}

// SyncSlotsResponse HTTP response model
type SyncSlotsResponse struct {
	Date       *string `json:"date,omitempty"`
	SyncedDays int     `json:"syncedDays"`
}
