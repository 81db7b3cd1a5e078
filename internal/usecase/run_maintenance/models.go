package run_maintenance

import (
	"time"

	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// Названия шагов обслуживания
const (
	StepObsoleteSlots     = "obsolete_slots"
	StepCancelledBookings = "cancelled_booking_slots"
	StepObsoleteBookings  = "obsolete_bookings"
	StepInitializeHorizon = "initialize_horizon"
)

// Options параметры инициализации горизонта
type Options struct {
	TimeLabels       []types.TimeString
	ExcludedWeekdays []time.Weekday
	HorizonMonths    int
}

// Request модель запроса на обслуживание
type Request struct {
	InitializeHorizon bool // после очистки открыть слоты на горизонт
}

// StepResult итог одного шага
type StepResult struct {
	Name  string
	Count int
	Err   error
}

// Response отчёт по всем шагам; шаги выполняются независимо
type Response struct {
	Steps []StepResult
}

// Failed возвращает true, если хотя бы один шаг завершился ошибкой
func (r *Response) Failed() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return true
		}
	}
	return false
}
