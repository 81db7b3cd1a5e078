package generate_slots

import (
	"errors"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

var errPartialRange = errors.New("startDate and endDate must be set together")

// Defaults значения из конфигурации, если запрос их не задаёт
type Defaults struct {
	TimeLabels       []types.TimeString
	ExcludedWeekdays []time.Weekday
	HorizonMonths    int
}

// GenerateSlotsRequest HTTP request model
// Без дат открывается горизонт от сегодняшнего дня
type GenerateSlotsRequest struct {
	StartDate        string   `json:"startDate,omitempty" validate:"omitempty,date"`
	EndDate          string   `json:"endDate,omitempty" validate:"omitempty,date"`
	Times            []string `json:"times,omitempty" validate:"omitempty,dive,clock"`
	ExcludedWeekdays []int    `json:"excludedWeekdays,omitempty" validate:"omitempty,dive,min=0,max=6"`
	Months           int      `json:"months,omitempty" validate:"omitempty,min=1,max=24"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	Mode    string `json:"mode"` // range | horizon
	Written int    `json:"written"`
}

// HasRange возвращает true, если задан явный диапазон дат
func (r *GenerateSlotsRequest) HasRange() (bool, error) {
	switch {
	case r.StartDate == "" && r.EndDate == "":
		return false, nil
	case r.StartDate == "" || r.EndDate == "":
		return false, errPartialRange
	}
	return true, nil
}

// Labels время слотов из запроса или из конфигурации
func (r *GenerateSlotsRequest) Labels(d Defaults) ([]types.TimeString, error) {
	if len(r.Times) == 0 {
		return d.TimeLabels, nil
	}
	out := make([]types.TimeString, 0, len(r.Times))
	for _, s := range r.Times {
		t, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Excluded исключённые дни недели из запроса или из конфигурации
func (r *GenerateSlotsRequest) Excluded(d Defaults) []time.Weekday {
	if r.ExcludedWeekdays == nil {
		return d.ExcludedWeekdays
	}
	out := make([]time.Weekday, 0, len(r.ExcludedWeekdays))
	for _, w := range r.ExcludedWeekdays {
		out = append(out, time.Weekday(w))
	}
	return out
}

// Range разбирает границы диапазона
func (r *GenerateSlotsRequest) Range() (time.Time, time.Time, error) {
	start, err := domain.ParseDate(r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := domain.ParseDate(r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
