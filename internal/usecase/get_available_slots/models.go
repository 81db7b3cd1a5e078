package get_available_slots

import (
	"time"

	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// Options правила показа свободного времени
type Options struct {
	Location                *time.Location
	TimeLabels              []types.TimeString
	ExcludedWeekdays        []time.Weekday
	HorizonMonths           int
	MinBookingNoticeMinutes int
	AutoSeedEmptyDates      bool // заполнять день без записей слотов перед чтением
}

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time          // Дата, на которую запрашивались слоты
	Times []types.TimeString // Свободное время по возрастанию
}
