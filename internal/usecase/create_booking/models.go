package create_booking

import (
	"time"

	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// Options правила бронирования салона
type Options struct {
	Location                *time.Location
	HorizonMonths           int                // 0 - без ограничения
	MinBookingNoticeMinutes int                // минимальный запас для бронирования на сегодня
	HoldSlotOnCreate        bool               // атомарно занимать слот при создании
	TimeLabels              []types.TimeString // пусто - любое время
	ExcludedWeekdays        []time.Weekday
}

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID string           // ID услуги из каталога
	Date      time.Time        // Дата визита (без времени)
	Time      types.TimeString // Время визита (например, "10:00")
	Name      string
	Email     string
	Phone     string
	Address   string  // Адрес визита на дому
	Message   *string // Комментарий клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          string
	ServiceID   string
	ServiceName string
	Date        time.Time
	Time        types.TimeString
	Name        string
	Email       string
	Phone       string
	Address     string
	Message     *string
	Status      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
