package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: service is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if err := validateText("name", req.Name, domain.MaxNameLength); err != nil {
		return err
	}
	if err := validateText("address", req.Address, domain.MaxAddressLength); err != nil {
		return err
	}
	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	if err := validate.Var(req.Email, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
	}

	if req.Message != nil && utf8.RuneCountInString(*req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message is longer than %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	return nil
}

func validateText(field, value string, max int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidInput, field, max)
	}
	return nil
}

// validateDate проверяет, что дата не в прошлом и не за горизонтом бронирования
func validateDate(date, today time.Time, horizonMonths int) error {
	day := domain.DateOf(date)
	if day.Before(today) {
		return ErrInvalidDate
	}

	if horizonMonths <= 0 {
		return nil
	}

	// Горизонт полуоткрытый: [today, today + N месяцев)
	limit := today.AddDate(0, horizonMonths, 0)
	if !day.Before(limit) {
		return fmt.Errorf("%w: can only book %d months in advance", ErrDateTooFarInFuture, horizonMonths)
	}

	return nil
}

// validateBookingTime проверяет, что бронирование на сегодня не нарушает minBookingNoticeMinutes
func validateBookingTime(date, today time.Time, t types.TimeString, localNow time.Time, minNoticeMinutes int) error {
	if !domain.DateOf(date).Equal(today) {
		return nil
	}

	// Запас выходит за пределы дня: на сегодня бронировать уже поздно
	minAllowed, err := types.NewTimeString(localNow).AddMinutes(minNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	if t.IsBefore(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// validateSchedule проверяет, что время входит в расписание салона, а день рабочий
func validateSchedule(date time.Time, t types.TimeString, labels []types.TimeString, excluded []time.Weekday) error {
	if domain.IsExcludedWeekday(date, excluded) {
		return fmt.Errorf("%w: %s is not a working day", ErrSlotNotAvailable, date.Weekday())
	}

	if len(labels) == 0 {
		return nil
	}
	for _, label := range labels {
		if label == t {
			return nil
		}
	}
	return fmt.Errorf("%w: time %s is not in the schedule", ErrInvalidInput, t)
}
