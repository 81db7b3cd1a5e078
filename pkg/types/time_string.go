package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается, когда строка не соответствует формату HH:MM
var ErrInvalidTimeString = errors.New("invalid time string format")

const timeLayout = "15:04"

// TimeString время суток в формате HH:MM (без даты и часового пояса)
type TimeString string

// NewTimeString извлекает время суток из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	parsed, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(parsed), nil
}

// MustTimeString паникует при некорректном формате, используется для констант
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Compact возвращает время без двоеточия: "10:00" -> "1000"
func (t TimeString) Compact() string {
	return strings.ReplaceAll(string(t), ":", "")
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil || len(t) != len(timeLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на n минут
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total += n
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s%+d minutes is out of day range", ErrInvalidTimeString, t, n)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore сравнивает два времени суток
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return string(t) < string(other)
	}
	return a < b
}

// IsAfter сравнивает два времени суток
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// On возвращает момент времени t в календарный день date
func (t TimeString) On(date time.Time) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location()), nil
}

// MarshalText реализует encoding.TextMarshaler
func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler (используется при разборе TOML и JSON)
func (t *TimeString) UnmarshalText(data []byte) error {
	parsed, err := NewTimeStringFromString(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(string(v))
	case time.Time:
		*t = NewTimeString(v)
	case nil:
		*t = ""
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
	if len(*t) > len(timeLayout) {
		// TIME из postgres приходит как "10:00:00"
		*t = (*t)[:len(timeLayout)]
	}
	return nil
}
