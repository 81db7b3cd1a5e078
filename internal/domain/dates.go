package domain

import (
	"fmt"
	"time"
)

// Dates are civil calendar days. They are stored as midnight UTC so that
// the weekday, formatting and comparisons never depend on the server zone.

// DateOf truncates t to its calendar day in t's own location
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day in loc
func Today(now time.Time, loc *time.Location) time.Time {
	return DateOf(now.In(loc))
}

// ParseDate parses "YYYY-MM-DD" into a civil date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseMonth parses "YYYY-MM" and returns the first and last day of the month
func ParseMonth(s string) (time.Time, time.Time, error) {
	t, err := time.Parse(MonthFormat, s)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return t, t.AddDate(0, 1, -1), nil
}

// FormatDate formats a civil date as "YYYY-MM-DD"
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// IsExcludedWeekday reports whether the day falls on one of the excluded weekdays
func IsExcludedWeekday(date time.Time, excluded []time.Weekday) bool {
	wd := date.Weekday()
	for _, e := range excluded {
		if wd == e {
			return true
		}
	}
	return false
}

// DaysBetween lists calendar days in [start, end] inclusive
func DaysBetween(start, end time.Time) []time.Time {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
