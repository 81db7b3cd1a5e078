package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday_UsesLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// 23:30 UTC is already the next day in Paris during summer time
	now := time.Date(2024, 6, 10, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-06-11", FormatDate(Today(now, paris)))
	assert.Equal(t, "2024-06-10", FormatDate(Today(now, time.UTC)))
}

func TestParseMonth(t *testing.T) {
	first, last, err := ParseMonth("2024-02")
	require.NoError(t, err)

	assert.Equal(t, "2024-02-01", FormatDate(first))
	assert.Equal(t, "2024-02-29", FormatDate(last))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)

	days := DaysBetween(start, start.AddDate(0, 0, 2))
	require.Len(t, days, 3)
	assert.Equal(t, time.Sunday, days[1].Weekday())

	assert.Empty(t, DaysBetween(start, start.AddDate(0, 0, -1)))
}

func TestIsExcludedWeekday(t *testing.T) {
	sunday := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsExcludedWeekday(sunday, DefaultExcludedWeekdays))
	assert.False(t, IsExcludedWeekday(sunday.AddDate(0, 0, 1), DefaultExcludedWeekdays))
}

func TestCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	s, ok := catalog.Lookup("coloration")
	require.True(t, ok)
	assert.Equal(t, "60€", s.PriceLabel())

	quoted, ok := catalog.Lookup("coiffure-evenement")
	require.True(t, ok)
	assert.Equal(t, "Sur devis", quoted.PriceLabel())

	assert.Equal(t, "unknown", catalog.DisplayName("unknown"))
}
