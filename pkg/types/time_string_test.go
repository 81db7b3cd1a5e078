package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("9:05")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:05"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("10:00").Validate())
	assert.Error(t, TimeString("9:00").Validate())
	assert.Error(t, TimeString("").Validate())
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), ts)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("17:59"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("14:00")))
	assert.Equal(t, TimeString("14:00"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_On(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("16:00").On(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 16, 0, 0, 0, time.UTC), at)
}

func TestTimeString_Compact(t *testing.T) {
	assert.Equal(t, "1000", TimeString("10:00").Compact())
}
