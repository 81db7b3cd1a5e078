package get_bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest("", "2024-02", "confirmed")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), req.StartDate)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), req.EndDate)
	require.NotNil(t, req.Status)
	assert.Equal(t, "confirmed", *req.Status)

	req, err = ToServiceRequest("2024-06-10", "2024-02", "")
	require.NoError(t, err)
	assert.Equal(t, req.StartDate, req.EndDate)
	assert.Nil(t, req.Status)

	_, err = ToServiceRequest("", "", "")
	assert.Error(t, err)

	_, err = ToServiceRequest("10-06-2024", "", "")
	assert.Error(t, err)
}
