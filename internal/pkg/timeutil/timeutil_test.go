package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_DateOf_CrossesMidnightInOrgZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC is already 01:30 the next day in IST.
	utc := time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC)
	clock := NewClockAt(loc, func() time.Time { return utc })

	assert.Equal(t, "2024-06-11", FormatDate(clock.DateOf(utc)))
	assert.Equal(t, "2024-06-11", FormatDate(clock.Today()))
}

func TestClock_DateOf_TruncatesToMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	clock := NewClockAt(loc, time.Now)
	at := time.Date(2024, 6, 10, 15, 42, 7, 0, loc)
	date := clock.DateOf(at)

	assert.Equal(t, 0, date.Hour())
	assert.Equal(t, 0, date.Minute())
	assert.Equal(t, "2024-06-10", FormatDate(date))
}
