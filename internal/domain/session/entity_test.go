package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCappedClockOut(t *testing.T) {
	clockIn := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	// Within the cap the real time is used.
	now := clockIn.Add(8 * time.Hour)
	assert.Equal(t, now, CappedClockOut(clockIn, now))

	// 25h later the clock-out is capped at clock-in + 14h.
	now = clockIn.Add(25 * time.Hour)
	capped := CappedClockOut(clockIn, now)
	assert.Equal(t, clockIn.Add(14*time.Hour), capped)
	assert.Equal(t, 23, capped.Hour())
}

func TestMinutesBetween(t *testing.T) {
	clockIn := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 840.0, MinutesBetween(clockIn, clockIn.Add(14*time.Hour)))
	assert.Equal(t, 90.5, MinutesBetween(clockIn, clockIn.Add(90*time.Minute+30*time.Second)))
	assert.Equal(t, 0.25, MinutesBetween(clockIn, clockIn.Add(15*time.Second)))
}

func TestApprovalStatus_IsValid(t *testing.T) {
	assert.True(t, ApprovalPending.IsValid())
	assert.True(t, ApprovalApproved.IsValid())
	assert.True(t, ApprovalRejected.IsValid())
	assert.False(t, ApprovalStatus("approved").IsValid())
	assert.False(t, ApprovalStatus("DONE").IsValid())
}

func TestClockSession_IsActive(t *testing.T) {
	s := &ClockSession{}
	assert.True(t, s.IsActive())

	out := time.Now()
	s.ClockOutAt = &out
	assert.False(t, s.IsActive())
}
