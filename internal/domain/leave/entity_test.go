package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeaveRequest_Covers(t *testing.T) {
	r := &LeaveRequest{
		StartDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, r.Covers(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Covers(time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Covers(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Covers(time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Covers(time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)))
}

func TestRequestType_CountsAsLeave(t *testing.T) {
	assert.True(t, TypeSickLeave.CountsAsLeave())
	assert.True(t, TypeFullDay.CountsAsLeave())
	assert.True(t, TypeHalfDay.CountsAsLeave())
	assert.True(t, TypeOther.CountsAsLeave())
	// WFH days still count as working days.
	assert.False(t, TypeWFH.CountsAsLeave())
}

func TestCreateLeaveRequest_Validate(t *testing.T) {
	req := CreateLeaveRequest{
		RequestType: "FULL-DAY",
		StartDate:   "2024-06-10",
		EndDate:     "2024-06-12",
	}
	assert.NoError(t, req.Validate())
	assert.Equal(t, 10, req.Start.Day())

	bad := CreateLeaveRequest{
		RequestType: "VACATION",
		StartDate:   "2024-06-12",
		EndDate:     "2024-06-10",
	}
	err := bad.Validate()
	assert.Error(t, err)
}
