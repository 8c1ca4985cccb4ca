package session

import (
	"time"
)

// MaxDuration is the hard cap on a single session. Clock-outs past this
// bound are truncated to clock_in_at + MaxDuration, bounding forgotten
// clock-outs.
const MaxDuration = 14 * time.Hour

// ApprovalStatus is the review state of a closed session.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

type ClockSession struct {
	ID              string
	UserID          string
	ProjectID       string
	WorkRole        string
	ClockInAt       time.Time
	ClockOutAt      *time.Time
	SheetDate       time.Time
	TasksCompleted  int
	Notes           *string
	MinutesWorked   *float64
	ApprovalStatus  ApprovalStatus
	ApprovedByID    *string
	ApprovedAt      *time.Time
	ApprovalComment *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined for listings
	UserName    *string
	ProjectName *string
}

// IsActive reports whether the session is still open.
func (s *ClockSession) IsActive() bool {
	return s.ClockOutAt == nil
}

// CappedClockOut returns the effective clock-out time for a session being
// closed at now, applying the session-duration cap.
func CappedClockOut(clockInAt, now time.Time) time.Time {
	limit := clockInAt.Add(MaxDuration)
	if now.After(limit) {
		return limit
	}
	return now
}

// MinutesBetween computes worked minutes between two instants, rounded to
// two decimals.
func MinutesBetween(clockInAt, clockOutAt time.Time) float64 {
	minutes := clockOutAt.Sub(clockInAt).Minutes()
	return float64(int64(minutes*100+0.5)) / 100
}
