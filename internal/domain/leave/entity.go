package leave

import (
	"time"
)

// RequestType is the kind of time-off requested.
type RequestType string

const (
	TypeSickLeave RequestType = "SICK_LEAVE"
	TypeFullDay   RequestType = "FULL-DAY"
	TypeHalfDay   RequestType = "HALF-DAY"
	TypeWFH       RequestType = "WFH"
	TypeOther     RequestType = "OTHER"
)

func (t RequestType) IsValid() bool {
	switch t {
	case TypeSickLeave, TypeFullDay, TypeHalfDay, TypeWFH, TypeOther:
		return true
	}
	return false
}

// CountsAsLeave reports whether an approved request of this type marks the
// covered days as LEAVE. WFH keeps the user working, so it does not.
func (t RequestType) CountsAsLeave() bool {
	switch t {
	case TypeSickLeave, TypeFullDay, TypeHalfDay, TypeOther:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type LeaveRequest struct {
	ID            string
	UserID        string
	ProjectID     *string
	RequestType   RequestType
	Status        Status
	StartDate     time.Time
	EndDate       time.Time
	StartTime     *string
	EndTime       *string
	Reason        *string
	AttachmentURL *string
	ReviewedByID  *string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined for listings
	UserName  *string
	UserEmail *string
}

// Covers reports whether the request spans the given date (inclusive).
func (r *LeaveRequest) Covers(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}
