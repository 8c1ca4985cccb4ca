package attendance

import (
	"time"
)

// Status is the resolved state of a user's day.
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLeave   Status = "LEAVE"
	StatusAbsent  Status = "ABSENT"
	StatusUnknown Status = "UNKNOWN"
)

// statusRank orders statuses by precedence. A day never downgrades: an
// incoming status only replaces the stored one when it ranks higher.
var statusRank = map[Status]int{
	StatusPresent: 3,
	StatusLeave:   2,
	StatusAbsent:  1,
	StatusUnknown: 0,
}

// Rank returns the precedence of s. Unrecognized values rank lowest.
func (s Status) Rank() int {
	return statusRank[s]
}

func (s Status) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// Source records which flow produced an attendance row.
type Source string

const (
	SourceClockIn Source = "CLOCK_IN"
	SourceLeave   Source = "LEAVE"
	SourceManual  Source = "MANUAL"
	SourceSweep   Source = "SWEEP"
)

type DailyAttendance struct {
	ID             string
	UserID         string
	AttendanceDate time.Time
	Status         Status
	FirstClockInAt *time.Time
	LastClockOutAt *time.Time
	MinutesWorked  *float64
	ProjectID      *string
	ShiftID        *string
	Source         Source
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Reconcile resolves the status reported for a day from the stored
// attendance row and whether the user holds an approved leave covering that
// day. Approved leave wins over anything except a recorded PRESENT.
func Reconcile(stored *Status, hasApprovedLeave bool) Status {
	if hasApprovedLeave && (stored == nil || *stored != StatusPresent) {
		return StatusLeave
	}
	if stored != nil {
		return *stored
	}
	return StatusUnknown
}

// Merge decides the status to keep when multiple rows for the same user and
// date are folded into one. The higher-ranked status wins.
func Merge(stored, incoming Status) Status {
	if incoming.Rank() > stored.Rank() {
		return incoming
	}
	return stored
}

// UpgradeOnClockIn returns the status a stored row takes when the user
// clocks in. Only UNKNOWN and ABSENT upgrade to PRESENT; a LEAVE day set by
// the leave-request pathway is kept even if the user clocks in on it.
func UpgradeOnClockIn(stored Status) Status {
	if stored == StatusUnknown || stored == StatusAbsent {
		return StatusPresent
	}
	return stored
}
