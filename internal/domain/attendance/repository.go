package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for daily attendance rows.
type AttendanceRepository interface {
	// GetByUserAndDate retrieves the row for a user on a date, or nil when
	// none exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*DailyAttendance, error)

	// UpsertOnClockIn creates or updates the row for (userID, date) when the
	// user clocks in. A new row is created as PRESENT; an existing row keeps
	// its status unless UpgradeOnClockIn says otherwise. first_clock_in_at,
	// project_id and source are always refreshed.
	UpsertOnClockIn(ctx context.Context, userID string, date time.Time, clockInAt time.Time, projectID string, shiftID *string) error

	// UpdateOnClockOut records last_clock_out_at and minutes_worked on the
	// matching row. Missing rows are a no-op.
	UpdateOnClockOut(ctx context.Context, userID string, date time.Time, clockOutAt time.Time, minutesWorked float64) error

	// UpsertLeave marks a date as LEAVE when a leave request covering it is
	// approved. An existing PRESENT row is kept untouched.
	UpsertLeave(ctx context.Context, userID string, date time.Time) error

	// ListByUserRange retrieves a user's rows within [from, to] inclusive,
	// ordered by date ascending.
	ListByUserRange(ctx context.Context, userID string, from, to time.Time) ([]DailyAttendance, error)

	// MarkAbsentForDate inserts ABSENT rows for active users with no row on
	// the date, skipping users whose weekoff falls on it. Returns the number
	// of rows written.
	MarkAbsentForDate(ctx context.Context, date time.Time) (int64, error)
}
