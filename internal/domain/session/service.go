package session

import (
	"context"
	"time"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/attendance"
)

// SessionService defines business logic for the clock session lifecycle
type SessionService interface {
	// ClockIn opens a session for the authenticated user, auto-allocating a
	// project membership when needed
	ClockIn(ctx context.Context, req ClockInRequest) (SessionResponse, error)

	// ClockOut closes the user's active session, applying the duration cap
	ClockOut(ctx context.Context, req ClockOutRequest) (SessionResponse, error)

	// GetActiveSession retrieves the user's open session, nil when none
	GetActiveSession(ctx context.Context) (*SessionResponse, error)

	// GetHomeSnapshot retrieves the active session plus today's sessions
	GetHomeSnapshot(ctx context.Context) (HomeSnapshotResponse, error)

	// GetHistory retrieves the user's session history with filters
	GetHistory(ctx context.Context, filter HistoryFilter) ([]SessionResponse, int64, error)

	// GetAttendanceCalendar retrieves the user's daily attendance rows in
	// [from, to]; a zero range defaults to the trailing 30 days
	GetAttendanceCalendar(ctx context.Context, from, to time.Time) ([]attendance.DayResponse, error)

	// Approve records a review decision on a session (manager/admin)
	Approve(ctx context.Context, sessionID string, req ApproveRequest) (SessionResponse, error)
}
