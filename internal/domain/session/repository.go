package session

import (
	"context"
	"time"
)

// SessionRepository defines data access methods for clock sessions.
type SessionRepository interface {
	// Create inserts a new open session. Returns ErrAlreadyClockedIn when an
	// active session already exists for the user; the at-most-one-active
	// invariant is enforced by a partial unique index, not application code.
	Create(ctx context.Context, s ClockSession) (ClockSession, error)

	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id string) (ClockSession, error)

	// GetActiveByUser retrieves the user's open session, or nil when none
	// exists.
	GetActiveByUser(ctx context.Context, userID string) (*ClockSession, error)

	// GetLastByUser retrieves the user's most recent session, open or
	// closed, or nil when the user never clocked in.
	GetLastByUser(ctx context.Context, userID string) (*ClockSession, error)

	// Close records clock-out fields on an open session
	Close(ctx context.Context, id string, clockOutAt time.Time, minutesWorked float64, tasksCompleted int, notes *string) (ClockSession, error)

	// UpdateApproval records a review decision on a session
	UpdateApproval(ctx context.Context, id string, status ApprovalStatus, approvedByID string, comment *string) (ClockSession, error)

	// ListByUserAndDate retrieves a user's sessions on a sheet date, newest
	// first.
	ListByUserAndDate(ctx context.Context, userID string, sheetDate time.Time) ([]ClockSession, error)

	// ListByUser retrieves a user's session history with filters and
	// pagination.
	ListByUser(ctx context.Context, userID string, filter HistoryFilter) ([]ClockSession, int64, error)

	// ListStale retrieves open sessions whose age exceeds the duration cap.
	ListStale(ctx context.Context, olderThan time.Time) ([]ClockSession, error)
}
