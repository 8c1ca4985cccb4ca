package leave

import (
	"context"
	"time"
)

// LeaveRepository defines data access methods for leave requests.
type LeaveRepository interface {
	// Create inserts a new leave request
	Create(ctx context.Context, r LeaveRequest) (LeaveRequest, error)

	// GetByID retrieves a leave request by ID
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Update applies mutable fields of a pending request
	Update(ctx context.Context, r LeaveRequest) (LeaveRequest, error)

	// UpdateStatus records a review decision
	UpdateStatus(ctx context.Context, id string, status Status, reviewedByID string) (LeaveRequest, error)

	// Delete removes a leave request
	Delete(ctx context.Context, id string) error

	// ListByUser retrieves a user's requests with filters and pagination
	ListByUser(ctx context.Context, userID string, filter LeaveFilter) ([]LeaveRequest, int64, error)

	// ListAll retrieves requests across users with filters and pagination
	// (admin)
	ListAll(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)

	// HasApprovedLeaveOn reports whether the user holds an approved,
	// leave-counting request covering the date.
	HasApprovedLeaveOn(ctx context.Context, userID string, date time.Time) (bool, error)
}
