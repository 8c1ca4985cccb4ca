package leave

import (
	"context"
)

// LeaveService defines business logic for the leave request workflow
type LeaveService interface {
	// Create submits a leave request for the authenticated user
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)

	// Get retrieves a single request; owners see their own, admins see any
	Get(ctx context.Context, id string) (LeaveResponse, error)

	// Update mutates the caller's pending request
	Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error)

	// Delete removes the caller's pending request
	Delete(ctx context.Context, id string) error

	// ListMine retrieves the caller's requests
	ListMine(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, int64, error)

	// ListAll retrieves requests across users (admin)
	ListAll(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, int64, error)

	// Review approves or rejects a request (admin), marking covered days as
	// LEAVE on approval
	Review(ctx context.Context, id string, req ReviewLeaveRequest) (LeaveResponse, error)
}
