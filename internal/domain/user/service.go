package user

import (
	"context"
)

// UserService defines business logic for user administration
type UserService interface {
	// Create registers a new user (admin)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)

	// GetByID retrieves a single user
	GetByID(ctx context.Context, id string) (UserResponse, error)

	// Update applies mutable fields of a user (admin)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)

	// Search lists users with reconciled statuses for the filter date
	// (admin)
	Search(ctx context.Context, filters SearchFilters) ([]UserStatusRow, int64, error)

	// BulkUpdate applies per-user updates independently, collecting
	// per-item failures
	BulkUpdate(ctx context.Context, req BulkUpdateRequest) (BulkUpdateResult, error)

	// UpdateWeekoffs replaces the authenticated user's own weekoff days
	UpdateWeekoffs(ctx context.Context, req UpdateWeekoffsRequest) (UserResponse, error)

	// Deactivate marks a user inactive and stamps their leaving date (admin)
	Deactivate(ctx context.Context, id string) error

	// KPICards aggregates headline counts for the admin dashboard
	KPICards(ctx context.Context) (KPICards, error)

	// ReportingManagers lists users available as reporting managers
	ReportingManagers(ctx context.Context) ([]ManagerOption, error)

	// ProjectManagers lists users owning at least one project
	ProjectManagers(ctx context.Context) ([]ManagerOption, error)
}
