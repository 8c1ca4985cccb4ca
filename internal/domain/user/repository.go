package user

import (
	"context"
	"time"
)

// UserRepository defines data access methods for users.
type UserRepository interface {
	// Create inserts a new user. Returns ErrUserEmailExists on duplicate
	// email.
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (User, error)

	// Update applies mutable fields of a user
	Update(ctx context.Context, u User) (User, error)

	// SearchWithStatus retrieves users matching the filters along with their
	// reconciled status for the filter date. Runs as one bulk query over the
	// user population.
	SearchWithStatus(ctx context.Context, filters SearchFilters, notAllocatedProjectID string) ([]UserStatusRow, int64, error)

	// KPISummary aggregates headline counts for the date: active users,
	// present, on leave, absent, and users parked on the sentinel project.
	KPISummary(ctx context.Context, date time.Time, notAllocatedProjectID string) (KPICards, error)

	// ListReportingManagers retrieves active users someone reports to.
	ListReportingManagers(ctx context.Context) ([]ManagerOption, error)

	// ListProjectManagers retrieves active users owning at least one project.
	ListProjectManagers(ctx context.Context) ([]ManagerOption, error)
}
