package project

import (
	"context"
)

// ProjectRepository defines data access methods for projects, memberships
// and owners.
type ProjectRepository interface {
	// GetByID retrieves a project by ID
	GetByID(ctx context.Context, id string) (Project, error)

	// List retrieves active projects ordered by name
	List(ctx context.Context) ([]Project, error)

	// GetActiveMembership retrieves the user's active membership for a
	// project, or nil when none exists.
	GetActiveMembership(ctx context.Context, userID, projectID string) (*Membership, error)

	// CreateMembership inserts a membership row
	CreateMembership(ctx context.Context, m Membership) (Membership, error)

	// CountActiveMemberships returns the user's active membership count
	CountActiveMemberships(ctx context.Context, userID string) (int, error)

	// ListMembershipsByUser retrieves the user's active memberships with
	// project names joined.
	ListMembershipsByUser(ctx context.Context, userID string) ([]Membership, error)

	// DeactivateMembership closes a membership (assigned_to = now,
	// is_active = false).
	DeactivateMembership(ctx context.Context, id string) error

	// GetOwner retrieves the designated owner for a project. Returns
	// ErrOwnerNotFound when no owner is set.
	GetOwner(ctx context.Context, projectID string) (Owner, error)
}
