package project

import (
	"time"
)

// DefaultWorkRole is assigned when a clock-in payload carries no work role
// during auto-allocation.
const DefaultWorkRole = "Panelist"

type Project struct {
	ID          string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Membership assigns a user to a project. Rows are created explicitly by an
// admin or implicitly by auto-allocation on clock-in.
type Membership struct {
	ID           string
	UserID       string
	ProjectID    string
	WorkRole     string
	AssignedFrom time.Time
	AssignedTo   *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Owner designates the manager notified on auto-allocation into a project.
type Owner struct {
	ProjectID string
	UserID    string

	// Joined for notification dispatch
	UserName  string
	UserEmail string
}
