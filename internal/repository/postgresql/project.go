package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/project"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/database"
)

type projectRepository struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepository{db: db}
}

// GetByID implements project.ProjectRepository.
func (r *projectRepository) GetByID(ctx context.Context, id string) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var p project.Project
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get project: %w", err)
	}

	return p, nil
}

// List implements project.ProjectRepository.
func (r *projectRepository) List(ctx context.Context) ([]project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM projects
		WHERE is_active = TRUE
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		var p project.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// GetActiveMembership implements project.ProjectRepository.
func (r *projectRepository) GetActiveMembership(ctx context.Context, userID, projectID string) (*project.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, project_id, work_role, assigned_from, assigned_to, is_active, created_at, updated_at
		FROM project_members
		WHERE user_id = $1
		  AND project_id = $2
		  AND is_active = TRUE
		LIMIT 1
	`

	var m project.Membership
	err := q.QueryRow(ctx, query, userID, projectID).Scan(
		&m.ID, &m.UserID, &m.ProjectID, &m.WorkRole,
		&m.AssignedFrom, &m.AssignedTo, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // not a member
		}
		return nil, fmt.Errorf("failed to get project membership: %w", err)
	}

	return &m, nil
}

// CreateMembership implements project.ProjectRepository.
func (r *projectRepository) CreateMembership(ctx context.Context, m project.Membership) (project.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO project_members (
			user_id, project_id, work_role, assigned_from, assigned_to, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		m.UserID,
		m.ProjectID,
		m.WorkRole,
		m.AssignedFrom,
		m.AssignedTo,
		m.IsActive,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		return project.Membership{}, fmt.Errorf("failed to create project membership: %w", err)
	}

	return m, nil
}

// CountActiveMemberships implements project.ProjectRepository.
func (r *projectRepository) CountActiveMemberships(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM project_members WHERE user_id = $1 AND is_active = TRUE`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count memberships: %w", err)
	}

	return count, nil
}

// ListMembershipsByUser implements project.ProjectRepository.
func (r *projectRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]project.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.user_id, m.project_id, m.work_role, m.assigned_from, m.assigned_to, m.is_active, m.created_at, m.updated_at
		FROM project_members m
		WHERE m.user_id = $1
		  AND m.is_active = TRUE
		ORDER BY m.assigned_from DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []project.Membership
	for rows.Next() {
		var m project.Membership
		err := rows.Scan(
			&m.ID, &m.UserID, &m.ProjectID, &m.WorkRole,
			&m.AssignedFrom, &m.AssignedTo, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

// DeactivateMembership implements project.ProjectRepository.
func (r *projectRepository) DeactivateMembership(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE project_members SET is_active = FALSE, assigned_to = NOW(), updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrMemberNotFound
	}

	return nil
}

// GetOwner implements project.ProjectRepository.
func (r *projectRepository) GetOwner(ctx context.Context, projectID string) (project.Owner, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT o.project_id, o.user_id, u.name, u.email
		FROM project_owners o
		JOIN users u ON u.id = o.user_id
		WHERE o.project_id = $1
		LIMIT 1
	`

	var o project.Owner
	err := q.QueryRow(ctx, query, projectID).Scan(&o.ProjectID, &o.UserID, &o.UserName, &o.UserEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Owner{}, project.ErrOwnerNotFound
		}
		return project.Owner{}, fmt.Errorf("failed to get project owner: %w", err)
	}

	return o, nil
}
