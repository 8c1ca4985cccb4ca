package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/leave"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	l.id, l.user_id, l.project_id, l.request_type, l.status,
	l.start_date, l.end_date, l.start_time, l.end_time,
	l.reason, l.attachment_url, l.reviewed_by_user_id, l.reviewed_at,
	l.created_at, l.updated_at`

func scanLeave(row pgx.Row) (leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	err := row.Scan(
		&l.ID, &l.UserID, &l.ProjectID, &l.RequestType, &l.Status,
		&l.StartDate, &l.EndDate, &l.StartTime, &l.EndTime,
		&l.Reason, &l.AttachmentURL, &l.ReviewedByID, &l.ReviewedAt,
		&l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, l leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			user_id, project_id, request_type, status,
			start_date, end_date, start_time, end_time,
			reason, attachment_url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.UserID,
		l.ProjectID,
		l.RequestType,
		l.Status,
		l.StartDate,
		l.EndDate,
		l.StartTime,
		l.EndTime,
		l.Reason,
		l.AttachmentURL,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return l, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveColumns + `
		FROM leave_requests l
		WHERE l.id = $1
	`

	l, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return l, nil
}

// Update implements leave.LeaveRepository.
func (r *leaveRepository) Update(ctx context.Context, l leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests l
		SET request_type = $2,
			start_date = $3,
			end_date = $4,
			start_time = $5,
			end_time = $6,
			reason = $7,
			attachment_url = $8,
			updated_at = NOW()
		WHERE l.id = $1
		RETURNING` + leaveColumns

	updated, err := scanLeave(q.QueryRow(ctx, query,
		l.ID,
		l.RequestType,
		l.StartDate,
		l.EndDate,
		l.StartTime,
		l.EndTime,
		l.Reason,
		l.AttachmentURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return updated, nil
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepository) UpdateStatus(ctx context.Context, id string, status leave.Status, reviewedByID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests l
		SET status = $2,
			reviewed_by_user_id = $3,
			reviewed_at = NOW(),
			updated_at = NOW()
		WHERE l.id = $1
		RETURNING` + leaveColumns

	l, err := scanLeave(q.QueryRow(ctx, query, id, status, reviewedByID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	return l, nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

func buildLeaveWhere(filter leave.LeaveFilter, args []interface{}, argIdx int) (string, []interface{}, int) {
	where := ""

	if filter.Status != nil {
		where += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.RequestType != nil {
		where += fmt.Sprintf(" AND l.request_type = $%d", argIdx)
		args = append(args, *filter.RequestType)
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND l.end_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND l.start_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	return where, args, argIdx
}

// ListByUser implements leave.LeaveRepository.
func (r *leaveRepository) ListByUser(ctx context.Context, userID string, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{userID}
	where, args, argIdx := buildLeaveWhere(filter, args, 2)
	where = "WHERE l.user_id = $1" + where

	var total int64
	countQuery := "SELECT COUNT(*) FROM leave_requests l " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := `SELECT` + leaveColumns + `
		FROM leave_requests l
		` + where + fmt.Sprintf(`
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, l)
	}

	return requests, total, rows.Err()
}

// ListAll implements leave.LeaveRepository.
func (r *leaveRepository) ListAll(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{}
	argIdx := 1
	where := "WHERE 1=1"

	if filter.UserID != nil {
		where += fmt.Sprintf(" AND l.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	extra, args, argIdx := buildLeaveWhere(filter, args, argIdx)
	where += extra

	var total int64
	countQuery := "SELECT COUNT(*) FROM leave_requests l " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := `SELECT` + leaveColumns + `, u.name, u.email
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
		` + where + fmt.Sprintf(`
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var l leave.LeaveRequest
		err := rows.Scan(
			&l.ID, &l.UserID, &l.ProjectID, &l.RequestType, &l.Status,
			&l.StartDate, &l.EndDate, &l.StartTime, &l.EndTime,
			&l.Reason, &l.AttachmentURL, &l.ReviewedByID, &l.ReviewedAt,
			&l.CreatedAt, &l.UpdatedAt,
			&l.UserName, &l.UserEmail,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, l)
	}

	return requests, total, rows.Err()
}

// HasApprovedLeaveOn implements leave.LeaveRepository.
func (r *leaveRepository) HasApprovedLeaveOn(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests l
			WHERE l.user_id = $1
			  AND l.status = $2
			  AND l.start_date <= $3
			  AND l.end_date >= $3
			  AND l.request_type <> $4
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, userID, leave.StatusApproved, date, leave.TypeWFH).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return exists, nil
}
