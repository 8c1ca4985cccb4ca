package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/session"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/database"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) session.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = `
	s.id, s.user_id, s.project_id, s.work_role,
	s.clock_in_at, s.clock_out_at, s.sheet_date,
	s.tasks_completed, s.notes, s.minutes_worked,
	s.approval_status, s.approved_by_user_id, s.approved_at, s.approval_comment,
	s.created_at, s.updated_at`

func scanSession(row pgx.Row) (session.ClockSession, error) {
	var s session.ClockSession
	err := row.Scan(
		&s.ID, &s.UserID, &s.ProjectID, &s.WorkRole,
		&s.ClockInAt, &s.ClockOutAt, &s.SheetDate,
		&s.TasksCompleted, &s.Notes, &s.MinutesWorked,
		&s.ApprovalStatus, &s.ApprovedByID, &s.ApprovedAt, &s.ApprovalComment,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements session.SessionRepository.
func (r *sessionRepository) Create(ctx context.Context, s session.ClockSession) (session.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clock_sessions (
			user_id, project_id, work_role, clock_in_at, sheet_date, approval_status
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.UserID,
		s.ProjectID,
		s.WorkRole,
		s.ClockInAt,
		s.SheetDate,
		s.ApprovalStatus,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		// The partial unique index on (user_id) WHERE clock_out_at IS NULL
		// turns a double clock-in race into a constraint violation.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_clock_sessions_active_user" {
			return session.ClockSession{}, session.ErrAlreadyClockedIn
		}
		return session.ClockSession{}, fmt.Errorf("failed to create clock session: %w", err)
	}

	return s, nil
}

// GetByID implements session.SessionRepository.
func (r *sessionRepository) GetByID(ctx context.Context, id string) (session.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + sessionColumns + `
		FROM clock_sessions s
		WHERE s.id = $1
	`

	s, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.ClockSession{}, session.ErrSessionNotFound
		}
		return session.ClockSession{}, fmt.Errorf("failed to get clock session: %w", err)
	}

	return s, nil
}

// GetActiveByUser implements session.SessionRepository.
func (r *sessionRepository) GetActiveByUser(ctx context.Context, userID string) (*session.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + sessionColumns + `, p.name
		FROM clock_sessions s
		JOIN projects p ON p.id = s.project_id
		WHERE s.user_id = $1
		  AND s.clock_out_at IS NULL
		ORDER BY s.clock_in_at DESC
		LIMIT 1
	`

	var s session.ClockSession
	err := q.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.ProjectID, &s.WorkRole,
		&s.ClockInAt, &s.ClockOutAt, &s.SheetDate,
		&s.TasksCompleted, &s.Notes, &s.MinutesWorked,
		&s.ApprovalStatus, &s.ApprovedByID, &s.ApprovedAt, &s.ApprovalComment,
		&s.CreatedAt, &s.UpdatedAt,
		&s.ProjectName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no open session
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}

	return &s, nil
}

// GetLastByUser implements session.SessionRepository.
func (r *sessionRepository) GetLastByUser(ctx context.Context, userID string) (*session.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + sessionColumns + `
		FROM clock_sessions s
		WHERE s.user_id = $1
		ORDER BY s.clock_in_at DESC
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // user never clocked in
		}
		return nil, fmt.Errorf("failed to get last session: %w", err)
	}

	return &s, nil
}

// Close implements session.SessionRepository.
func (r *sessionRepository) Close(ctx context.Context, id string, clockOutAt time.Time, minutesWorked float64, tasksCompleted int, notes *string) (session.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clock_sessions s
		SET clock_out_at = $2,
			minutes_worked = $3,
			tasks_completed = $4,
			notes = $5,
			updated_at = NOW()
		WHERE s.id = $1
		  AND s.clock_out_at IS NULL
		RETURNING` + sessionColumns

	s, err := scanSession(q.QueryRow(ctx, query, id, clockOutAt, minutesWorked, tasksCompleted, notes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.ClockSession{}, session.ErrSessionAlreadyClosed
		}
		return session.ClockSession{}, fmt.Errorf("failed to close clock session: %w", err)
	}

	return s, nil
}

// UpdateApproval implements session.SessionRepository.
func (r *sessionRepository) UpdateApproval(ctx context.Context, id string, status session.ApprovalStatus, approvedByID string, comment *string) (session.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clock_sessions s
		SET approval_status = $2,
			approved_by_user_id = $3,
			approved_at = NOW(),
			approval_comment = $4,
			updated_at = NOW()
		WHERE s.id = $1
		RETURNING` + sessionColumns

	s, err := scanSession(q.QueryRow(ctx, query, id, status, approvedByID, comment))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.ClockSession{}, session.ErrSessionNotFound
		}
		return session.ClockSession{}, fmt.Errorf("failed to update session approval: %w", err)
	}

	return s, nil
}

// ListByUserAndDate implements session.SessionRepository.
func (r *sessionRepository) ListByUserAndDate(ctx context.Context, userID string, sheetDate time.Time) ([]session.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + sessionColumns + `, p.name
		FROM clock_sessions s
		JOIN projects p ON p.id = s.project_id
		WHERE s.user_id = $1
		  AND s.sheet_date = $2
		ORDER BY s.clock_in_at DESC
	`

	rows, err := q.Query(ctx, query, userID, sheetDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions by date: %w", err)
	}
	defer rows.Close()

	var sessions []session.ClockSession
	for rows.Next() {
		var s session.ClockSession
		err := rows.Scan(
			&s.ID, &s.UserID, &s.ProjectID, &s.WorkRole,
			&s.ClockInAt, &s.ClockOutAt, &s.SheetDate,
			&s.TasksCompleted, &s.Notes, &s.MinutesWorked,
			&s.ApprovalStatus, &s.ApprovedByID, &s.ApprovedAt, &s.ApprovalComment,
			&s.CreatedAt, &s.UpdatedAt,
			&s.ProjectName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// ListByUser implements session.SessionRepository.
func (r *sessionRepository) ListByUser(ctx context.Context, userID string, filter session.HistoryFilter) ([]session.ClockSession, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE s.user_id = $1"
	args := []interface{}{userID}
	argIdx := 2

	if filter.ProjectID != nil {
		where += fmt.Sprintf(" AND s.project_id = $%d", argIdx)
		args = append(args, *filter.ProjectID)
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND s.sheet_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND s.sheet_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM clock_sessions s " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	query := `SELECT` + sessionColumns + `, p.name
		FROM clock_sessions s
		JOIN projects p ON p.id = s.project_id
		` + where + fmt.Sprintf(`
		ORDER BY s.clock_in_at DESC
		LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list session history: %w", err)
	}
	defer rows.Close()

	var sessions []session.ClockSession
	for rows.Next() {
		var s session.ClockSession
		err := rows.Scan(
			&s.ID, &s.UserID, &s.ProjectID, &s.WorkRole,
			&s.ClockInAt, &s.ClockOutAt, &s.SheetDate,
			&s.TasksCompleted, &s.Notes, &s.MinutesWorked,
			&s.ApprovalStatus, &s.ApprovedByID, &s.ApprovedAt, &s.ApprovalComment,
			&s.CreatedAt, &s.UpdatedAt,
			&s.ProjectName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan clock session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, total, rows.Err()
}

// ListStale implements session.SessionRepository.
func (r *sessionRepository) ListStale(ctx context.Context, olderThan time.Time) ([]session.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + sessionColumns + `
		FROM clock_sessions s
		WHERE s.clock_out_at IS NULL
		  AND s.clock_in_at < $1
		ORDER BY s.clock_in_at ASC
	`

	rows, err := q.Query(ctx, query, olderThan)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.ClockSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}
