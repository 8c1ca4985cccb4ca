package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/attendance"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/user"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	u.id, u.email, u.name, u.password_hash, u.role, u.work_role,
	u.is_active, u.default_shift_id, u.rpm_user_id, u.weekoffs,
	u.quality_rating, u.doj, u.dol, u.created_at, u.updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.WorkRole,
		&u.IsActive, &u.DefaultShiftID, &u.RPMUserID, &u.Weekoffs,
		&u.QualityRating, &u.DOJ, &u.DOL, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			email, name, password_hash, role, work_role,
			is_active, default_shift_id, rpm_user_id, weekoffs, doj
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.Email,
		u.Name,
		u.PasswordHash,
		u.Role,
		u.WorkRole,
		u.IsActive,
		u.DefaultShiftID,
		u.RPMUserID,
		u.Weekoffs,
		u.DOJ,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + userColumns + `, rpm.name
		FROM users u
		LEFT JOIN users rpm ON rpm.id = u.rpm_user_id
		WHERE u.id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.WorkRole,
		&u.IsActive, &u.DefaultShiftID, &u.RPMUserID, &u.Weekoffs,
		&u.QualityRating, &u.DOJ, &u.DOL, &u.CreatedAt, &u.UpdatedAt,
		&u.RPMName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + userColumns + `
		FROM users u
		WHERE u.email = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// Update implements user.UserRepository.
func (r *userRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users u
		SET name = $2,
			role = $3,
			work_role = $4,
			is_active = $5,
			default_shift_id = $6,
			rpm_user_id = $7,
			weekoffs = $8,
			quality_rating = $9,
			doj = $10,
			dol = $11,
			updated_at = NOW()
		WHERE u.id = $1
		RETURNING` + userColumns

	updated, err := scanUser(q.QueryRow(ctx, query,
		u.ID,
		u.Name,
		u.Role,
		u.WorkRole,
		u.IsActive,
		u.DefaultShiftID,
		u.RPMUserID,
		u.Weekoffs,
		u.QualityRating,
		u.DOJ,
		u.DOL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return updated, nil
}

// SearchWithStatus implements user.UserRepository.
//
// One bulk query reconciles status for every matching user: a lateral
// subquery folds that user's attendance rows for the date by explicit rank,
// another checks approved leave coverage, and two more derive allocation
// facts. The CASE at the top applies the precedence contract: approved
// leave wins unless a PRESENT attendance row exists.
func (r *userRepository) SearchWithStatus(ctx context.Context, filters user.SearchFilters, notAllocatedProjectID string) ([]user.UserStatusRow, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filters.Name != nil {
		where += fmt.Sprintf(" AND u.name ILIKE $%d", argIdx)
		args = append(args, "%"+*filters.Name+"%")
		argIdx++
	}
	if filters.Email != nil {
		where += fmt.Sprintf(" AND u.email ILIKE $%d", argIdx)
		args = append(args, "%"+*filters.Email+"%")
		argIdx++
	}
	if filters.WorkRole != nil {
		where += fmt.Sprintf(" AND u.work_role = $%d", argIdx)
		args = append(args, *filters.WorkRole)
		argIdx++
	}
	if filters.IsActive != nil {
		where += fmt.Sprintf(" AND u.is_active = $%d", argIdx)
		args = append(args, *filters.IsActive)
		argIdx++
	}

	dateArg := argIdx
	args = append(args, filters.Date)
	argIdx++

	// NULL when no sentinel project is configured; the comparison then yields
	// NULL and the outer COALESCE resolves it to FALSE.
	var sentinel *string
	if notAllocatedProjectID != "" {
		sentinel = &notAllocatedProjectID
	}
	sentinelArg := argIdx
	args = append(args, sentinel)
	argIdx++

	query := fmt.Sprintf(`
		SELECT
			u.id, u.email, u.name, u.role, u.work_role, u.is_active,
			u.rpm_user_id, rpm.name AS rpm_name,
			CASE
				WHEN lv.has_leave AND COALESCE(att.status, '') <> 'PRESENT' THEN 'LEAVE'
				WHEN att.status IS NOT NULL THEN att.status
				ELSE 'UNKNOWN'
			END AS today_status,
			COALESCE(open_s.is_not_allocated, FALSE) AS is_not_allocated,
			COALESCE(mem.cnt, 0) AS allocated_projects
		FROM users u
		LEFT JOIN users rpm ON rpm.id = u.rpm_user_id
		LEFT JOIN LATERAL (
			SELECT a.status
			FROM attendance_daily a
			WHERE a.user_id = u.id
			  AND a.attendance_date = $%[1]d
			ORDER BY CASE a.status
				WHEN 'PRESENT' THEN 3
				WHEN 'LEAVE' THEN 2
				WHEN 'ABSENT' THEN 1
				ELSE 0
			END DESC
			LIMIT 1
		) att ON TRUE
		LEFT JOIN LATERAL (
			SELECT EXISTS (
				SELECT 1
				FROM leave_requests l
				WHERE l.user_id = u.id
				  AND l.status = 'APPROVED'
				  AND l.request_type <> 'WFH'
				  AND l.start_date <= $%[1]d
				  AND l.end_date >= $%[1]d
			) AS has_leave
		) lv ON TRUE
		LEFT JOIN LATERAL (
			SELECT (s.project_id = $%[2]d::uuid) AS is_not_allocated
			FROM clock_sessions s
			WHERE s.user_id = u.id
			  AND s.clock_out_at IS NULL
			LIMIT 1
		) open_s ON TRUE
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS cnt
			FROM project_members m
			WHERE m.user_id = u.id
			  AND m.is_active = TRUE
		) mem ON TRUE
		%[3]s
	`, dateArg, sentinelArg, where)

	if filters.Status != nil {
		query = fmt.Sprintf(`SELECT * FROM (%s) ranked WHERE ranked.today_status = $%d`, query, argIdx)
		args = append(args, string(*filters.Status))
		argIdx++
	}
	if filters.Allocated != nil {
		op := ">"
		if !*filters.Allocated {
			op = "="
		}
		query = fmt.Sprintf(`SELECT * FROM (%s) alloc WHERE alloc.allocated_projects %s 0`, query, op)
	}

	// Total reflects every filter, including the reconciled-status ones.
	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM (%s) counted", query)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query = fmt.Sprintf("SELECT * FROM (%s) paged ORDER BY paged.name ASC LIMIT $%d OFFSET $%d", query, argIdx, argIdx+1)
	args = append(args, filters.Limit, (filters.Page-1)*filters.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var results []user.UserStatusRow
	for rows.Next() {
		var row user.UserStatusRow
		var status string
		err := rows.Scan(
			&row.ID, &row.Email, &row.Name, &row.Role, &row.WorkRole, &row.IsActive,
			&row.RPMUserID, &row.RPMName,
			&status,
			&row.IsNotAllocated,
			&row.AllocatedProjects,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user status row: %w", err)
		}
		row.TodayStatus = attendance.Status(status)
		results = append(results, row)
	}

	return results, total, rows.Err()
}

// KPISummary implements user.UserRepository.
//
// Present and leave counts fold the day's attendance rows per user with the
// same rank order the search uses, so a user with both a LEAVE and a PRESENT
// row counts once, as present.
func (r *userRepository) KPISummary(ctx context.Context, date time.Time, notAllocatedProjectID string) (user.KPICards, error) {
	q := GetQuerier(ctx, r.db)

	var sentinel *string
	if notAllocatedProjectID != "" {
		sentinel = &notAllocatedProjectID
	}

	query := `
		SELECT
			COUNT(*) AS total_active,
			COUNT(*) FILTER (WHERE att.status = 'PRESENT') AS present_today,
			COUNT(*) FILTER (WHERE att.status = 'LEAVE') AS on_leave_today,
			COUNT(*) FILTER (WHERE att.status = 'ABSENT') AS absent_today,
			COUNT(*) FILTER (WHERE COALESCE(open_s.is_not_allocated, FALSE)) AS not_allocated
		FROM users u
		LEFT JOIN LATERAL (
			SELECT a.status
			FROM attendance_daily a
			WHERE a.user_id = u.id
			  AND a.attendance_date = $1
			ORDER BY CASE a.status
				WHEN 'PRESENT' THEN 3
				WHEN 'LEAVE' THEN 2
				WHEN 'ABSENT' THEN 1
				ELSE 0
			END DESC
			LIMIT 1
		) att ON TRUE
		LEFT JOIN LATERAL (
			SELECT (s.project_id = $2::uuid) AS is_not_allocated
			FROM clock_sessions s
			WHERE s.user_id = u.id
			  AND s.clock_out_at IS NULL
			LIMIT 1
		) open_s ON TRUE
		WHERE u.is_active = TRUE
	`

	var cards user.KPICards
	err := q.QueryRow(ctx, query, date, sentinel).Scan(
		&cards.TotalActive,
		&cards.PresentToday,
		&cards.OnLeaveToday,
		&cards.AbsentToday,
		&cards.NotAllocated,
	)
	if err != nil {
		return user.KPICards{}, fmt.Errorf("failed to aggregate kpi summary: %w", err)
	}

	return cards, nil
}

// ListReportingManagers implements user.UserRepository.
func (r *userRepository) ListReportingManagers(ctx context.Context) ([]user.ManagerOption, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT rpm.id, rpm.name, rpm.email
		FROM users u
		JOIN users rpm ON rpm.id = u.rpm_user_id
		WHERE rpm.is_active = TRUE
		ORDER BY rpm.name ASC
	`

	return r.listManagerOptions(ctx, q, query)
}

// ListProjectManagers implements user.UserRepository.
func (r *userRepository) ListProjectManagers(ctx context.Context) ([]user.ManagerOption, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT u.id, u.name, u.email
		FROM users u
		JOIN project_owners po ON po.user_id = u.id
		WHERE u.is_active = TRUE
		ORDER BY u.name ASC
	`

	return r.listManagerOptions(ctx, q, query)
}

func (r *userRepository) listManagerOptions(ctx context.Context, q database.Querier, query string) ([]user.ManagerOption, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	defer rows.Close()

	var options []user.ManagerOption
	for rows.Next() {
		var opt user.ManagerOption
		if err := rows.Scan(&opt.ID, &opt.Name, &opt.Email); err != nil {
			return nil, fmt.Errorf("failed to scan manager option: %w", err)
		}
		options = append(options, opt)
	}

	return options, rows.Err()
}
