package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/attendance"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, attendance_date, status,
			   first_clock_in_at, last_clock_out_at, minutes_worked,
			   project_id, shift_id, source, created_at, updated_at
		FROM attendance_daily
		WHERE user_id = $1
		  AND attendance_date = $2
		LIMIT 1
	`

	var d attendance.DailyAttendance
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&d.ID, &d.UserID, &d.AttendanceDate, &d.Status,
		&d.FirstClockInAt, &d.LastClockOutAt, &d.MinutesWorked,
		&d.ProjectID, &d.ShiftID, &d.Source, &d.CreatedAt, &d.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no row for this day yet
		}
		return nil, fmt.Errorf("failed to get daily attendance: %w", err)
	}

	return &d, nil
}

// UpsertOnClockIn implements attendance.AttendanceRepository.
//
// A fresh row starts as PRESENT. On conflict the stored status is kept
// unless it is UNKNOWN or ABSENT; first_clock_in_at, project_id and source
// are refreshed either way so re-clock-ins track the latest project.
func (a *attendanceRepository) UpsertOnClockIn(ctx context.Context, userID string, date time.Time, clockInAt time.Time, projectID string, shiftID *string) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_daily (
			user_id, attendance_date, status, first_clock_in_at, project_id, shift_id, source
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT ON CONSTRAINT uq_attendance_daily_user_date DO UPDATE
		SET status = CASE
				WHEN attendance_daily.status IN ($8, $9) THEN EXCLUDED.status
				ELSE attendance_daily.status
			END,
			first_clock_in_at = EXCLUDED.first_clock_in_at,
			project_id = EXCLUDED.project_id,
			source = EXCLUDED.source,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		userID, date, attendance.StatusPresent, clockInAt, projectID, shiftID, attendance.SourceClockIn,
		attendance.StatusUnknown, attendance.StatusAbsent,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance on clock-in: %w", err)
	}

	return nil
}

// UpdateOnClockOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateOnClockOut(ctx context.Context, userID string, date time.Time, clockOutAt time.Time, minutesWorked float64) error {
	q := GetQuerier(ctx, a.db)

	// No-op when the row is missing; sessions crossing midnight may close
	// against a sheet date the aggregator never saw.
	query := `
		UPDATE attendance_daily
		SET last_clock_out_at = $3,
			minutes_worked = $4,
			updated_at = NOW()
		WHERE user_id = $1
		  AND attendance_date = $2
	`

	_, err := q.Exec(ctx, query, userID, date, clockOutAt, minutesWorked)
	if err != nil {
		return fmt.Errorf("failed to update attendance on clock-out: %w", err)
	}

	return nil
}

// UpsertLeave implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertLeave(ctx context.Context, userID string, date time.Time) error {
	q := GetQuerier(ctx, a.db)

	// A recorded PRESENT day wins over an approved leave covering it.
	query := `
		INSERT INTO attendance_daily (
			user_id, attendance_date, status, source
		) VALUES (
			$1, $2, $3, $4
		)
		ON CONFLICT ON CONSTRAINT uq_attendance_daily_user_date DO UPDATE
		SET status = CASE
				WHEN attendance_daily.status = $5 THEN attendance_daily.status
				ELSE EXCLUDED.status
			END,
			source = CASE
				WHEN attendance_daily.status = $5 THEN attendance_daily.source
				ELSE EXCLUDED.source
			END,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		userID, date, attendance.StatusLeave, attendance.SourceLeave,
		attendance.StatusPresent,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance on leave approval: %w", err)
	}

	return nil
}

// MarkAbsentForDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) MarkAbsentForDate(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_daily (user_id, attendance_date, status, source)
		SELECT u.id, $1, $2, $3
		FROM users u
		WHERE u.is_active = TRUE
		  AND NOT EXISTS (
			SELECT 1 FROM attendance_daily a
			WHERE a.user_id = u.id AND a.attendance_date = $1
		  )
		  AND NOT (to_char($1::date, 'DY') = ANY (COALESCE(u.weekoffs, '{}')))
		ON CONFLICT ON CONSTRAINT uq_attendance_daily_user_date DO NOTHING
	`

	tag, err := q.Exec(ctx, query, date, attendance.StatusAbsent, attendance.SourceSweep)
	if err != nil {
		return 0, fmt.Errorf("failed to mark absent users: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListByUserRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, attendance_date, status,
			   first_clock_in_at, last_clock_out_at, minutes_worked,
			   project_id, shift_id, source, created_at, updated_at
		FROM attendance_daily
		WHERE user_id = $1
		  AND attendance_date BETWEEN $2 AND $3
		ORDER BY attendance_date ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyAttendance
	for rows.Next() {
		var d attendance.DailyAttendance
		err := rows.Scan(
			&d.ID, &d.UserID, &d.AttendanceDate, &d.Status,
			&d.FirstClockInAt, &d.LastClockOutAt, &d.MinutesWorked,
			&d.ProjectID, &d.ShiftID, &d.Source, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily attendance: %w", err)
		}
		records = append(records, d)
	}

	return records, rows.Err()
}
