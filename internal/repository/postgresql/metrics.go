package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/metrics"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/database"
)

type metricsRepository struct {
	db *database.DB
}

func NewMetricsRepository(db *database.DB) metrics.MetricsRepository {
	return &metricsRepository{db: db}
}

// Recalculate implements metrics.MetricsRepository.
//
// Rebuilds the (project, date) row from scratch out of approved closed
// sessions, so repeated triggers converge to the same totals.
func (m *metricsRepository) Recalculate(ctx context.Context, projectID string, date time.Time) error {
	q := GetQuerier(ctx, m.db)

	query := `
		INSERT INTO project_daily_metrics (project_id, metric_date, total_minutes, total_tasks, sessions_count, updated_at)
		SELECT $1, $2,
			   COALESCE(SUM(s.minutes_worked), 0),
			   COALESCE(SUM(s.tasks_completed), 0),
			   COUNT(*),
			   NOW()
		FROM clock_sessions s
		WHERE s.project_id = $1
		  AND s.sheet_date = $2
		  AND s.approval_status = 'APPROVED'
		  AND s.clock_out_at IS NOT NULL
		ON CONFLICT (project_id, metric_date) DO UPDATE
		SET total_minutes = EXCLUDED.total_minutes,
			total_tasks = EXCLUDED.total_tasks,
			sessions_count = EXCLUDED.sessions_count,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := q.Exec(ctx, query, projectID, date); err != nil {
		return fmt.Errorf("failed to recalculate project metrics: %w", err)
	}

	return nil
}

// GetByProjectAndDate implements metrics.MetricsRepository.
func (m *metricsRepository) GetByProjectAndDate(ctx context.Context, projectID string, date time.Time) (*metrics.ProjectDailyMetric, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		SELECT project_id, metric_date, total_minutes, total_tasks, sessions_count, updated_at
		FROM project_daily_metrics
		WHERE project_id = $1
		  AND metric_date = $2
	`

	var pm metrics.ProjectDailyMetric
	err := q.QueryRow(ctx, query, projectID, date).Scan(
		&pm.ProjectID, &pm.MetricDate, &pm.ApprovedMinutes, &pm.TasksCompleted, &pm.ApprovedSessions, &pm.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project metrics: %w", err)
	}

	return &pm, nil
}
