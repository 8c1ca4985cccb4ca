package metrics

import (
	"context"
	"time"
)

// MetricsRepository defines data access methods for project daily metrics.
type MetricsRepository interface {
	// Recalculate rebuilds the row for (projectID, date) from approved
	// closed sessions.
	Recalculate(ctx context.Context, projectID string, date time.Time) error

	// GetByProjectAndDate retrieves the row for (projectID, date), or nil
	// when none exists.
	GetByProjectAndDate(ctx context.Context, projectID string, date time.Time) (*ProjectDailyMetric, error)
}
