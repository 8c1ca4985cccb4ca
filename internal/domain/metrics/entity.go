package metrics

import (
	"time"
)

// ProjectDailyMetric aggregates approved work for a project on a date. Rows
// are recomputed whenever a session covering (project_id, metric_date) is
// approved.
type ProjectDailyMetric struct {
	ProjectID        string
	MetricDate       time.Time
	ApprovedSessions int
	ApprovedMinutes  float64
	TasksCompleted   int
	UpdatedAt        time.Time
}
