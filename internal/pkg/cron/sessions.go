package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/attendance"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/session"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/database"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/timeutil"
	"github.com/paneldesk/timetrack-backend-go/internal/repository/postgresql"
)

type SessionJobs struct {
	sessionRepo    session.SessionRepository
	attendanceRepo attendance.AttendanceRepository
	clock          *timeutil.Clock
	db             *database.DB
}

func NewSessionJobs(
	sessionRepo session.SessionRepository,
	attendanceRepo attendance.AttendanceRepository,
	clock *timeutil.Clock,
	db *database.DB,
) *SessionJobs {
	return &SessionJobs{
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		clock:          clock,
		db:             db,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
	scheduler.AddDailyJob("mark_absent_users", 23, 30, j.clock.Location(), j.MarkAbsentUsers)
}

// MarkAbsentUsers writes ABSENT rows for active users who never clocked in
// today and hold no leave-derived row, excluding weekoff days.
func (j *SessionJobs) MarkAbsentUsers(ctx context.Context) error {
	today := j.clock.Today()

	count, err := j.attendanceRepo.MarkAbsentForDate(ctx, today)
	if err != nil {
		return err
	}

	slog.Info("Cron: marked absent users", "date", today.Format("2006-01-02"), "count", count)
	return nil
}

// AutoCloseStaleSessions closes open sessions older than the duration cap,
// exactly as if the user had clocked out at clock_in + cap.
func (j *SessionJobs) AutoCloseStaleSessions(ctx context.Context) error {
	cutoff := j.clock.NowLocal().Add(-session.MaxDuration)

	stale, err := j.sessionRepo.ListStale(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	slog.Info("Cron: closing stale sessions", "count", len(stale))

	for _, s := range stale {
		clockOutAt := s.ClockInAt.Add(session.MaxDuration)
		minutesWorked := session.MinutesBetween(s.ClockInAt, clockOutAt)

		err := postgresql.WithTransaction(ctx, j.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			if _, err := j.sessionRepo.Close(txCtx, s.ID, clockOutAt, minutesWorked, s.TasksCompleted, s.Notes); err != nil {
				return err
			}
			return j.attendanceRepo.UpdateOnClockOut(txCtx, s.UserID, s.SheetDate, clockOutAt, minutesWorked)
		})
		if err != nil {
			slog.Error("Cron: failed to close stale session", "session_id", s.ID, "error", err)
			continue
		}
	}

	return nil
}
