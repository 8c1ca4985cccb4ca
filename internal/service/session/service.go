package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/attendance"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/metrics"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/project"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/session"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/user"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/database"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/email"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/timeutil"
	"github.com/paneldesk/timetrack-backend-go/internal/repository/postgresql"
)

type SessionServiceImpl struct {
	db *database.DB
	session.SessionRepository
	attendance.AttendanceRepository
	project.ProjectRepository
	user.UserRepository
	metricsRepo  metrics.MetricsRepository
	emailService email.EmailService
	clock        *timeutil.Clock
}

func NewSessionService(
	db *database.DB,
	sessionRepo session.SessionRepository,
	attendanceRepo attendance.AttendanceRepository,
	projectRepo project.ProjectRepository,
	userRepo user.UserRepository,
	metricsRepo metrics.MetricsRepository,
	emailService email.EmailService,
	clock *timeutil.Clock,
) session.SessionService {
	return &SessionServiceImpl{
		db:                   db,
		SessionRepository:    sessionRepo,
		AttendanceRepository: attendanceRepo,
		ProjectRepository:    projectRepo,
		UserRepository:       userRepo,
		metricsRepo:          metricsRepo,
		emailService:         emailService,
		clock:                clock,
	}
}

func userIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// ClockIn implements session.SessionService.
func (s *SessionServiceImpl) ClockIn(ctx context.Context, req session.ClockInRequest) (session.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return session.SessionResponse{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return session.SessionResponse{}, err
	}

	clockInAt := s.clock.NowLocal()
	if req.ClockInTime != nil {
		clockInAt = req.ClockInTime.In(s.clock.Location())
	}
	sheetDate := s.clock.DateOf(clockInAt)

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return session.SessionResponse{}, err
	}

	workRole := project.DefaultWorkRole
	if req.WorkRole != nil && *req.WorkRole != "" {
		workRole = *req.WorkRole
	} else if u.WorkRole != nil && *u.WorkRole != "" {
		workRole = *u.WorkRole
	}

	var created session.ClockSession
	var allocated *project.Membership

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// Auto-allocate a membership before the session so the session's
		// project always references one for this user.
		membership, err := s.ProjectRepository.GetActiveMembership(txCtx, userID, req.ProjectID)
		if err != nil {
			return err
		}
		if membership == nil {
			m, err := s.ProjectRepository.CreateMembership(txCtx, project.Membership{
				UserID:       userID,
				ProjectID:    req.ProjectID,
				WorkRole:     workRole,
				AssignedFrom: sheetDate,
				IsActive:     true,
			})
			if err != nil {
				return err
			}
			allocated = &m
		}

		created, err = s.SessionRepository.Create(txCtx, session.ClockSession{
			UserID:         userID,
			ProjectID:      req.ProjectID,
			WorkRole:       workRole,
			ClockInAt:      clockInAt,
			SheetDate:      sheetDate,
			ApprovalStatus: session.ApprovalPending,
		})
		if err != nil {
			return err
		}

		return s.AttendanceRepository.UpsertOnClockIn(txCtx, userID, sheetDate, clockInAt, req.ProjectID, u.DefaultShiftID)
	})
	if err != nil {
		return session.SessionResponse{}, err
	}

	// Side effects run after commit so a notification outage can never fail
	// or roll back the clock-in.
	if allocated != nil {
		go s.notifyAutoAllocation(u, *allocated, clockInAt)
	}

	return session.ToResponse(created), nil
}

// ClockOut implements session.SessionService.
func (s *SessionServiceImpl) ClockOut(ctx context.Context, req session.ClockOutRequest) (session.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return session.SessionResponse{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return session.SessionResponse{}, err
	}

	active, err := s.SessionRepository.GetActiveByUser(ctx, userID)
	if err != nil {
		return session.SessionResponse{}, err
	}
	if active == nil {
		return session.SessionResponse{}, session.ErrNoActiveSession
	}

	clockOutAt := session.CappedClockOut(active.ClockInAt, s.clock.NowLocal())
	minutesWorked := session.MinutesBetween(active.ClockInAt, clockOutAt)

	var closed session.ClockSession
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		closed, err = s.SessionRepository.Close(txCtx, active.ID, clockOutAt, minutesWorked, req.TasksCompleted, req.Notes)
		if err != nil {
			return err
		}

		// The attendance row is matched by the session's sheet date, not
		// today; a session may cross midnight.
		return s.AttendanceRepository.UpdateOnClockOut(txCtx, userID, active.SheetDate, clockOutAt, minutesWorked)
	})
	if err != nil {
		return session.SessionResponse{}, err
	}

	return session.ToResponse(closed), nil
}

// GetActiveSession implements session.SessionService.
func (s *SessionServiceImpl) GetActiveSession(ctx context.Context) (*session.SessionResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.SessionRepository.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, nil
	}

	resp := session.ToResponse(*active)
	return &resp, nil
}

// GetHomeSnapshot implements session.SessionService.
func (s *SessionServiceImpl) GetHomeSnapshot(ctx context.Context) (session.HomeSnapshotResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return session.HomeSnapshotResponse{}, err
	}

	active, err := s.SessionRepository.GetActiveByUser(ctx, userID)
	if err != nil {
		return session.HomeSnapshotResponse{}, err
	}

	today, err := s.SessionRepository.ListByUserAndDate(ctx, userID, s.clock.Today())
	if err != nil {
		return session.HomeSnapshotResponse{}, err
	}

	snapshot := session.HomeSnapshotResponse{
		TodaySessions: make([]session.SessionResponse, 0, len(today)),
	}
	if active != nil {
		resp := session.ToResponse(*active)
		snapshot.ActiveSession = &resp
	}
	for _, sess := range today {
		snapshot.TodaySessions = append(snapshot.TodaySessions, session.ToResponse(sess))
	}

	return snapshot, nil
}

// GetHistory implements session.SessionService.
func (s *SessionServiceImpl) GetHistory(ctx context.Context, filter session.HistoryFilter) ([]session.SessionResponse, int64, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter.Normalize()

	sessions, total, err := s.SessionRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]session.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		responses = append(responses, session.ToResponse(sess))
	}

	return responses, total, nil
}

// GetAttendanceCalendar implements session.SessionService.
func (s *SessionServiceImpl) GetAttendanceCalendar(ctx context.Context, from, to time.Time) ([]attendance.DayResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	if to.IsZero() {
		to = s.clock.Today()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}

	rows, err := s.AttendanceRepository.ListByUserRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	days := make([]attendance.DayResponse, 0, len(rows))
	for _, row := range rows {
		days = append(days, attendance.ToDayResponse(row))
	}

	return days, nil
}

// Approve implements session.SessionService.
func (s *SessionServiceImpl) Approve(ctx context.Context, sessionID string, req session.ApproveRequest) (session.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return session.SessionResponse{}, err
	}

	approverID, err := userIDFromClaims(ctx)
	if err != nil {
		return session.SessionResponse{}, err
	}

	target, err := s.SessionRepository.GetByID(ctx, sessionID)
	if err != nil {
		return session.SessionResponse{}, err
	}

	// The self-approval check runs before status parsing so it holds for
	// every status value, valid or not.
	if target.UserID == approverID {
		return session.SessionResponse{}, session.ErrSelfApprovalForbidden
	}

	status := session.ApprovalStatus(req.Status)
	if !status.IsValid() {
		return session.SessionResponse{}, session.ErrInvalidApprovalStatus
	}

	updated, err := s.SessionRepository.UpdateApproval(ctx, sessionID, status, approverID, req.Comment)
	if err != nil {
		return session.SessionResponse{}, err
	}

	// Metrics recalculation is best-effort and runs after the approval is
	// committed; its failure is logged, never surfaced to the approver.
	if status == session.ApprovalApproved && updated.ClockOutAt != nil {
		go s.recalculateMetrics(updated.ProjectID, updated.SheetDate)
	}

	return session.ToResponse(updated), nil
}

func (s *SessionServiceImpl) recalculateMetrics(projectID string, sheetDate time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.metricsRepo.Recalculate(ctx, projectID, sheetDate); err != nil {
		slog.Error("Metrics recalculation failed",
			"project_id", projectID,
			"sheet_date", sheetDate.Format("2006-01-02"),
			"error", err,
		)
	}
}
