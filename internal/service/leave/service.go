package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/attendance"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/leave"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/project"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/session"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/user"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/database"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/email"
	"github.com/paneldesk/timetrack-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRepository
	attendance.AttendanceRepository
	user.UserRepository
	sessionRepo  session.SessionRepository
	projectRepo  project.ProjectRepository
	emailService email.EmailService
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRepository,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	sessionRepo session.SessionRepository,
	projectRepo project.ProjectRepository,
	emailService email.EmailService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                   db,
		LeaveRepository:      leaveRepo,
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		sessionRepo:          sessionRepo,
		projectRepo:          projectRepo,
		emailService:         emailService,
	}
}

func claimsFromContext(ctx context.Context) (userID string, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}
	role, _ = claims["role"].(string)

	return userID, role, nil
}

// Create implements leave.LeaveService.
func (l *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	created, err := l.LeaveRepository.Create(ctx, leave.LeaveRequest{
		UserID:        userID,
		ProjectID:     req.ProjectID,
		RequestType:   leave.RequestType(req.RequestType),
		Status:        leave.StatusPending,
		StartDate:     req.Start,
		EndDate:       req.End,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Reason:        req.Reason,
		AttachmentURL: req.AttachmentURL,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	go l.notifyLeaveCreated(userID, created)

	return leave.ToResponse(created), nil
}

// Get implements leave.LeaveService.
func (l *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveResponse, error) {
	userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	existing, err := l.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if existing.UserID != userID && user.Role(role) != user.RoleAdmin {
		return leave.LeaveResponse{}, leave.ErrNotRequestOwner
	}

	return leave.ToResponse(existing), nil
}

// Update implements leave.LeaveService.
func (l *LeaveServiceImpl) Update(ctx context.Context, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	existing, err := l.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if existing.UserID != userID {
		return leave.LeaveResponse{}, leave.ErrNotRequestOwner
	}
	if existing.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrAlreadyReviewed
	}

	if req.RequestType != nil {
		existing.RequestType = leave.RequestType(*req.RequestType)
	}
	if req.Start != nil {
		existing.StartDate = *req.Start
	}
	if req.End != nil {
		existing.EndDate = *req.End
	}
	if existing.EndDate.Before(existing.StartDate) {
		return leave.LeaveResponse{}, leave.ErrInvalidDateRange
	}
	if req.StartTime != nil {
		existing.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		existing.EndTime = req.EndTime
	}
	if req.Reason != nil {
		existing.Reason = req.Reason
	}
	if req.AttachmentURL != nil {
		existing.AttachmentURL = req.AttachmentURL
	}

	updated, err := l.LeaveRepository.Update(ctx, existing)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return leave.ToResponse(updated), nil
}

// Delete implements leave.LeaveService.
func (l *LeaveServiceImpl) Delete(ctx context.Context, id string) error {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := l.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return leave.ErrNotRequestOwner
	}
	if existing.Status != leave.StatusPending {
		return leave.ErrAlreadyReviewed
	}

	return l.LeaveRepository.Delete(ctx, id)
}

// ListMine implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMine(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveResponse, int64, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter.Normalize()

	requests, total, err := l.LeaveRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}

	return responses, total, nil
}

// ListAll implements leave.LeaveService.
func (l *LeaveServiceImpl) ListAll(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveResponse, int64, error) {
	filter.Normalize()

	requests, total, err := l.LeaveRepository.ListAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}

	return responses, total, nil
}

// Review implements leave.LeaveService.
//
// Approval marks every covered day as LEAVE in the daily attendance table,
// inside the same transaction as the status change. Days already recorded
// PRESENT are left alone.
func (l *LeaveServiceImpl) Review(ctx context.Context, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	reviewerID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	existing, err := l.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if existing.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrAlreadyReviewed
	}

	status := leave.Status(req.Status)

	var reviewed leave.LeaveRequest
	err = postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		reviewed, err = l.LeaveRepository.UpdateStatus(txCtx, id, status, reviewerID)
		if err != nil {
			return err
		}

		if status == leave.StatusApproved && reviewed.RequestType.CountsAsLeave() {
			for d := reviewed.StartDate; !d.After(reviewed.EndDate); d = d.AddDate(0, 0, 1) {
				if err := l.AttendanceRepository.UpsertLeave(txCtx, reviewed.UserID, d); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return leave.ToResponse(reviewed), nil
}

// notifyLeaveCreated emails the requester's reporting manager and the owner
// of the requester's project about a new pending request. Best-effort:
// failures are logged and swallowed.
func (l *LeaveServiceImpl) notifyLeaveCreated(requesterID string, r leave.LeaveRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	requester, err := l.UserRepository.GetByID(ctx, requesterID)
	if err != nil {
		slog.Warn("Leave request notification skipped: requester lookup failed",
			"user_id", requesterID, "error", err)
		return
	}

	// email -> display name, deduplicating the RPM when they also own the
	// project.
	recipients := map[string]string{}

	if requester.RPMUserID != nil {
		approver, err := l.UserRepository.GetByID(ctx, *requester.RPMUserID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				slog.Info("Leave request notification: reporting manager not found",
					"user_id", requesterID, "rpm_user_id", *requester.RPMUserID)
			} else {
				slog.Warn("Leave request notification: approver lookup failed",
					"rpm_user_id", *requester.RPMUserID, "error", err)
			}
		} else {
			recipients[approver.Email] = approver.Name
		}
	}

	if projectID := l.resolveNotificationProject(ctx, requesterID, r); projectID != nil {
		owner, err := l.projectRepo.GetOwner(ctx, *projectID)
		if err != nil {
			if errors.Is(err, project.ErrOwnerNotFound) {
				slog.Info("Leave request notification: project has no owner",
					"project_id", *projectID)
			} else {
				slog.Warn("Leave request notification: owner lookup failed",
					"project_id", *projectID, "error", err)
			}
		} else {
			recipients[owner.UserEmail] = owner.UserName
		}
	}

	delete(recipients, requester.Email)
	if len(recipients) == 0 {
		slog.Info("Leave request notification skipped: no recipients",
			"user_id", requesterID, "request_id", r.ID)
		return
	}

	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	for addr, name := range recipients {
		err := l.emailService.SendLeaveRequestCreated(
			addr,
			name,
			requester.Name,
			string(r.RequestType),
			r.StartDate.Format("2006-01-02"),
			r.EndDate.Format("2006-01-02"),
			reason,
		)
		if err != nil {
			slog.Error("Leave request notification failed",
				"request_id", r.ID,
				"recipient", addr,
				"error", err,
			)
		}
	}
}

// resolveNotificationProject picks the project whose owner hears about the
// request: the open session's project, else the most recent session's, else
// the project named on the request, else the latest active membership.
func (l *LeaveServiceImpl) resolveNotificationProject(ctx context.Context, userID string, r leave.LeaveRequest) *string {
	if active, err := l.sessionRepo.GetActiveByUser(ctx, userID); err == nil && active != nil {
		return &active.ProjectID
	}
	if last, err := l.sessionRepo.GetLastByUser(ctx, userID); err == nil && last != nil {
		return &last.ProjectID
	}
	if r.ProjectID != nil {
		return r.ProjectID
	}
	if memberships, err := l.projectRepo.ListMembershipsByUser(ctx, userID); err == nil && len(memberships) > 0 {
		return &memberships[0].ProjectID
	}
	return nil
}
