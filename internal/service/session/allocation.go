package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/project"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/user"
)

// notifyAutoAllocation emails the project's designated owner after a user is
// implicitly added to a project by clocking into it. Every failure here is
// logged and swallowed; the clock-in has already committed.
func (s *SessionServiceImpl) notifyAutoAllocation(member user.User, m project.Membership, allocatedAt time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, err := s.ProjectRepository.GetByID(ctx, m.ProjectID)
	if err != nil {
		slog.Warn("Auto-allocation notification skipped: project lookup failed",
			"project_id", m.ProjectID, "error", err)
		return
	}

	owner, err := s.ProjectRepository.GetOwner(ctx, m.ProjectID)
	if err != nil {
		if errors.Is(err, project.ErrOwnerNotFound) {
			slog.Info("Auto-allocation notification skipped: project has no owner",
				"project_id", m.ProjectID, "project_name", p.Name)
		} else {
			slog.Warn("Auto-allocation notification skipped: owner lookup failed",
				"project_id", m.ProjectID, "error", err)
		}
		return
	}

	err = s.emailService.SendAutoAllocation(
		owner.UserEmail,
		owner.UserName,
		member.Name,
		member.Email,
		p.Name,
		allocatedAt.Format("2006-01-02 15:04"),
	)
	if err != nil {
		slog.Error("Auto-allocation notification failed",
			"project_id", m.ProjectID,
			"member_id", member.ID,
			"owner_email", owner.UserEmail,
			"error", err,
		)
	}
}
