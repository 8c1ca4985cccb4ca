package session

import (
	"time"

	"github.com/paneldesk/timetrack-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	ProjectID string  `json:"project_id"`
	WorkRole  *string `json:"work_role,omitempty"`
	ClockInAt *string `json:"clock_in_at,omitempty"`

	// Parsed from ClockInAt during Validate
	ClockInTime *time.Time `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	} else if !validator.IsValidUUID(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id must be a valid UUID",
		})
	}

	if r.ClockInAt != nil {
		t, ok := validator.IsValidDateTime(*r.ClockInAt)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in_at",
				Message: "clock_in_at must be an RFC3339 timestamp",
			})
		} else {
			r.ClockInTime = &t
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	TasksCompleted int     `json:"tasks_completed"`
	Notes          *string `json:"notes,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TasksCompleted < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "tasks_completed",
			Message: "tasks_completed must not be negative",
		})
	}

	if r.Notes != nil && len(*r.Notes) > 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveRequest struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment,omitempty"`
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryFilter struct {
	ProjectID *string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

func (f *HistoryFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type SessionResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	ProjectID       string   `json:"project_id"`
	ProjectName     *string  `json:"project_name,omitempty"`
	WorkRole        string   `json:"work_role"`
	ClockInAt       string   `json:"clock_in_at"`
	ClockOutAt      *string  `json:"clock_out_at,omitempty"`
	SheetDate       string   `json:"sheet_date"`
	TasksCompleted  int      `json:"tasks_completed"`
	Notes           *string  `json:"notes,omitempty"`
	MinutesWorked   *float64 `json:"minutes_worked,omitempty"`
	ApprovalStatus  string   `json:"approval_status"`
	ApprovedByID    *string  `json:"approved_by_id,omitempty"`
	ApprovalComment *string  `json:"approval_comment,omitempty"`
}

// ToResponse maps a session entity to its wire representation.
func ToResponse(s ClockSession) SessionResponse {
	resp := SessionResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		ProjectID:       s.ProjectID,
		ProjectName:     s.ProjectName,
		WorkRole:        s.WorkRole,
		ClockInAt:       s.ClockInAt.Format(time.RFC3339),
		SheetDate:       s.SheetDate.Format("2006-01-02"),
		TasksCompleted:  s.TasksCompleted,
		Notes:           s.Notes,
		MinutesWorked:   s.MinutesWorked,
		ApprovalStatus:  string(s.ApprovalStatus),
		ApprovedByID:    s.ApprovedByID,
		ApprovalComment: s.ApprovalComment,
	}
	if s.ClockOutAt != nil {
		out := s.ClockOutAt.Format(time.RFC3339)
		resp.ClockOutAt = &out
	}
	return resp
}

type HomeSnapshotResponse struct {
	ActiveSession *SessionResponse  `json:"active_session"`
	TodaySessions []SessionResponse `json:"today_sessions"`
}
