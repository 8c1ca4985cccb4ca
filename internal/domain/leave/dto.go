package leave

import (
	"time"

	"github.com/paneldesk/timetrack-backend-go/internal/pkg/validator"
)

var validRequestTypes = []string{
	string(TypeSickLeave),
	string(TypeFullDay),
	string(TypeHalfDay),
	string(TypeWFH),
	string(TypeOther),
}

type CreateLeaveRequest struct {
	ProjectID     *string `json:"project_id,omitempty"`
	RequestType   string  `json:"request_type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	StartTime     *string `json:"start_time,omitempty"`
	EndTime       *string `json:"end_time,omitempty"`
	Reason        *string `json:"reason,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`

	// Parsed during Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.RequestType, validRequestTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_type",
			Message: "request_type must be one of SICK_LEAVE, FULL-DAY, HALF-DAY, WFH, OTHER",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if start, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	} else {
		r.Start = start
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if end, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	} else {
		r.End = end
	}

	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.StartTime != nil && !validator.IsValidTimeOfDay(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if r.EndTime != nil && !validator.IsValidTimeOfDay(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if r.ProjectID != nil && !validator.IsValidUUID(*r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveRequest struct {
	RequestType   *string `json:"request_type,omitempty"`
	StartDate     *string `json:"start_date,omitempty"`
	EndDate       *string `json:"end_date,omitempty"`
	StartTime     *string `json:"start_time,omitempty"`
	EndTime       *string `json:"end_time,omitempty"`
	Reason        *string `json:"reason,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`

	Start *time.Time `json:"-"`
	End   *time.Time `json:"-"`
}

func (r *UpdateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.RequestType != nil && !validator.IsInSlice(*r.RequestType, validRequestTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_type",
			Message: "request_type must be one of SICK_LEAVE, FULL-DAY, HALF-DAY, WFH, OTHER",
		})
	}

	if r.StartDate != nil {
		if start, ok := validator.IsValidDate(*r.StartDate); ok {
			r.Start = &start
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.EndDate != nil {
		if end, ok := validator.IsValidDate(*r.EndDate); ok {
			r.End = &end
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Start != nil && r.End != nil && r.End.Before(*r.Start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewLeaveRequest struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment,omitempty"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be APPROVED or REJECTED",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveFilter struct {
	UserID      *string
	Status      *Status
	RequestType *RequestType
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	Limit       int
}

func (f *LeaveFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	UserName      *string `json:"user_name,omitempty"`
	ProjectID     *string `json:"project_id,omitempty"`
	RequestType   string  `json:"request_type"`
	Status        string  `json:"status"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	StartTime     *string `json:"start_time,omitempty"`
	EndTime       *string `json:"end_time,omitempty"`
	Reason        *string `json:"reason,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// ToResponse maps a leave request entity to its wire representation.
func ToResponse(r LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		UserName:      r.UserName,
		ProjectID:     r.ProjectID,
		RequestType:   string(r.RequestType),
		Status:        string(r.Status),
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Reason:        r.Reason,
		AttachmentURL: r.AttachmentURL,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
}
