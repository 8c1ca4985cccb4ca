package user

import (
	"time"

	"github.com/paneldesk/timetrack-backend-go/internal/pkg/validator"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/attendance"
)

type CreateUserRequest struct {
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	Password       string   `json:"password"`
	Role           string   `json:"role"`
	WorkRole       *string  `json:"work_role,omitempty"`
	DefaultShiftID *string  `json:"default_shift_id,omitempty"`
	RPMUserID      *string  `json:"rpm_user_id,omitempty"`
	Weekoffs       []string `json:"weekoffs,omitempty"`
	DOJ            *string  `json:"doj,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be ADMIN, MANAGER or USER",
		})
	}

	for _, day := range r.Weekoffs {
		if !validator.IsInSlice(day, ValidWeekdays) {
			errs = append(errs, validator.ValidationError{
				Field:   "weekoffs",
				Message: "weekoffs entries must be one of MON..SUN",
			})
			break
		}
	}

	if r.DOJ != nil {
		if _, ok := validator.IsValidDate(*r.DOJ); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "doj",
				Message: "doj must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateUserRequest struct {
	Name           *string   `json:"name,omitempty"`
	Role           *string   `json:"role,omitempty"`
	WorkRole       *string   `json:"work_role,omitempty"`
	IsActive       *bool     `json:"is_active,omitempty"`
	DefaultShiftID *string   `json:"default_shift_id,omitempty"`
	RPMUserID      *string   `json:"rpm_user_id,omitempty"`
	Weekoffs       *[]string `json:"weekoffs,omitempty"`
	QualityRating  *float64  `json:"quality_rating,omitempty"`
	DOJ            *string   `json:"doj,omitempty"`
	DOL            *string   `json:"dol,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be ADMIN, MANAGER or USER",
		})
	}

	if r.Weekoffs != nil {
		for _, day := range *r.Weekoffs {
			if !validator.IsInSlice(day, ValidWeekdays) {
				errs = append(errs, validator.ValidationError{
					Field:   "weekoffs",
					Message: "weekoffs entries must be one of MON..SUN",
				})
				break
			}
		}
	}

	if r.QualityRating != nil && (*r.QualityRating < 0 || *r.QualityRating > 5) {
		errs = append(errs, validator.ValidationError{
			Field:   "quality_rating",
			Message: "quality_rating must be between 0 and 5",
		})
	}

	if r.DOJ != nil {
		if _, ok := validator.IsValidDate(*r.DOJ); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "doj",
				Message: "doj must be in YYYY-MM-DD format",
			})
		}
	}

	if r.DOL != nil {
		if _, ok := validator.IsValidDate(*r.DOL); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dol",
				Message: "dol must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SearchFilters narrows the admin user search. Date defaults to today when
// status reconciliation is requested.
type SearchFilters struct {
	Name      *string
	Email     *string
	WorkRole  *string
	IsActive  *bool
	Allocated *bool
	Status    *attendance.Status
	Date      *time.Time
	Page      int
	Limit     int
}

func (f *SearchFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

// UserStatusRow is one row of the admin search listing: the user plus their
// reconciled status for the target date.
type UserStatusRow struct {
	ID                string            `json:"id"`
	Email             string            `json:"email"`
	Name              string            `json:"name"`
	Role              string            `json:"role"`
	WorkRole          *string           `json:"work_role,omitempty"`
	IsActive          bool              `json:"is_active"`
	RPMUserID         *string           `json:"rpm_user_id,omitempty"`
	RPMName           *string           `json:"rpm_name,omitempty"`
	TodayStatus       attendance.Status `json:"today_status"`
	IsNotAllocated    bool              `json:"is_not_allocated"`
	AllocatedProjects int               `json:"allocated_projects"`
}

type UpdateWeekoffsRequest struct {
	Weekoffs []string `json:"weekoffs"`
}

func (r *UpdateWeekoffsRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, day := range r.Weekoffs {
		if !validator.IsInSlice(day, ValidWeekdays) {
			errs = append(errs, validator.ValidationError{
				Field:   "weekoffs",
				Message: "weekoffs entries must be one of MON..SUN",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// KPICards is the admin dashboard headline: population counts for a date.
type KPICards struct {
	TotalActive  int64 `json:"total_active"`
	PresentToday int64 `json:"present_today"`
	OnLeaveToday int64 `json:"on_leave_today"`
	AbsentToday  int64 `json:"absent_today"`
	NotAllocated int64 `json:"not_allocated"`
}

// ManagerOption is a compact user reference for manager pickers.
type ManagerOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BulkUpdateItem struct {
	UserID string            `json:"user_id"`
	Fields UpdateUserRequest `json:"fields"`
}

type BulkUpdateRequest struct {
	Items []BulkUpdateItem `json:"items"`
}

func (r *BulkUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Items) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for _, item := range r.Items {
		if !validator.IsValidUUID(item.UserID) {
			errs = append(errs, validator.ValidationError{
				Field:   "items",
				Message: "every item user_id must be a valid UUID",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkUpdateFailure struct {
	UserID string `json:"user_id"`
	Error  string `json:"error"`
}

// BulkUpdateResult reports per-item outcomes; one item's failure never
// aborts the rest of the batch.
type BulkUpdateResult struct {
	UpdatedCount int                 `json:"updated_count"`
	FailedCount  int                 `json:"failed_count"`
	Failures     []BulkUpdateFailure `json:"failures"`
}

type UserResponse struct {
	ID            string   `json:"id"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	WorkRole      *string  `json:"work_role,omitempty"`
	IsActive      bool     `json:"is_active"`
	RPMUserID     *string  `json:"rpm_user_id,omitempty"`
	RPMName       *string  `json:"rpm_name,omitempty"`
	Weekoffs      []string `json:"weekoffs"`
	QualityRating *float64 `json:"quality_rating,omitempty"`
	DOJ           *string  `json:"doj,omitempty"`
	DOL           *string  `json:"dol,omitempty"`
}

// ToResponse maps a user entity to its wire representation.
func ToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          string(u.Role),
		WorkRole:      u.WorkRole,
		IsActive:      u.IsActive,
		RPMUserID:     u.RPMUserID,
		RPMName:       u.RPMName,
		Weekoffs:      u.Weekoffs,
		QualityRating: u.QualityRating,
	}
	if u.DOJ != nil {
		doj := u.DOJ.Format("2006-01-02")
		resp.DOJ = &doj
	}
	if u.DOL != nil {
		dol := u.DOL.Format("2006-01-02")
		resp.DOL = &dol
	}
	return resp
}
