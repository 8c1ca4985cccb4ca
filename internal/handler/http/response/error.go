package response

import (
	"errors"
	"net/http"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/auth"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/leave"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/project"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/session"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/user"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, "OAuth state mismatch", nil)
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Session domain errors
	case errors.Is(err, session.ErrAlreadyClockedIn):
		BadRequest(w, "An active session already exists", nil)
	case errors.Is(err, session.ErrNoActiveSession):
		BadRequest(w, "No active session to clock out of", nil)
	case errors.Is(err, session.ErrInvalidApprovalStatus):
		BadRequest(w, "Approval status must be PENDING, APPROVED or REJECTED", nil)
	case errors.Is(err, session.ErrSelfApprovalForbidden):
		Forbidden(w, "You cannot approve your own session")
	case errors.Is(err, session.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, session.ErrSessionAlreadyClosed):
		Conflict(w, "Session has already been clocked out")

	// Leave domain errors
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "end_date must not be before start_date", nil)
	case errors.Is(err, leave.ErrInvalidStatus):
		BadRequest(w, "Status must be APPROVED or REJECTED", nil)
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Leave request belongs to another user")
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyReviewed):
		Conflict(w, "Leave request already reviewed")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Project domain errors
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrMemberNotFound):
		NotFound(w, "Project membership not found")
	case errors.Is(err, project.ErrMembershipExists):
		Conflict(w, "User is already a member of this project")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
