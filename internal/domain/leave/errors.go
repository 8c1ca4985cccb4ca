package leave

import "errors"

// Leave request domain errors
var (
	ErrRequestNotFound  = errors.New("leave request not found")
	ErrNotRequestOwner  = errors.New("leave request belongs to another user")
	ErrAlreadyReviewed  = errors.New("leave request has already been approved or rejected")
	ErrInvalidStatus    = errors.New("status must be PENDING, APPROVED or REJECTED")
	ErrInvalidDateRange = errors.New("end_date must not be before start_date")
)
