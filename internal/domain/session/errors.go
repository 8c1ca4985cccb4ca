package session

import "errors"

// Clock session domain errors
var (
	ErrAlreadyClockedIn      = errors.New("an active session already exists for this user")
	ErrNoActiveSession       = errors.New("no active session found for this user")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSelfApprovalForbidden = errors.New("users cannot approve their own sessions")
	ErrInvalidApprovalStatus = errors.New("approval status must be PENDING, APPROVED or REJECTED")
	ErrSessionAlreadyClosed  = errors.New("session has already been clocked out")
)
