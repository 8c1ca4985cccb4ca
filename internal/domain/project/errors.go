package project

import "errors"

// Project domain errors
var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrMembershipExists = errors.New("user is already a member of this project")
	ErrOwnerNotFound    = errors.New("project has no designated owner")
	ErrMemberNotFound   = errors.New("project membership not found")
)
