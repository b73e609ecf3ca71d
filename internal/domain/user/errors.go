package user

import "errors"

// User domain errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailExists          = errors.New("email already registered")
	ErrMentorAccessRequired = errors.New("mentor access required")
	ErrAdminAccessRequired  = errors.New("admin access required")
)
