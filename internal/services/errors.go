package services

import "errors"

// Domain errors surfaced by the services. Handlers match these with
// errors.Is to pick a response status; anything else is an internal error.
var (
	ErrUsernameTaken  = errors.New("username already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrBadCredentials = errors.New("password mismatch")
	ErrRoleMismatch   = errors.New("admin flag does not match user role")
)
