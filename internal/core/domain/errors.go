package domain

import "errors"

var (
	// ErrBadCredentials covers unknown username, wrong password and invalid
	// tokens alike, so callers cannot enumerate accounts.
	ErrBadCredentials = errors.New("incorrect username or password")

	ErrAccountLocked   = errors.New("account is locked")
	ErrAccountDisabled = errors.New("account is disabled")

	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user with username or email already exists")
	ErrUsernameTaken = errors.New("username is already taken")
	ErrEmailTaken    = errors.New("email is already in use")

	ErrInvalidToken = errors.New("invalid token")

	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("access forbidden")

	ErrTooManyAttempts = errors.New("too many failed login attempts")

	ErrInvalidRole = errors.New("invalid role")
)
