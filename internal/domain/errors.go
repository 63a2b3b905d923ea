package domain

import "errors"

// Business errors are sentinels so the HTTP layer can map them to status
// codes with errors.Is regardless of how much context has been wrapped on.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateKey       = errors.New("already exists")
	ErrConflict           = errors.New("operation conflicts with current state")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAlreadyCheckedIn   = errors.New("check-in already done")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
