package models

import "errors"

// Common errors for account and task operations.
var (
	// Account errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account already exists")

	// Credential errors
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Task errors
	ErrTaskNotFound  = errors.New("task not found")
	ErrDuplicateTask = errors.New("task already exists")

	// ErrDirectoryUnavailable indicates the account directory's storage
	// failed. Retryable; callers must surface it as a server error and
	// never substitute a fabricated identity.
	ErrDirectoryUnavailable = errors.New("account directory unavailable")
)
