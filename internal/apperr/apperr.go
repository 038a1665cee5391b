// Package apperr defines the error taxonomy shared by services and handlers.
// Services return these sentinels (usually wrapped with context via %w);
// handlers map them to HTTP statuses with errors.Is.
package apperr

import "errors"

var (
	// ErrValidation marks malformed or contradictory input. Nothing was
	// written when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a reference to a transfer, entry, or account that
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrIntegrity marks a multi-step write that partially succeeded. With
	// every coordinator operation running inside one database transaction
	// this is residual only, but it is never silently downgraded: callers
	// log it loudly and tell the user to contact an administrator.
	ErrIntegrity = errors.New("ledger integrity violation")

	// ErrRateLimited tells the caller to retry after the current window.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrPermission marks a caller lacking the role an operation requires.
	ErrPermission = errors.New("permission denied")
)
