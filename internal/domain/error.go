package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("caller identity missing")

	// Webhook processing errors
	ErrSignatureInvalid = errors.New("webhook signature invalid")
	ErrAlreadyApplied   = errors.New("event already applied")
	ErrMissingOwner     = errors.New("succeeded payment has no owning user")

	// Infrastructure errors
	ErrDownstreamUnavailable = errors.New("downstream provider unavailable")
	ErrOperationFailed       = errors.New("storage operation failed")
	ErrReadDatabaseRow       = errors.New("failed to read database row")
	ErrInvalidExecContext    = errors.New("invalid execution context for query")
)
