package repository

import (
	"context"
	"time"
)

// IdempotencyRepository records which provider event ids have been applied.
// Rows are never deleted here; retention is an operational concern.
type IdempotencyRepository interface {
	// Claim atomically marks eventID as applied. It returns true exactly once
	// per event id, no matter how many concurrent deliveries race on it; every
	// other caller sees false with a nil error.
	Claim(ctx context.Context, tx Tx, eventID string, at time.Time) (bool, error)
}

// EventCache is an advisory duplicate-delivery cache in front of the durable
// claim. A positive answer short-circuits redeliveries cheaply; a negative or
// failed lookup proves nothing and must fall through to Claim.
type EventCache interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	MarkApplied(ctx context.Context, eventID string) error
}
