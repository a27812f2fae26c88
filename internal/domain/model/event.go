package model

import "time"

// Provider event types this service reacts to. Everything else is
// acknowledged and ignored.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// PaymentEvent is a provider webhook notification after signature
// verification. Identity is the provider-assigned ID: the same logical event
// may be delivered any number of times (at-least-once), so consumers must
// deduplicate on ID before applying side effects.
type PaymentEvent struct {
	ID         string
	Type       string
	Amount     int64 // minor currency units
	Currency   string
	Metadata   map[string]string
	OccurredAt time.Time
}

// Owner returns the user the payment is attributable to, from the metadata
// stamped at intent-creation time.
func (e *PaymentEvent) Owner() string {
	return e.Metadata["userId"]
}

// PlanName returns the raw plan metadata value; empty when unspecified.
func (e *PaymentEvent) PlanName() string {
	return e.Metadata["plan"]
}
