package adapter

import (
	"context"

	"subscription-billing/internal/domain/model"
)

// IntentRequest carries the provider-facing parameters for a payment intent.
// Metadata must already include the authoritative owner (userId); the
// provider echoes it back on webhook events.
type IntentRequest struct {
	Amount   int64 // minor currency units
	Currency string
	Metadata map[string]string
}

// PaymentProvider is the hex port for the external payment processor.
type PaymentProvider interface {
	Name() string
	// CreateIntent registers a charge attempt with the provider and returns
	// the client secret the payer needs to complete it. Nothing else from the
	// provider response is exposed.
	CreateIntent(ctx context.Context, req IntentRequest) (clientSecret string, err error)
}

// WebhookVerifier authenticates an inbound provider notification. rawBody
// must be the exact bytes as received: verification runs over the wire
// payload, and any re-serialization breaks the signature. Failures surface as
// domain.ErrSignatureInvalid.
type WebhookVerifier interface {
	VerifyEvent(rawBody []byte, signatureHeader string) (*model.PaymentEvent, error)
}
