package payment

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	"subscription-billing/internal/domain"
	"subscription-billing/internal/domain/model"
	"subscription-billing/internal/domain/ports/adapter"
)

var _ adapter.WebhookVerifier = (*StripeWebhookVerifier)(nil)

// StripeWebhookVerifier authenticates webhook deliveries with Stripe's
// timestamped HMAC scheme. Verification always runs over the raw request
// bytes; tolerance bounds how stale a signature timestamp may be.
type StripeWebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

func NewStripeWebhookVerifier(secret string, tolerance time.Duration) (*StripeWebhookVerifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("webhook signing secret is required")
	}
	if tolerance <= 0 {
		tolerance = 5 * time.Minute
	}
	return &StripeWebhookVerifier{secret: secret, tolerance: tolerance}, nil
}

func (v *StripeWebhookVerifier) VerifyEvent(rawBody []byte, signatureHeader string) (*model.PaymentEvent, error) {
	if len(rawBody) == 0 || signatureHeader == "" {
		return nil, domain.ErrSignatureInvalid
	}

	event, err := webhook.ConstructEventWithTolerance(rawBody, signatureHeader, v.secret, v.tolerance)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSignatureInvalid, err)
	}

	evt := &model.PaymentEvent{
		ID:         event.ID,
		Type:       string(event.Type),
		OccurredAt: time.Unix(event.Created, 0),
	}

	// Only payment-intent payloads carry fields we act on; other types pass
	// through with just id and type so the dispatcher can ignore them.
	if strings.HasPrefix(evt.Type, "payment_intent.") {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("decode payment intent payload: %w", err)
		}
		evt.Amount = pi.Amount
		evt.Currency = string(pi.Currency)
		evt.Metadata = pi.Metadata
	}
	if evt.Metadata == nil {
		evt.Metadata = map[string]string{}
	}
	return evt, nil
}
