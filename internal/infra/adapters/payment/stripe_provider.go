package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v83"

	"subscription-billing/internal/domain/ports/adapter"
)

var _ adapter.PaymentProvider = (*StripeProvider)(nil)

// StripeProvider creates payment intents against the Stripe API.
type StripeProvider struct {
	client *stripe.Client
}

func NewStripeProvider(apiKey string) (*StripeProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("stripe api key is required")
	}
	return &StripeProvider{client: stripe.NewClient(apiKey)}, nil
}

func (p *StripeProvider) Name() string { return "stripe" }

// CreateIntent registers the charge attempt with Stripe. Automatic payment
// method negotiation is always on; the caller only ever sees the client
// secret.
func (p *StripeProvider) CreateIntent(ctx context.Context, req adapter.IntentRequest) (string, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
