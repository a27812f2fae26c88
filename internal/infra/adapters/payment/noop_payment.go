package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"subscription-billing/internal/domain/ports/adapter"
)

var _ adapter.PaymentProvider = (*NoopProvider)(nil)

// NoopProvider stands in for Stripe in dev mode: it fabricates client
// secrets without any network call.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider { return &NoopProvider{} }

func (p *NoopProvider) Name() string { return "noop" }

func (p *NoopProvider) CreateIntent(ctx context.Context, req adapter.IntentRequest) (string, error) {
	return fmt.Sprintf("pi_noop_secret_%s", uuid.NewString()), nil
}
