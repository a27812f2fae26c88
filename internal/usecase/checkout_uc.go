package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"subscription-billing/internal/domain"
	"subscription-billing/internal/domain/ports/adapter"
	"subscription-billing/internal/infra/logging"
	"subscription-billing/internal/infra/metrics"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

const defaultCurrency = "usd"

// IntentRequest is the caller-facing payload for starting a checkout. The
// owning identity is never part of it; it comes from the authenticated
// session.
type IntentRequest struct {
	Amount   int64 // minor currency units
	Currency string
	Metadata map[string]string
}

type CheckoutUseCase interface {
	// CreateIntent validates the request and registers a payment intent with
	// the provider, returning only the client secret.
	CreateIntent(ctx context.Context, callerID string, req IntentRequest) (string, error)
}

type checkoutUC struct {
	provider  adapter.PaymentProvider
	minCharge int64
	timeout   time.Duration
	log       *zerolog.Logger
}

func NewCheckoutUseCase(provider adapter.PaymentProvider, minCharge int64, timeout time.Duration, logger *zerolog.Logger) *checkoutUC {
	if minCharge <= 0 {
		minCharge = 100
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &checkoutUC{provider: provider, minCharge: minCharge, timeout: timeout, log: logger}
}

func (u *checkoutUC) CreateIntent(ctx context.Context, callerID string, req IntentRequest) (string, error) {
	if callerID == "" {
		return "", domain.ErrUnauthenticated
	}
	if req.Amount < u.minCharge {
		metrics.IncIntent("rejected")
		return "", fmt.Errorf("%w: amount must be at least %d minor units", domain.ErrInvalidArgument, u.minCharge)
	}

	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	// Copy the metadata and stamp the owner. The client-supplied userId key,
	// if any, loses: the entitlement owner is always the authenticated caller.
	meta := make(map[string]string, len(req.Metadata)+1)
	for k, v := range req.Metadata {
		meta[k] = v
	}
	meta["userId"] = callerID

	cctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	secret, err := u.provider.CreateIntent(cctx, adapter.IntentRequest{
		Amount:   req.Amount,
		Currency: currency,
		Metadata: meta,
	})
	if err != nil {
		metrics.IncIntent("provider_error")
		logging.With(ctx, u.log).Error().Err(err).
			Str("provider", u.provider.Name()).
			Int64("amount", req.Amount).
			Msg("payment intent creation failed")
		return "", fmt.Errorf("%w: %v", domain.ErrDownstreamUnavailable, err)
	}

	metrics.IncIntent("created")
	logging.With(ctx, u.log).Info().
		Str("provider", u.provider.Name()).
		Int64("amount", req.Amount).
		Str("currency", currency).
		Msg("payment intent created")
	return secret, nil
}
