package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"subscription-billing/internal/domain/model"
	"subscription-billing/internal/infra/logging"
	"subscription-billing/internal/infra/metrics"
)

// Compile-time check
var _ WebhookUseCase = (*webhookUC)(nil)

type WebhookUseCase interface {
	// Handle routes a verified event to its handler. Unknown event types are
	// acknowledged and ignored: the provider disables endpoints that keep
	// failing, so unrecognized-but-harmless events must never error.
	Handle(ctx context.Context, evt *model.PaymentEvent) error
}

type eventHandler func(ctx context.Context, evt *model.PaymentEvent) error

type webhookUC struct {
	handlers map[string]eventHandler
	log      *zerolog.Logger
}

// NewWebhookUseCase wires the closed event-type table. Adding a new event
// kind means adding one entry here.
func NewWebhookUseCase(ent EntitlementUseCase, logger *zerolog.Logger) *webhookUC {
	return &webhookUC{
		handlers: map[string]eventHandler{
			model.EventPaymentSucceeded: ent.ApplySucceeded,
			model.EventPaymentFailed:    ent.RecordFailure,
		},
		log: logger,
	}
}

func (u *webhookUC) Handle(ctx context.Context, evt *model.PaymentEvent) error {
	h, ok := u.handlers[evt.Type]
	if !ok {
		metrics.IncWebhookEvent(evt.Type, "ignored")
		logging.With(logging.WithEventID(ctx, evt.ID), u.log).Debug().
			Str("type", evt.Type).
			Msg("ignoring unhandled event type")
		return nil
	}
	return h(ctx, evt)
}
