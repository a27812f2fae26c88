package usecase

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"subscription-billing/internal/domain"
	"subscription-billing/internal/domain/model"
	"subscription-billing/internal/domain/ports/repository"
	"subscription-billing/internal/infra/logging"
	"subscription-billing/internal/infra/metrics"
)

// Compile-time check
var _ EntitlementUseCase = (*entitlementUC)(nil)

type EntitlementUseCase interface {
	// ApplySucceeded turns a verified succeeded-payment event into the
	// authoritative entitlement record. Redeliveries of the same event id
	// return domain.ErrAlreadyApplied without touching the record.
	ApplySucceeded(ctx context.Context, evt *model.PaymentEvent) error
	// RecordFailure notes a failed payment for observability. No state
	// mutation, no idempotency claim.
	RecordFailure(ctx context.Context, evt *model.PaymentEvent) error
	// Current returns the caller's entitlement record, domain.ErrNotFound
	// when none exists.
	Current(ctx context.Context, userID string) (*model.SubscriptionRecord, error)
}

type entitlementUC struct {
	subs  repository.SubscriptionRepository
	idem  repository.IdempotencyRepository
	cache repository.EventCache // optional, advisory only
	tm    repository.TransactionManager
	now   func() time.Time
	log   *zerolog.Logger
}

func NewEntitlementUseCase(
	subs repository.SubscriptionRepository,
	idem repository.IdempotencyRepository,
	cache repository.EventCache,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *entitlementUC {
	return &entitlementUC{subs: subs, idem: idem, cache: cache, tm: tm, now: time.Now, log: logger}
}

func (u *entitlementUC) ApplySucceeded(ctx context.Context, evt *model.PaymentEvent) error {
	ctx = logging.WithEventID(ctx, evt.ID)
	l := logging.With(ctx, u.log)

	userID := evt.Owner()
	if userID == "" {
		// A succeeded payment with no attributable user is a data-integrity
		// anomaly. Surface it loudly; redelivery cannot repair it.
		l.Error().Str("type", evt.Type).Msg("succeeded payment without userId metadata")
		metrics.IncWebhookEvent(evt.Type, "missing_owner")
		return domain.ErrMissingOwner
	}

	// Advisory fast path: a positive cache hit means the durable claim
	// already happened. Misses and cache errors fall through to the claim.
	if u.cache != nil {
		if seen, err := u.cache.Seen(ctx, evt.ID); err == nil && seen {
			metrics.IncWebhookEvent(evt.Type, "duplicate")
			return domain.ErrAlreadyApplied
		}
	}

	plan := model.PlanFromString(evt.PlanName())
	now := u.now()
	rec, err := model.NewSubscriptionRecord(userID, plan, evt.Amount, now)
	if err != nil {
		return err
	}

	// The idempotency claim and the entitlement write commit or roll back as
	// one unit, so a crash between them can never leave a claim without its
	// effect.
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		claimed, err := u.idem.Claim(ctx, tx, evt.ID, now)
		if err != nil {
			return err
		}
		if !claimed {
			return domain.ErrAlreadyApplied
		}
		return u.subs.Upsert(ctx, tx, rec)
	})
	if err == domain.ErrAlreadyApplied {
		metrics.IncWebhookEvent(evt.Type, "duplicate")
		return err
	}
	if err != nil {
		metrics.IncWebhookEvent(evt.Type, "error")
		l.Error().Err(err).Str("user_id", userID).Msg("entitlement update failed")
		return err
	}

	if u.cache != nil {
		// Best-effort mark; the durable claim already protects correctness.
		_ = u.cache.MarkApplied(ctx, evt.ID)
	}

	metrics.IncWebhookEvent(evt.Type, "applied")
	metrics.IncEntitlementUpdate(string(plan))
	metrics.IncPayment("succeeded")
	metrics.AddPaymentRevenue(evt.Currency, evt.Amount)
	l.Info().
		Str("user_id", userID).
		Str("plan", string(plan)).
		Time("end_date", rec.EndDate).
		Msg("subscription entitlement updated")
	return nil
}

func (u *entitlementUC) RecordFailure(ctx context.Context, evt *model.PaymentEvent) error {
	metrics.IncWebhookEvent(evt.Type, "recorded")
	metrics.IncPayment("failed")
	logging.With(logging.WithEventID(ctx, evt.ID), u.log).Warn().
		Str("user_id", evt.Owner()).
		Int64("amount", evt.Amount).
		Msg("payment failed")
	return nil
}

func (u *entitlementUC) Current(ctx context.Context, userID string) (*model.SubscriptionRecord, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return u.subs.FindByUserID(ctx, nil, userID)
}
