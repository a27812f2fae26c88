//go:build !integration

package usecase_test

import (
	"context"
	"testing"

	"subscription-billing/internal/domain/model"
	"subscription-billing/internal/usecase"
)

func TestWebhookUseCase_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should route succeeded events to the entitlement updater", func(t *testing.T) {
		deps := newEntitlementDeps()
		uc := usecase.NewWebhookUseCase(deps.build(), newTestLogger())

		if err := uc.Handle(ctx, succeededEvent("evt_1", "u1", "monthly", 2999)); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if deps.subs.upsertCount() != 1 {
			t.Error("succeeded event should write the entitlement")
		}
	})

	t.Run("should acknowledge failed payments without mutation", func(t *testing.T) {
		deps := newEntitlementDeps()
		uc := usecase.NewWebhookUseCase(deps.build(), newTestLogger())

		evt := &model.PaymentEvent{ID: "evt_2", Type: model.EventPaymentFailed, Amount: 2999}
		if err := uc.Handle(ctx, evt); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if deps.subs.upsertCount() != 0 || deps.idem.claimCount() != 0 {
			t.Error("failed event must not mutate state or claim idempotency")
		}
	})

	t.Run("should treat unknown event types as a no-op", func(t *testing.T) {
		deps := newEntitlementDeps()
		uc := usecase.NewWebhookUseCase(deps.build(), newTestLogger())

		evt := &model.PaymentEvent{ID: "evt_3", Type: "charge.refunded"}
		if err := uc.Handle(ctx, evt); err != nil {
			t.Fatalf("unknown types must never error, got: %v", err)
		}
		if deps.subs.upsertCount() != 0 {
			t.Error("unknown event must not mutate state")
		}
	})
}
