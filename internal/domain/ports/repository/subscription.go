package repository

import (
	"context"

	"subscription-billing/internal/domain/model"
)

// SubscriptionRepository persists entitlement records keyed by user id.
type SubscriptionRepository interface {
	// Upsert merge-writes the record: listed fields are replaced, any other
	// columns on the row are left untouched. Last writer wins per field.
	Upsert(ctx context.Context, tx Tx, rec *model.SubscriptionRecord) error
	// FindByUserID returns domain.ErrNotFound when the user has no record,
	// which callers treat as "no entitlement".
	FindByUserID(ctx context.Context, tx Tx, userID string) (*model.SubscriptionRecord, error)
}
