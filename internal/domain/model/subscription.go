package model

import (
	"time"

	"subscription-billing/internal/domain"
)

type SubscriptionStatus string

const (
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
)

// SubscriptionRecord is the durable entitlement for a single user, keyed by
// UserID. It is written only by the verified, deduplicated succeeded-payment
// path; client requests never mutate it directly.
type SubscriptionRecord struct {
	UserID            string
	Status            SubscriptionStatus
	Plan              Plan
	StartDate         time.Time
	EndDate           time.Time
	LastPaymentDate   time.Time
	LastPaymentAmount int64 // major currency units, see MajorUnits
}

// NewSubscriptionRecord builds the active entitlement produced by a confirmed
// payment. paidAt is the payment confirmation instant: the entitlement window
// is always [paidAt, EntitlementEnd(plan, paidAt)), never extended from a
// prior end date.
func NewSubscriptionRecord(userID string, plan Plan, amountMinor int64, paidAt time.Time) (*SubscriptionRecord, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &SubscriptionRecord{
		UserID:            userID,
		Status:            SubscriptionStatusActive,
		Plan:              plan,
		StartDate:         paidAt,
		EndDate:           EntitlementEnd(plan, paidAt),
		LastPaymentDate:   paidAt,
		LastPaymentAmount: MajorUnits(amountMinor),
	}, nil
}

// IsEntitled reports whether the record grants access at instant t.
// The window is half-open: EndDate itself is not entitled.
func (r *SubscriptionRecord) IsEntitled(t time.Time) bool {
	if r == nil || r.Status != SubscriptionStatusActive {
		return false
	}
	return !t.Before(r.StartDate) && t.Before(r.EndDate)
}

// MajorUnits converts minor currency units to major units using integer
// division, truncating toward zero (2999 -> 29). The fractional remainder is
// intentionally dropped; no floating point is involved.
func MajorUnits(amountMinor int64) int64 {
	return amountMinor / 100
}
