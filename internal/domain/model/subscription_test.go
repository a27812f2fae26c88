//go:build !integration

package model

import (
	"testing"
	"time"

	"subscription-billing/internal/domain"
)

func TestMajorUnitsTruncatesTowardZero(t *testing.T) {
	cases := []struct {
		minor int64
		want  int64
	}{
		{2999, 29},
		{100, 1},
		{99, 0},
		{2900, 29},
		{0, 0},
	}
	for _, tc := range cases {
		if got := MajorUnits(tc.minor); got != tc.want {
			t.Errorf("MajorUnits(%d) = %d, want %d", tc.minor, got, tc.want)
		}
	}
}

func TestNewSubscriptionRecord(t *testing.T) {
	paidAt := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	rec, err := NewSubscriptionRecord("u1", PlanMonthly, 2999, paidAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Status != SubscriptionStatusActive {
		t.Errorf("status = %s, want active", rec.Status)
	}
	if !rec.StartDate.Equal(paidAt) || !rec.LastPaymentDate.Equal(paidAt) {
		t.Errorf("start/last payment dates not set to confirmation instant")
	}
	if want := paidAt.AddDate(0, 1, 0); !rec.EndDate.Equal(want) {
		t.Errorf("end date = %s, want %s", rec.EndDate, want)
	}
	if rec.LastPaymentAmount != 29 {
		t.Errorf("amount = %d, want 29", rec.LastPaymentAmount)
	}

	if _, err := NewSubscriptionRecord("", PlanMonthly, 2999, paidAt); err != domain.ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument for empty user, got %v", err)
	}
}

func TestIsEntitledWindowHalfOpen(t *testing.T) {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	rec, _ := NewSubscriptionRecord("u1", PlanMonthly, 2999, start)

	if !rec.IsEntitled(start) {
		t.Error("start instant should be entitled")
	}
	if !rec.IsEntitled(rec.EndDate.Add(-time.Second)) {
		t.Error("instant just before end should be entitled")
	}
	if rec.IsEntitled(rec.EndDate) {
		t.Error("end instant should not be entitled")
	}
	if rec.IsEntitled(start.Add(-time.Second)) {
		t.Error("instant before start should not be entitled")
	}

	rec.Status = SubscriptionStatusPastDue
	if rec.IsEntitled(start) {
		t.Error("past_due record should not be entitled")
	}
}
