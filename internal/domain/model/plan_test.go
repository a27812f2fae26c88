//go:build !integration

package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestEntitlementEnd(t *testing.T) {
	cases := []struct {
		name string
		plan Plan
		ref  time.Time
		want time.Time
	}{
		{"monthly advances one month", PlanMonthly, date(2025, time.March, 15), date(2025, time.April, 15)},
		{"quarterly advances three months", PlanQuarterly, date(2025, time.March, 15), date(2025, time.June, 15)},
		{"annual advances one year", PlanAnnual, date(2025, time.March, 15), date(2026, time.March, 15)},
		{"monthly across year boundary", PlanMonthly, date(2025, time.December, 10), date(2026, time.January, 10)},
		{"quarterly across year boundary", PlanQuarterly, date(2025, time.November, 30), date(2026, time.February, 28)},
		{"jan 31 clamps to feb 28", PlanMonthly, date(2025, time.January, 31), date(2025, time.February, 28)},
		{"jan 31 clamps to feb 29 in leap year", PlanMonthly, date(2024, time.January, 31), date(2024, time.February, 29)},
		{"may 31 clamps to jun 30", PlanMonthly, date(2025, time.May, 31), date(2025, time.June, 30)},
		{"feb 29 annual clamps to feb 28", PlanAnnual, date(2024, time.February, 29), date(2025, time.February, 28)},
		{"annual from leap-safe day keeps day", PlanAnnual, date(2024, time.February, 28), date(2025, time.February, 28)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EntitlementEnd(tc.plan, tc.ref)
			if !got.Equal(tc.want) {
				t.Fatalf("EntitlementEnd(%s, %s) = %s, want %s", tc.plan, tc.ref, got, tc.want)
			}
		})
	}
}

func TestEntitlementEndPreservesClockAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	ref := time.Date(2025, time.January, 31, 23, 59, 58, 7, loc)
	got := EntitlementEnd(PlanMonthly, ref)

	if got.Location() != loc {
		t.Errorf("location changed: %v", got.Location())
	}
	h, m, s := got.Clock()
	if h != 23 || m != 59 || s != 58 || got.Nanosecond() != 7 {
		t.Errorf("clock changed: %s", got)
	}
}

func TestEntitlementEndDoesNotMutateInput(t *testing.T) {
	ref := date(2025, time.January, 31)
	before := ref
	_ = EntitlementEnd(PlanQuarterly, ref)
	if !ref.Equal(before) {
		t.Fatal("reference instant was mutated")
	}
}

func TestPlanFromString(t *testing.T) {
	cases := []struct {
		in   string
		want Plan
	}{
		{"monthly", PlanMonthly},
		{"quarterly", PlanQuarterly},
		{"annual", PlanAnnual},
		{"premium", PlanMonthly},
		{"", PlanMonthly},
		{"weekly", PlanMonthly},
	}
	for _, tc := range cases {
		if got := PlanFromString(tc.in); got != tc.want {
			t.Errorf("PlanFromString(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestUnrecognizedPlanBehavesAsMonthly(t *testing.T) {
	ref := date(2025, time.July, 4)
	if got, want := EntitlementEnd(Plan("gold"), ref), EntitlementEnd(PlanMonthly, ref); !got.Equal(want) {
		t.Fatalf("unknown plan = %s, monthly = %s", got, want)
	}
}
