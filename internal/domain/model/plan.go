package model

import "time"

type Plan string

const (
	PlanMonthly   Plan = "monthly"
	PlanQuarterly Plan = "quarterly"
	PlanAnnual    Plan = "annual"
)

// planMonths maps each plan to its nominal duration in calendar months.
var planMonths = map[Plan]int{
	PlanMonthly:   1,
	PlanQuarterly: 3,
	PlanAnnual:    12,
}

// PlanFromString normalizes a metadata plan value. Anything unrecognized,
// including the empty string and the legacy "premium" label, is treated as
// monthly rather than rejected.
func PlanFromString(s string) Plan {
	switch Plan(s) {
	case PlanQuarterly:
		return PlanQuarterly
	case PlanAnnual:
		return PlanAnnual
	default:
		return PlanMonthly
	}
}

// EntitlementEnd computes the end of the entitlement window for a plan paid at
// ref. Pure: ref is never mutated and equal inputs always produce equal
// outputs. Month arithmetic clamps to the last day of the target month
// (Jan 31 + 1 month = Feb 28/29) instead of rolling over like time.AddDate.
func EntitlementEnd(plan Plan, ref time.Time) time.Time {
	months, ok := planMonths[plan]
	if !ok {
		months = planMonths[PlanMonthly]
	}
	return addMonthsClamped(ref, months)
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	m := int(month) - 1 + months
	year += m / 12
	m = m % 12
	if m < 0 {
		m += 12
		year--
	}
	target := time.Month(m + 1)

	if max := daysIn(year, target); day > max {
		day = max
	}
	hour, min, sec := t.Clock()
	return time.Date(year, target, day, hour, min, sec, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month; day 0 of the next
// month normalizes to the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
