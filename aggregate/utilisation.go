// Package aggregate turns corrected clock events and classified absence
// days into grouped summaries for the dashboard layer. Everything here is a
// pure projection: recomputed per call, no state, no I/O.
package aggregate

import (
	"sort"
	"time"

	"github.com/hmelementsgreen/HRM-Dashboard/internal/timeutil"
	"github.com/hmelementsgreen/HRM-Dashboard/timesheet"
)

// UtilisationPolicy configures the expected-hours baseline.
type UtilisationPolicy struct {
	// ExpectedDailyHours per employee per counted day.
	ExpectedDailyHours float64
	// ExcludeWeekends drops Saturday/Sunday events from the baseline and
	// the totals.
	ExcludeWeekends bool
}

// PeriodSummary is the worked-hours rollup for one grouping period (a day,
// an ISO week or a month).
type PeriodSummary struct {
	Key           string
	Employees     int
	WorkedHours   float64
	ExpectedHours float64
	// Utilisation is WorkedHours / ExpectedHours; zero when no baseline.
	Utilisation float64
	// Incomplete counts events excluded from the totals for missing
	// timestamps; kept for the audit printout.
	Incomplete int
}

type periodKeyFunc func(time.Time) string

// DailyUtilisation groups Shift events by calendar day.
func DailyUtilisation(events []timesheet.Event, policy UtilisationPolicy) []PeriodSummary {
	return utilisation(events, policy, func(day time.Time) string {
		return day.Format("2006-01-02")
	}, 1)
}

// WeeklyUtilisation groups Shift events by ISO week (Monday start).
func WeeklyUtilisation(events []timesheet.Event, policy UtilisationPolicy) []PeriodSummary {
	days := 5
	if !policy.ExcludeWeekends {
		days = 7
	}
	return utilisation(events, policy, func(day time.Time) string {
		return timeutil.ISOWeekKey(day)
	}, days)
}

// MonthlyUtilisation groups Shift events by year-month. The baseline uses
// the distinct event days seen in that month rather than a fixed day count:
// a partially exported month should not look under-utilised.
func MonthlyUtilisation(events []timesheet.Event, policy UtilisationPolicy) []PeriodSummary {
	return utilisation(events, policy, timeutil.MonthKey, 0)
}

func utilisation(events []timesheet.Event, policy UtilisationPolicy, keyOf periodKeyFunc, baselineDays int) []PeriodSummary {
	type bucket struct {
		worked     time.Duration
		employees  map[string]struct{}
		days       map[string]struct{}
		incomplete int
	}
	buckets := make(map[string]*bucket)

	for _, event := range events {
		if event.Kind != timesheet.KindShift || !event.HasClockIn {
			continue
		}
		day := event.Day()
		if policy.ExcludeWeekends && timeutil.IsWeekend(day) {
			continue
		}
		key := keyOf(day)
		b := buckets[key]
		if b == nil {
			b = &bucket{employees: make(map[string]struct{}), days: make(map[string]struct{})}
			buckets[key] = b
		}
		b.employees[event.Employee()] = struct{}{}
		b.days[day.Format("2006-01-02")] = struct{}{}
		if !event.Complete() || !event.HasWorked {
			b.incomplete++
			continue
		}
		b.worked += event.Worked
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	summaries := make([]PeriodSummary, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		days := baselineDays
		if days == 0 {
			days = len(b.days)
		}
		expected := float64(len(b.employees)) * policy.ExpectedDailyHours * float64(days)
		summaries = append(summaries, PeriodSummary{
			Key:           key,
			Employees:     len(b.employees),
			WorkedHours:   roundHours(b.worked.Hours()),
			ExpectedHours: roundHours(expected),
			Utilisation:   safeDivide(b.worked.Hours(), expected),
			Incomplete:    b.incomplete,
		})
	}
	return summaries
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return roundRatio(numerator / denominator)
}
