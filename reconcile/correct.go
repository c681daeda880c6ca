// Package reconcile repairs anomalous BLIP clock events and rebuilds each
// employee-day into an ordered sequence of Work/Break segments.
package reconcile

import (
	"time"

	"github.com/hmelementsgreen/HRM-Dashboard/internal/timeutil"
	"github.com/hmelementsgreen/HRM-Dashboard/timesheet"
)

// Policy holds the business assumptions applied when a corrected event's
// worked time has to be recomputed. The unpaid break deduction is a policy
// embedded in the upstream process, not a measurement; it is kept here as a
// named, overridable value pending product-owner confirmation.
type Policy struct {
	// UnpaidBreak is deducted from recomputed durations of at least
	// ShortShiftExempt, on the assumption that a standard unpaid break was
	// taken but not recorded.
	UnpaidBreak time.Duration
	// ShortShiftExempt: recomputed durations below this keep worked ==
	// duration (short shifts assumed break-free).
	ShortShiftExempt time.Duration
	// LongWorkFlag marks days whose reconstructed Work hours exceed this
	// threshold. Reporting only; segment construction is unaffected.
	LongWorkFlag time.Duration
}

// DefaultPolicy mirrors the upstream process: 30 minutes of unpaid break,
// one-hour short-shift exemption, six-hour long-day flag.
func DefaultPolicy() Policy {
	return Policy{
		UnpaidBreak:      30 * time.Minute,
		ShortShiftExempt: time.Hour,
		LongWorkFlag:     6 * time.Hour,
	}
}

// Result summarizes one correction run for the audit printout.
type Result struct {
	Events       int
	Corrected    int
	Overnight    int
	NegDuration  int
	NegWorked    int
	Inconsistent int
	Incomplete   int
	Mismatched   int
}

// CorrectEvents repairs every event in place and returns audit counts.
// When export is true the corrected duration/worked values are also written
// back into the row's text columns, and the clock-out date text is updated
// for overnight rollovers, so flat-file consumers need not redo the fix.
// The function never fails: rows it cannot repair pass through unmodified.
func CorrectEvents(events []timesheet.Event, policy Policy, export bool) ([]timesheet.Event, Result) {
	result := Result{Events: len(events)}
	for i := range events {
		event := &events[i]
		if !event.Complete() {
			result.Incomplete++
			continue
		}
		if CorrectEvent(event, policy, export) {
			result.Corrected++
		}
		if event.HasAnomaly(timesheet.AnomalyOvernight) {
			result.Overnight++
		}
		if event.HasAnomaly(timesheet.AnomalyNegativeDuration) {
			result.NegDuration++
		}
		if event.HasAnomaly(timesheet.AnomalyNegativeWorked) {
			result.NegWorked++
		}
		if event.HasAnomaly(timesheet.AnomalyInconsistent) {
			result.Inconsistent++
		}
		if event.LocationMismatch {
			result.Mismatched++
		}
	}
	return events, result
}

// CorrectEvent inspects one event with both timestamps present, repairs any
// anomaly and reports whether a repair happened. Anomaly precedence:
// overnight rollover first (it feeds the recomputation), then the reported
// duration/worked checks.
func CorrectEvent(event *timesheet.Event, policy Policy, export bool) bool {
	if !event.Complete() {
		return false
	}

	overnight := !event.ClockOut.After(event.ClockIn)
	if overnight {
		// Assume the clock-out happened the next calendar day. Spans beyond
		// +1 day are not attempted.
		event.ClockOut = event.ClockOut.Add(24 * time.Hour)
		event.Anomalies = append(event.Anomalies, timesheet.AnomalyOvernight)
	}

	negDuration := event.HasDuration && event.Duration < 0
	negWorked := event.HasWorked && event.Worked < 0
	inconsistent := event.HasDuration && event.Duration >= 0 && event.HasWorked && event.Worked < 0

	if negDuration {
		event.Anomalies = append(event.Anomalies, timesheet.AnomalyNegativeDuration)
	}
	if negWorked {
		event.Anomalies = append(event.Anomalies, timesheet.AnomalyNegativeWorked)
	}
	if inconsistent {
		event.Anomalies = append(event.Anomalies, timesheet.AnomalyInconsistent)
	}

	fixed := overnight || negDuration || negWorked || inconsistent
	if fixed {
		recompute(event, policy)
		if export {
			writeBack(event, overnight)
		}
	}

	event.LocationMismatch = event.ClockInLocation != event.ClockOutLocation

	return fixed
}

// recompute rebuilds duration and worked from the (now ordered) timestamps.
// After the overnight fix the span is guaranteed non-negative.
func recompute(event *timesheet.Event, policy Policy) {
	duration := event.ClockOut.Sub(event.ClockIn)
	event.Duration = duration
	event.HasDuration = true

	worked := duration
	if duration >= policy.ShortShiftExempt {
		worked = duration - policy.UnpaidBreak
		if worked < 0 {
			worked = 0
		}
	}
	event.Worked = worked
	event.HasWorked = true
}

func writeBack(event *timesheet.Event, overnight bool) {
	event.DurationText = timeutil.FormatDurationText(event.Duration)
	event.WorkedText = timeutil.FormatDurationText(event.Worked)
	if overnight {
		event.ClockOutDateText = timeutil.UKDate(event.ClockOut)
	}
}
