package reconcile

import (
	"sort"
	"time"

	"github.com/hmelementsgreen/HRM-Dashboard/timesheet"
)

type span struct {
	start time.Time
	end   time.Time
	kind  timesheet.EventKind
}

// BuildDaySegments derives the ordered, non-overlapping Work/Break sequence
// for one employee's calendar day from that day's corrected clock events.
//
// Events may overlap arbitrarily (a break logged inside a shift, shifts
// logged with gaps). Every span boundary becomes a cut point; each
// elementary interval between consecutive cut points is labelled with a
// fixed precedence: contained in a Break span wins over contained in a
// Shift span wins over contained in nothing, which is dropped. Consecutive
// intervals with the same label merge into one segment.
//
// A standalone Break span with no enclosing Shift still labels Break: break
// coverage is checked independently of shift containment.
//
// Pure function: the same event set always yields the same sequence.
func BuildDaySegments(events []timesheet.Event) []timesheet.Segment {
	spans := make([]span, 0, len(events))
	for _, event := range events {
		// Defensive filter; post-correction events should already satisfy
		// ClockOut > ClockIn.
		if !event.Complete() || !event.ClockOut.After(event.ClockIn) {
			continue
		}
		if event.Kind != timesheet.KindShift && event.Kind != timesheet.KindBreak {
			continue
		}
		spans = append(spans, span{start: event.ClockIn, end: event.ClockOut, kind: event.Kind})
	}
	if len(spans) == 0 {
		return []timesheet.Segment{}
	}

	cuts := cutPoints(spans)
	if len(cuts) < 2 {
		return []timesheet.Segment{}
	}

	segments := make([]timesheet.Segment, 0, len(cuts)-1)
	for i := 0; i < len(cuts)-1; i++ {
		a, b := cuts[i], cuts[i+1]
		if !b.After(a) {
			continue
		}
		switch {
		case coveredBy(spans, timesheet.KindBreak, a, b):
			segments = append(segments, timesheet.Segment{Start: a, End: b, Kind: timesheet.SegmentBreak})
		case coveredBy(spans, timesheet.KindShift, a, b):
			segments = append(segments, timesheet.Segment{Start: a, End: b, Kind: timesheet.SegmentWork})
		}
	}

	return indexSegments(mergeConsecutive(segments))
}

func cutPoints(spans []span) []time.Time {
	seen := make(map[int64]struct{}, len(spans)*2)
	cuts := make([]time.Time, 0, len(spans)*2)
	for _, s := range spans {
		for _, boundary := range [2]time.Time{s.start, s.end} {
			key := boundary.UnixNano()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			cuts = append(cuts, boundary)
		}
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].Before(cuts[j]) })
	return cuts
}

// coveredBy reports whether [a,b] lies entirely within some span of the
// given kind.
func coveredBy(spans []span, kind timesheet.EventKind, a, b time.Time) bool {
	for _, s := range spans {
		if s.kind != kind {
			continue
		}
		if !a.Before(s.start) && !b.After(s.end) {
			return true
		}
	}
	return false
}

func mergeConsecutive(segments []timesheet.Segment) []timesheet.Segment {
	merged := make([]timesheet.Segment, 0, len(segments))
	for _, segment := range segments {
		if !segment.End.After(segment.Start) {
			continue
		}
		if len(merged) > 0 {
			last := &merged[len(merged)-1]
			if last.Kind == segment.Kind && !segment.Start.After(last.End) {
				if segment.End.After(last.End) {
					last.End = segment.End
				}
				continue
			}
		}
		merged = append(merged, segment)
	}
	return merged
}

func indexSegments(segments []timesheet.Segment) []timesheet.Segment {
	for i := range segments {
		segments[i].Index = i + 1
	}
	return segments
}

// WorkHours sums the Work segments of one day in decimal hours.
func WorkHours(segments []timesheet.Segment) float64 {
	total := 0.0
	for _, segment := range segments {
		if segment.Kind == timesheet.SegmentWork {
			total += segment.Hours()
		}
	}
	return total
}

// BreakHours sums the Break segments of one day in decimal hours.
func BreakHours(segments []timesheet.Segment) float64 {
	total := 0.0
	for _, segment := range segments {
		if segment.Kind == timesheet.SegmentBreak {
			total += segment.Hours()
		}
	}
	return total
}

// LongWorkDay reports whether the reconstructed Work hours exceed the
// policy's flag threshold. Reporting only.
func LongWorkDay(segments []timesheet.Segment, policy Policy) bool {
	return WorkHours(segments) > policy.LongWorkFlag.Hours()
}

// GroupByEmployeeDay buckets complete events by employee and clock-in day.
// Groups are independent of each other; only the events inside one group
// need ordered treatment.
func GroupByEmployeeDay(events []timesheet.Event) map[string]map[string][]timesheet.Event {
	grouped := make(map[string]map[string][]timesheet.Event)
	for _, event := range events {
		if !event.HasClockIn {
			continue
		}
		employee := event.Employee()
		day := event.Day().Format("2006-01-02")
		if grouped[employee] == nil {
			grouped[employee] = make(map[string][]timesheet.Event)
		}
		grouped[employee][day] = append(grouped[employee][day], event)
	}
	return grouped
}
