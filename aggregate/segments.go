package aggregate

import (
	"sort"

	"github.com/hmelementsgreen/HRM-Dashboard/reconcile"
	"github.com/hmelementsgreen/HRM-Dashboard/timesheet"
)

// DaySegmentSummary is the reconstructed Work/Break rollup for one employee
// on one calendar day.
type DaySegmentSummary struct {
	Employee   string
	Day        string
	Segments   int
	WorkHours  float64
	BreakHours float64
	// LongDay marks Work hours beyond the policy threshold. Reporting only.
	LongDay bool
}

// SummarizeDaySegments rebuilds every employee-day segment sequence from the
// corrected clock events and rolls it up to one row per day. Rows are sorted
// by day then employee.
func SummarizeDaySegments(events []timesheet.Event, policy reconcile.Policy) []DaySegmentSummary {
	grouped := reconcile.GroupByEmployeeDay(events)

	summaries := make([]DaySegmentSummary, 0, len(grouped))
	for employee, days := range grouped {
		for day, dayEvents := range days {
			segments := reconcile.BuildDaySegments(dayEvents)
			if len(segments) == 0 {
				continue
			}
			summaries = append(summaries, DaySegmentSummary{
				Employee:   employee,
				Day:        day,
				Segments:   len(segments),
				WorkHours:  roundHours(reconcile.WorkHours(segments)),
				BreakHours: roundHours(reconcile.BreakHours(segments)),
				LongDay:    reconcile.LongWorkDay(segments, policy),
			})
		}
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Day != summaries[j].Day {
			return summaries[i].Day < summaries[j].Day
		}
		return summaries[i].Employee < summaries[j].Employee
	})
	return summaries
}
