package aggregate

import (
	"testing"
	"time"

	"github.com/hmelementsgreen/HRM-Dashboard/timesheet"
)

func shiftEvent(t *testing.T, employee, day string, worked time.Duration) timesheet.Event {
	t.Helper()

	clockIn, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		t.Fatalf("parse day %q: %v", day, err)
	}
	clockIn = clockIn.Add(9 * time.Hour)
	return timesheet.Event{
		FirstName:   employee,
		Kind:        timesheet.KindShift,
		ClockIn:     clockIn,
		HasClockIn:  true,
		ClockOut:    clockIn.Add(worked),
		HasClockOut: true,
		Worked:      worked,
		HasWorked:   true,
	}
}

func TestDailyUtilisation(t *testing.T) {
	t.Parallel()

	policy := UtilisationPolicy{ExpectedDailyHours: 8}
	events := []timesheet.Event{
		shiftEvent(t, "Ada", "2026-02-09", 8*time.Hour),
		shiftEvent(t, "Lena", "2026-02-09", 4*time.Hour),
		shiftEvent(t, "Ada", "2026-02-10", 6*time.Hour),
	}

	summaries := DailyUtilisation(events, policy)

	if len(summaries) != 2 {
		t.Fatalf("want 2 days, got %d", len(summaries))
	}
	first := summaries[0]
	if first.Key != "2026-02-09" || first.Employees != 2 {
		t.Fatalf("unexpected first summary: %+v", first)
	}
	if first.WorkedHours != 12 || first.ExpectedHours != 16 {
		t.Fatalf("unexpected hours: %+v", first)
	}
	if first.Utilisation != 0.75 {
		t.Fatalf("unexpected utilisation: %v", first.Utilisation)
	}
}

func TestUtilisationSkipsBreaksAndIncomplete(t *testing.T) {
	t.Parallel()

	breakEvent := shiftEvent(t, "Ada", "2026-02-09", 30*time.Minute)
	breakEvent.Kind = timesheet.KindBreak
	incomplete := shiftEvent(t, "Ada", "2026-02-09", 0)
	incomplete.HasClockOut = false
	incomplete.HasWorked = false

	summaries := DailyUtilisation([]timesheet.Event{
		shiftEvent(t, "Ada", "2026-02-09", 8*time.Hour),
		breakEvent,
		incomplete,
	}, UtilisationPolicy{ExpectedDailyHours: 8})

	if len(summaries) != 1 {
		t.Fatalf("want 1 day, got %d", len(summaries))
	}
	if summaries[0].WorkedHours != 8 {
		t.Fatalf("breaks and incomplete rows must not add hours: %+v", summaries[0])
	}
	if summaries[0].Incomplete != 1 {
		t.Fatalf("incomplete rows must still be counted: %+v", summaries[0])
	}
}

func TestWeeklyUtilisationExcludesWeekends(t *testing.T) {
	t.Parallel()

	policy := UtilisationPolicy{ExpectedDailyHours: 8, ExcludeWeekends: true}
	events := []timesheet.Event{
		shiftEvent(t, "Ada", "2026-02-09", 8*time.Hour), // Monday
		shiftEvent(t, "Ada", "2026-02-14", 8*time.Hour), // Saturday, excluded
	}

	summaries := WeeklyUtilisation(events, policy)

	if len(summaries) != 1 {
		t.Fatalf("want 1 week, got %d", len(summaries))
	}
	week := summaries[0]
	if week.Key != "2026-W07" {
		t.Fatalf("unexpected week key: %s", week.Key)
	}
	if week.WorkedHours != 8 {
		t.Fatalf("saturday must be excluded: %+v", week)
	}
	// One employee, five weekdays, eight expected hours each.
	if week.ExpectedHours != 40 {
		t.Fatalf("unexpected baseline: %+v", week)
	}
	if week.Utilisation != 0.2 {
		t.Fatalf("unexpected utilisation: %v", week.Utilisation)
	}
}

func TestMonthlyUtilisationBaselineUsesSeenDays(t *testing.T) {
	t.Parallel()

	policy := UtilisationPolicy{ExpectedDailyHours: 8}
	events := []timesheet.Event{
		shiftEvent(t, "Ada", "2026-02-09", 8*time.Hour),
		shiftEvent(t, "Ada", "2026-02-10", 8*time.Hour),
	}

	summaries := MonthlyUtilisation(events, policy)

	if len(summaries) != 1 || summaries[0].Key != "2026-02" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
	// Two event days seen: baseline is 2 x 8h, not the whole month.
	if summaries[0].ExpectedHours != 16 {
		t.Fatalf("unexpected baseline: %+v", summaries[0])
	}
	if summaries[0].Utilisation != 1 {
		t.Fatalf("unexpected utilisation: %v", summaries[0].Utilisation)
	}
}
