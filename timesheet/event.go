// Package timesheet holds the normalized BLIP records used across the
// importer, the reconciliation engine and the outputs.
package timesheet

import (
	"strings"
	"time"
)

// EventKind is the recognized "Blip Type" of a clock event row.
type EventKind string

const (
	KindShift   EventKind = "Shift"
	KindBreak   EventKind = "Break"
	KindUnknown EventKind = ""
)

// ParseEventKind normalizes the raw "Blip Type" cell.
func ParseEventKind(raw string) EventKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "shift":
		return KindShift
	case "break":
		return KindBreak
	default:
		return KindUnknown
	}
}

// Anomaly identifies one class of clock-event inconsistency found and
// repaired during correction.
type Anomaly string

const (
	// AnomalyOvernight: clock-out at or before clock-in on the stated date;
	// the clock-out actually happened the next calendar day.
	AnomalyOvernight Anomaly = "overnight"
	// AnomalyNegativeDuration: the reported Total Duration text is negative.
	AnomalyNegativeDuration Anomaly = "negative_duration"
	// AnomalyNegativeWorked: the reported Total Excluding Breaks text is negative.
	AnomalyNegativeWorked Anomaly = "negative_worked"
	// AnomalyInconsistent: non-negative reported duration paired with a
	// negative reported worked figure.
	AnomalyInconsistent Anomaly = "duration_worked_inconsistent"
)

// FlagLocationMismatch is the stored correction-flag token for a row whose
// clock-in and clock-out locations differ.
const FlagLocationMismatch = "location_mismatch"

// ParseAnomaly maps one stored correction-flag token back to its anomaly
// class. Unknown tokens report false; the flags column survives round trips
// through the cleaned flat files.
func ParseAnomaly(raw string) (Anomaly, bool) {
	anomaly := Anomaly(strings.TrimSpace(raw))
	switch anomaly {
	case AnomalyOvernight, AnomalyNegativeDuration, AnomalyNegativeWorked, AnomalyInconsistent:
		return anomaly, true
	}
	return "", false
}

// Event is one raw row of the BLIP timesheet export, normalized into a fixed
// shape at ingestion. Before correction no field is guaranteed consistent;
// after correction ClockOut >= ClockIn, Duration >= 0 and 0 <= Worked <=
// Duration hold for every row with both timestamps.
type Event struct {
	FirstName string
	LastName  string
	JobTitle  string
	Team      string
	Kind      EventKind

	ClockIn     time.Time
	HasClockIn  bool
	ClockOut    time.Time
	HasClockOut bool

	ClockInLocation  string
	ClockOutLocation string

	Duration    time.Duration
	HasDuration bool
	Worked      time.Duration
	HasWorked   bool

	// Raw text columns of the export; correction in export mode rewrites
	// them so downstream flat-file consumers see self-consistent values.
	DurationText     string
	WorkedText       string
	ClockInDateText  string
	ClockOutDateText string
	ClockInTimeText  string
	ClockOutTimeText string
	Notes            string

	// Audit trail. Rows are never dropped, only flagged.
	Anomalies        []Anomaly
	LocationMismatch bool

	SourceRow  int
	SourceFile string
}

// Employee is the grouping identity derived from the name columns.
func (e Event) Employee() string {
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}

// Day returns the calendar day the event belongs to (clock-in date).
func (e Event) Day() time.Time {
	return time.Date(e.ClockIn.Year(), e.ClockIn.Month(), e.ClockIn.Day(), 0, 0, 0, 0, e.ClockIn.Location())
}

// Complete reports whether the event carries both timestamps. Incomplete
// events are excluded from numeric aggregates but kept for audit counts.
func (e Event) Complete() bool {
	return e.HasClockIn && e.HasClockOut
}

func (e Event) HasAnomaly(kind Anomaly) bool {
	for _, a := range e.Anomalies {
		if a == kind {
			return true
		}
	}
	return false
}

// BreakTime is the reported break allowance: duration minus worked, floored
// at zero.
func (e Event) BreakTime() time.Duration {
	if !e.HasDuration || !e.HasWorked {
		return 0
	}
	diff := e.Duration - e.Worked
	if diff < 0 {
		return 0
	}
	return diff
}

// SegmentKind labels a reconstructed slice of an employee's day.
type SegmentKind string

const (
	SegmentWork  SegmentKind = "Work"
	SegmentBreak SegmentKind = "Break"
)

// Segment is a derived, non-overlapping interval of one employee's day.
// For a fixed employee and day, segments are ordered by time, never overlap,
// and consecutive segments never share a kind.
type Segment struct {
	Start time.Time
	End   time.Time
	Kind  SegmentKind
	// Index is the 1-based chronological position within the day.
	Index int
}

// Hours is the segment length in decimal hours.
func (s Segment) Hours() float64 {
	return s.End.Sub(s.Start).Hours()
}
