// Package timeutil normalizes the date, time and duration text found in the
// raw HR exports into canonical values. Parsers report success with an ok
// bool instead of an error: a blank or unparseable cell is an expected state
// for these files, not a fault.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// blipDateLayouts: the BLIP export writes ISO dates, older exports UK dates.
// ISO is tried first; UK only for values ISO cannot parse.
var blipDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
}

// absenceFirstPass parses month-first shapes (US-style exports).
var absenceFirstPass = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
}

// absenceSecondPass retries values the first pass rejected as day-first
// (UK-style exports). An unambiguous value like 25/12/2025 always lands here.
var absenceSecondPass = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
}

var clockTimeLayouts = []string{
	"15:04:05",
	"15:04",
	"03:04:05 PM",
	"03:04 PM",
}

func parseWithLayouts(value string, layouts []string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" || isNullText(value) {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ParseBlipDate parses a BLIP clock date: ISO first, UK day-first retry.
func ParseBlipDate(value string) (time.Time, bool) {
	return parseWithLayouts(value, blipDateLayouts)
}

// ParseAbsenceDate parses an absence export date using the two-pass strategy:
// month-first, then retry rejected values as day-first.
func ParseAbsenceDate(value string) (time.Time, bool) {
	if parsed, ok := parseWithLayouts(value, absenceFirstPass); ok {
		return parsed, true
	}
	return parseWithLayouts(value, absenceSecondPass)
}

// ParseClockTime parses a time-of-day cell (with or without seconds, 12h or 24h).
func ParseClockTime(value string) (time.Time, bool) {
	return parseWithLayouts(value, clockTimeLayouts)
}

// CombineDateTime joins a date cell and a time-of-day cell into one timestamp.
// If either half is missing the result is (zero, false); a missing clock-out
// must stay a distinct state downstream, never an error.
func CombineDateTime(date time.Time, hasDate bool, clock time.Time, hasClock bool) (time.Time, bool) {
	if !hasDate || !hasClock {
		return time.Time{}, false
	}
	combined := time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0,
		date.Location(),
	)
	return combined, true
}

// StartOfDay truncates a timestamp to midnight in its own location.
func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// WeekStart returns midnight of the Monday of the value's ISO week.
func WeekStart(value time.Time) time.Time {
	day := StartOfDay(value)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// MonthKey returns the year-month grouping key, e.g. "2026-02".
func MonthKey(value time.Time) string {
	return value.Format("2006-01")
}

// ISOWeekKey returns the ISO week grouping key, e.g. "2026-W07".
func ISOWeekKey(value time.Time) string {
	year, week := value.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func IsWeekend(value time.Time) bool {
	weekday := value.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// UKDate formats a date the way the BLIP export writes clock dates.
func UKDate(value time.Time) string {
	return value.Format("02/01/2006")
}

// ParseDurationText parses the elapsed-time text columns of the BLIP export.
// Accepted shapes: "HH:MM:SS", "HH:MM", "D days HH:MM:SS" and the negative
// form "-1 days +23:30:00" that the upstream tooling emits for negative
// spans (which equals that span minus one day, i.e. -30m in the example).
func ParseDurationText(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" || isNullText(value) {
		return 0, false
	}

	days := 0
	clockPart := value
	if idx := strings.Index(strings.ToLower(value), "day"); idx >= 0 {
		dayPart := strings.TrimSpace(value[:idx])
		rest := value[idx:]
		cut := strings.IndexAny(rest, " \t")
		if cut >= 0 {
			clockPart = strings.TrimSpace(rest[cut+1:])
		} else {
			clockPart = ""
		}
		parsedDays, err := strconv.Atoi(dayPart)
		if err != nil {
			return 0, false
		}
		days = parsedDays
	}

	clockPart = strings.TrimPrefix(clockPart, "+")
	var clock time.Duration
	if clockPart != "" {
		parts := strings.Split(clockPart, ":")
		if len(parts) != 2 && len(parts) != 3 {
			return 0, false
		}
		negativeClock := strings.HasPrefix(parts[0], "-")
		parts[0] = strings.TrimPrefix(parts[0], "-")
		var fields [3]int
		for i, part := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 0 {
				return 0, false
			}
			fields[i] = n
		}
		clock = time.Duration(fields[0])*time.Hour +
			time.Duration(fields[1])*time.Minute +
			time.Duration(fields[2])*time.Second
		if negativeClock {
			clock = -clock
		}
	}

	return time.Duration(days)*24*time.Hour + clock, true
}

// FormatDurationText renders an elapsed time in the export's own text shape,
// "D days HH:MM:SS". Negative values render empty: the corrected columns
// never carry a negative span.
func FormatDurationText(value time.Duration) string {
	total := int64(value / time.Second)
	if total < 0 {
		return ""
	}
	days := total / 86400
	rem := total % 86400
	hours := rem / 3600
	minutes := (rem % 3600) / 60
	seconds := rem % 60
	return fmt.Sprintf("%d days %02d:%02d:%02d", days, hours, minutes, seconds)
}

func isNullText(value string) bool {
	switch strings.ToLower(value) {
	case "nan", "nat", "none", "null":
		return true
	}
	return false
}
