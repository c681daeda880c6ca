package output

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hmelementsgreen/HRM-Dashboard/importer"
	"github.com/hmelementsgreen/HRM-Dashboard/timesheet"
)

// AppendCumulative merges corrected events into the long-running cleaned
// CSV at path. One row survives per (first name, last name, clock-in day,
// blip type); on collision the incoming row wins, so re-running an ingest
// with a corrected export replaces the stale rows instead of duplicating
// them. The file is replaced atomically. Returns the merged row count and
// how many rows the dedupe dropped.
func AppendCumulative(path string, events []timesheet.Event) (total, dropped int, err error) {
	existing, err := readCumulative(path)
	if err != nil {
		return 0, 0, err
	}

	merged := make([]timesheet.Event, 0, len(existing)+len(events))
	merged = append(merged, existing...)
	merged = append(merged, events...)

	kept := dedupeKeepLast(merged)
	dropped = len(merged) - len(kept)
	sortCumulative(kept)

	tmp := path + ".tmp"
	if err := writeDocumentCSV(tmp, BlipDocument(kept, false)); err != nil {
		return 0, 0, err
	}
	if err := os.Rename(tmp, path); err != nil {
		return 0, 0, fmt.Errorf("replace cumulative csv %s: %w", path, err)
	}

	return len(kept), dropped, nil
}

func readCumulative(path string) ([]timesheet.Event, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	reader := &importer.CSVReader{}
	table, err := reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read cumulative csv: %w", err)
	}
	events, err := importer.MapBlipEvents(table)
	if err != nil {
		return nil, fmt.Errorf("read cumulative csv: %w", err)
	}
	return events, nil
}

func dedupeKeepLast(events []timesheet.Event) []timesheet.Event {
	lastIndex := make(map[string]int, len(events))
	for i, event := range events {
		lastIndex[cumulativeKey(event)] = i
	}
	kept := make([]timesheet.Event, 0, len(lastIndex))
	for i, event := range events {
		if lastIndex[cumulativeKey(event)] == i {
			kept = append(kept, event)
		}
	}
	return kept
}

// cumulativeKey identifies one person's clock event of one kind on one day.
func cumulativeKey(event timesheet.Event) string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(event.FirstName)),
		strings.ToLower(strings.TrimSpace(event.LastName)),
		cumulativeDay(event),
		string(event.Kind),
	}, "\x1e")
}

// cumulativeDay prefers the parsed clock-in day so ISO and UK date text
// collide as intended; unparseable text falls back to the raw cell.
func cumulativeDay(event timesheet.Event) string {
	if event.HasClockIn {
		return event.ClockIn.Format("2006-01-02")
	}
	return strings.TrimSpace(event.ClockInDateText)
}

func sortCumulative(events []timesheet.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if dayA, dayB := cumulativeDay(a), cumulativeDay(b); dayA != dayB {
			return dayA < dayB
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.Kind < b.Kind
	})
}
