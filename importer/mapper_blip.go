package importer

import (
	"strings"

	"github.com/hmelementsgreen/HRM-Dashboard/internal/timeutil"
	"github.com/hmelementsgreen/HRM-Dashboard/timesheet"
)

// blipRequiredColumns must all be present before any row is mapped.
var blipRequiredColumns = []string{
	"First Name",
	"Last Name",
	"Blip Type",
	"Clock In Date",
	"Clock In Time",
}

// MapBlipEvents turns a raw BLIP table into timesheet events. Rows are never
// dropped here: missing clock-outs and unparseable cells stay as absent
// fields so the reconciliation layer can flag them.
func MapBlipEvents(table Table) ([]timesheet.Event, error) {
	if err := table.Require(blipRequiredColumns...); err != nil {
		return nil, err
	}

	events := make([]timesheet.Event, 0, len(table.Rows))
	for _, row := range table.Rows {
		event := timesheet.Event{
			FirstName: row.Get("First Name"),
			LastName:  row.Get("Last Name"),
			JobTitle:  row.Get("Job Title"),
			Team:      row.Get("Team", "Teams", "Team(s)"),
			Kind:      timesheet.ParseEventKind(row.Get("Blip Type")),

			ClockInLocation:  row.Get("Clock In Location"),
			ClockOutLocation: row.Get("Clock Out Location"),

			DurationText:     row.Get("Total Duration"),
			WorkedText:       row.Get("Total Excluding Breaks"),
			ClockInDateText:  row.Get("Clock In Date"),
			ClockOutDateText: row.Get("Clock Out Date"),
			ClockInTimeText:  row.Get("Clock In Time"),
			ClockOutTimeText: row.Get("Clock Out Time"),
			Notes:            row.Get("Notes", "Note"),

			SourceRow:  row.RowNumber,
			SourceFile: table.Path,
		}

		inDate, hasInDate := timeutil.ParseBlipDate(event.ClockInDateText)
		inTime, hasInTime := timeutil.ParseClockTime(event.ClockInTimeText)
		event.ClockIn, event.HasClockIn = timeutil.CombineDateTime(inDate, hasInDate, inTime, hasInTime)

		outDate, hasOutDate := timeutil.ParseBlipDate(event.ClockOutDateText)
		if !hasOutDate {
			// A same-day clock-out often omits the date column.
			outDate, hasOutDate = inDate, hasInDate
		}
		outTime, hasOutTime := timeutil.ParseClockTime(event.ClockOutTimeText)
		event.ClockOut, event.HasClockOut = timeutil.CombineDateTime(outDate, hasOutDate, outTime, hasOutTime)

		event.Duration, event.HasDuration = timeutil.ParseDurationText(event.DurationText)
		event.Worked, event.HasWorked = timeutil.ParseDurationText(event.WorkedText)

		applyCorrectionFlags(&event, row.Get("Correction Flags"))

		events = append(events, event)
	}

	return events, nil
}

// applyCorrectionFlags restores the flags column of a previously cleaned
// export so re-reads (cumulative appends in particular) keep the audit trail.
func applyCorrectionFlags(event *timesheet.Event, raw string) {
	for _, token := range strings.Split(raw, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if token == timesheet.FlagLocationMismatch {
			event.LocationMismatch = true
			continue
		}
		if anomaly, ok := timesheet.ParseAnomaly(token); ok {
			event.Anomalies = append(event.Anomalies, anomaly)
		}
	}
}
