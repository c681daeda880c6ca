package output

import (
	"strings"

	"github.com/hmelementsgreen/HRM-Dashboard/timesheet"
)

// blipNote mirrors the export's own note row above the header; the readers
// skip it on re-import.
const blipNote = "Cleaned BLIP timesheet export"

var blipHeaders = []string{
	"First Name",
	"Last Name",
	"Job Title",
	"Team",
	"Blip Type",
	"Clock In Date",
	"Clock In Time",
	"Clock In Location",
	"Clock Out Date",
	"Clock Out Time",
	"Clock Out Location",
	"Total Duration",
	"Total Excluding Breaks",
	"Notes",
	"Correction Flags",
}

// BlipDocument renders corrected clock events. The text columns are written
// as corrected in export mode, so the file is self-consistent; the flags
// column records which repairs were applied. withNote adds the spreadsheet's
// leading note row.
func BlipDocument(events []timesheet.Event, withNote bool) Document {
	rows := make([][]string, 0, len(events))
	for _, event := range events {
		rows = append(rows, blipRow(event))
	}
	doc := Document{Headers: blipHeaders, Rows: rows}
	if withNote {
		doc.NoteLine = blipNote
	}
	return doc
}

func blipRow(event timesheet.Event) []string {
	return []string{
		event.FirstName,
		event.LastName,
		event.JobTitle,
		event.Team,
		string(event.Kind),
		event.ClockInDateText,
		event.ClockInTimeText,
		event.ClockInLocation,
		event.ClockOutDateText,
		event.ClockOutTimeText,
		event.ClockOutLocation,
		event.DurationText,
		event.WorkedText,
		event.Notes,
		correctionFlags(event),
	}
}

func correctionFlags(event timesheet.Event) string {
	flags := make([]string, 0, len(event.Anomalies)+1)
	for _, anomaly := range event.Anomalies {
		flags = append(flags, string(anomaly))
	}
	if event.LocationMismatch {
		flags = append(flags, timesheet.FlagLocationMismatch)
	}
	return strings.Join(flags, ";")
}
