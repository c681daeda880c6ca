package output

import (
	"fmt"

	"github.com/hmelementsgreen/HRM-Dashboard/absence"
)

var absenceHeaders = []string{
	"First name",
	"Last name",
	"Team names",
	"Country",
	"Absence type",
	"Absence description",
	"Absence start date",
	"Absence end date",
	"Absence duration for period in days",
	"Leave entitlement",
	"Organisation",
	"Suborganisation",
	"Case ID",
}

// AbsenceDocument renders the cleaned absence records. The type column
// carries the final category, not the raw export value.
func AbsenceDocument(records []absence.Record) Document {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		start, end := "", ""
		if record.HasStart {
			start = record.StartDate.Format("2006-01-02")
		}
		if record.HasEnd {
			end = record.EndDate.Format("2006-01-02")
		}
		entitlement := ""
		if record.HasEntitlement {
			entitlement = fmt.Sprintf("%g", record.EntitlementDays)
		}

		rows = append(rows, []string{
			record.FirstName,
			record.LastName,
			record.Team,
			record.Country,
			string(record.Category),
			record.Description,
			start,
			end,
			fmt.Sprintf("%g", record.DurationDays),
			entitlement,
			record.Organisation,
			record.Suborganisation,
			record.CaseID(),
		})
	}
	return Document{Headers: absenceHeaders, Rows: rows}
}
