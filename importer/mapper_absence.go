package importer

import (
	"strconv"
	"strings"

	"github.com/hmelementsgreen/HRM-Dashboard/absence"
	"github.com/hmelementsgreen/HRM-Dashboard/internal/timeutil"
)

var absenceRequiredColumns = []string{
	"Team names",
	"Absence type",
	"Absence description",
	"Absence start date",
	"Absence end date",
	"First name",
	"Last name",
}

// absenceExtraTextColumns are the auxiliary free-text columns scanned by the
// second classification pass, in fixed order.
var absenceExtraTextColumns = []string{
	"Reason",
	"Notes",
	"Description",
	"Comment",
	"Absence reason",
	"Absence notes",
}

// MapAbsenceRecords turns a raw absence table into normalized records.
// Country is inferred from the team text when the export carries no country
// column; entitlement is only taken when its unit column is absent, blank or
// day-based.
func MapAbsenceRecords(table Table) ([]absence.Record, error) {
	if err := table.Require(absenceRequiredColumns...); err != nil {
		return nil, err
	}

	hasCountry := table.HasColumn("Country")
	extraColumns := presentColumns(table, absenceExtraTextColumns)

	records := make([]absence.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := absence.Record{
			FirstName:   row.Get("First name"),
			LastName:    row.Get("Last name"),
			Team:        row.Get("Team names"),
			RawType:     row.Get("Absence type"),
			Description: row.Get("Absence description"),
			SourceRow:   row.RowNumber,
		}

		for _, column := range extraColumns {
			record.ExtraText = append(record.ExtraText, row.Get(column))
		}

		if hasCountry {
			record.Country = absence.NormalizeCountry(row.Get("Country"))
		} else {
			record.Country = absence.InferCountry(record.Team)
		}

		record.StartDate, record.HasStart = timeutil.ParseAbsenceDate(row.Get("Absence start date"))
		record.EndDate, record.HasEnd = timeutil.ParseAbsenceDate(row.Get("Absence end date"))
		record.DurationDays = parseFloatCell(row.Get("Absence duration for period in days"))

		if days, ok := parseEntitlement(row); ok {
			record.EntitlementDays, record.HasEntitlement = days, true
		}

		records = append(records, record)
	}

	return records, nil
}

func presentColumns(table Table, candidates []string) []string {
	present := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if table.HasColumn(candidate) {
			present = append(present, candidate)
		}
	}
	return present
}

func parseEntitlement(row Record) (float64, bool) {
	raw := row.Get("Leave entitlement", "Entitlement")
	if raw == "" {
		return 0, false
	}
	unit := strings.ToLower(row.Get("Entitlement unit"))
	if unit != "" && !strings.Contains(unit, "day") {
		return 0, false
	}
	days, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return days, true
}

func parseFloatCell(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}
