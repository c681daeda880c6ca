package absence

import (
	"time"

	"github.com/hmelementsgreen/HRM-Dashboard/internal/classify"
	"github.com/hmelementsgreen/HRM-Dashboard/internal/timeutil"
)

// DailyRow is one calendar day of one absence case: a read-only projection
// of the source record, derived for drill-down reporting. The source record
// itself is never mutated by expansion.
type DailyRow struct {
	CaseID    string
	Employee  string
	Team      string
	Country   string
	Category  classify.Category
	Date      time.Time
	DateUK    string
	WeekStart time.Time
	ISOWeek   string
	IsWeekday bool
}

// ExpandDaily expands every record into one row per calendar day in
// [StartDate, EndDate] inclusive. Records without a start date contribute
// nothing; a missing or inverted end date clamps to a single-day case.
func ExpandDaily(records []Record) []DailyRow {
	rows := make([]DailyRow, 0, len(records))
	for _, record := range records {
		if !record.HasStart {
			continue
		}
		start := timeutil.StartOfDay(record.StartDate)
		end := start
		if record.HasEnd && !record.EndDate.Before(record.StartDate) {
			end = timeutil.StartOfDay(record.EndDate)
		}

		caseID := record.CaseID()
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			rows = append(rows, DailyRow{
				CaseID:    caseID,
				Employee:  record.Employee(),
				Team:      record.Team,
				Country:   record.Country,
				Category:  record.Category,
				Date:      day,
				DateUK:    timeutil.UKDate(day),
				WeekStart: timeutil.WeekStart(day),
				ISOWeek:   timeutil.ISOWeekKey(day),
				IsWeekday: !timeutil.IsWeekend(day),
			})
		}
	}
	return rows
}
