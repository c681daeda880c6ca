package output

import (
	"fmt"
	"strconv"

	"github.com/hmelementsgreen/HRM-Dashboard/aggregate"
)

// UtilisationDocument renders period summaries (daily, weekly or monthly;
// the period label names the first column).
func UtilisationDocument(periodLabel string, summaries []aggregate.PeriodSummary) Document {
	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, []string{
			summary.Key,
			strconv.Itoa(summary.Employees),
			fmt.Sprintf("%.2f", summary.WorkedHours),
			fmt.Sprintf("%.2f", summary.ExpectedHours),
			fmt.Sprintf("%.2f", summary.Utilisation),
			strconv.Itoa(summary.Incomplete),
		})
	}
	return Document{
		Headers: []string{periodLabel, "Employees", "WorkedHours", "ExpectedHours", "Utilisation", "IncompleteEvents"},
		Rows:    rows,
	}
}

// SegmentDocument renders the per-employee-day Work/Break rollups. LongDay
// rows carry "yes" so the flag column scans easily in a spreadsheet.
func SegmentDocument(summaries []aggregate.DaySegmentSummary) Document {
	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		longDay := ""
		if summary.LongDay {
			longDay = "yes"
		}
		rows = append(rows, []string{
			summary.Day,
			summary.Employee,
			strconv.Itoa(summary.Segments),
			fmt.Sprintf("%.2f", summary.WorkHours),
			fmt.Sprintf("%.2f", summary.BreakHours),
			longDay,
		})
	}
	return Document{
		Headers: []string{"Date", "Employee", "Segments", "WorkHours", "BreakHours", "LongDay"},
		Rows:    rows,
	}
}

// WeeklyAbsenceDocument renders one week's absence-day counts per group and
// category (team or country rollup; the group label names the first column).
func WeeklyAbsenceDocument(groupLabel, weekStart string, counts []aggregate.WeeklyAbsenceCount) Document {
	rows := make([][]string, 0, len(counts))
	for _, count := range counts {
		rows = append(rows, []string{
			weekStart,
			count.Group,
			string(count.Category),
			strconv.Itoa(count.Days),
		})
	}
	return Document{
		Headers: []string{"WeekStart", groupLabel, "Category", "AbsenceDays"},
		Rows:    rows,
	}
}

// BalanceDocument renders per-employee annual-leave balances.
func BalanceDocument(balances []aggregate.EmployeeBalance) Document {
	rows := make([][]string, 0, len(balances))
	for _, balance := range balances {
		entitled, remaining := "", ""
		if balance.HasEntitlement {
			entitled = fmt.Sprintf("%.1f", balance.EntitledDays)
			remaining = fmt.Sprintf("%.1f", balance.RemainingDays)
		}
		rows = append(rows, []string{
			balance.Employee,
			balance.Team,
			balance.Country,
			entitled,
			fmt.Sprintf("%.1f", balance.UsedDays),
			remaining,
		})
	}
	return Document{
		Headers: []string{"Employee", "Team", "Country", "EntitledDays", "UsedDays", "RemainingDays"},
		Rows:    rows,
	}
}

// RollupDocument renders group balances (team or country rollup; the group
// label names the first column).
func RollupDocument(groupLabel string, groups []aggregate.GroupBalance) Document {
	rows := make([][]string, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, []string{
			group.Group,
			strconv.Itoa(group.Employees),
			strconv.Itoa(group.WithEntitlement),
			strconv.Itoa(group.WithUsage),
			strconv.Itoa(group.UsageMissingEntitlement),
			fmt.Sprintf("%.1f", group.TotalEntitledDays),
			fmt.Sprintf("%.1f", group.TotalUsedDays),
			fmt.Sprintf("%.1f", group.RemainingDays),
		})
	}
	return Document{
		Headers: []string{
			groupLabel, "Employees", "WithEntitlement", "WithUsage",
			"UsageMissingEntitlement", "TotalEntitledDays", "TotalUsedDays", "RemainingDays",
		},
		Rows: rows,
	}
}
