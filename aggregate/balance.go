package aggregate

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hmelementsgreen/HRM-Dashboard/absence"
	"github.com/hmelementsgreen/HRM-Dashboard/internal/classify"
)

// EmployeeBalance is the annual-leave entitlement vs usage of one employee
// within the current scope. Recomputed fresh per query, never stored.
type EmployeeBalance struct {
	Employee       string
	Team           string
	Country        string
	EntitledDays   float64
	HasEntitlement bool
	UsedDays       float64
	// RemainingDays is EntitledDays - UsedDays; meaningless without an
	// entitlement on file, guarded by HasEntitlement.
	RemainingDays float64
}

// EntitlementConflict reports an employee with more than one distinct
// entitlement value on file: a data-quality condition, never silently
// collapsed.
type EntitlementConflict struct {
	Employee string
	Values   []float64
}

// BalanceQuality carries the data-quality counters surfaced next to the
// balance table.
type BalanceQuality struct {
	Employees               int
	WithEntitlement         int
	WithUsage               int
	UsageMissingEntitlement int
	ConflictingEntitlements int
}

// BalanceOptions scope the usage count.
type BalanceOptions struct {
	// WeekdayOnly counts only weekday absence rows as usage.
	WeekdayOnly bool
}

// ComputeBalances builds the per-employee annual-leave balance: entitlement
// is the maximum value on file (conflicting values reported separately),
// usage is the count of expanded daily rows classified Annual.
func ComputeBalances(records []absence.Record, daily []absence.DailyRow, options BalanceOptions) ([]EmployeeBalance, []EntitlementConflict, BalanceQuality) {
	type meta struct {
		team    string
		country string
	}
	metaByEmployee := make(map[string]meta)
	entitlements := make(map[string][]float64)

	for _, record := range records {
		employee := record.Employee()
		if employee == "" {
			continue
		}
		if _, seen := metaByEmployee[employee]; !seen {
			metaByEmployee[employee] = meta{team: record.Team, country: record.Country}
		}
		if record.HasEntitlement {
			entitlements[employee] = appendDistinct(entitlements[employee], record.EntitlementDays)
		}
	}

	used := make(map[string]float64)
	for _, row := range daily {
		if row.Category != classify.Annual {
			continue
		}
		if options.WeekdayOnly && !row.IsWeekday {
			continue
		}
		used[row.Employee]++
	}

	conflicts := make([]EntitlementConflict, 0)
	employees := make([]string, 0, len(metaByEmployee))
	for employee := range metaByEmployee {
		employees = append(employees, employee)
	}
	sort.Strings(employees)

	balances := make([]EmployeeBalance, 0, len(employees))
	quality := BalanceQuality{Employees: len(employees)}
	for _, employee := range employees {
		m := metaByEmployee[employee]
		balance := EmployeeBalance{
			Employee: employee,
			Team:     m.team,
			Country:  m.country,
			UsedDays: used[employee],
		}

		values := entitlements[employee]
		if len(values) > 0 {
			balance.HasEntitlement = true
			balance.EntitledDays = maxOf(values)
			balance.RemainingDays = round1(balance.EntitledDays - balance.UsedDays)
			quality.WithEntitlement++
		}
		if len(values) > 1 {
			sorted := append([]float64(nil), values...)
			sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
			conflicts = append(conflicts, EntitlementConflict{Employee: employee, Values: sorted})
			quality.ConflictingEntitlements++
		}
		if balance.UsedDays > 0 {
			quality.WithUsage++
			if !balance.HasEntitlement {
				quality.UsageMissingEntitlement++
			}
		}

		balances = append(balances, balance)
	}

	return balances, conflicts, quality
}

// GroupBalance is the balance rolled up to a team or country.
type GroupBalance struct {
	Group                   string
	Employees               int
	WithEntitlement         int
	WithUsage               int
	UsageMissingEntitlement int
	TotalEntitledDays       float64
	TotalUsedDays           float64
	RemainingDays           float64
}

// RollupKey selects the grouping dimension for RollupBalances.
type RollupKey int

const (
	ByTeam RollupKey = iota
	ByCountry
)

// RollupBalances aggregates the per-employee balances by team or country.
// Blank groups collect under "Unassigned". Sorted by remaining days
// ascending so the tightest groups surface first.
func RollupBalances(balances []EmployeeBalance, key RollupKey) []GroupBalance {
	buckets := make(map[string]*GroupBalance)
	for _, balance := range balances {
		group := balance.Team
		if key == ByCountry {
			group = balance.Country
		}
		group = strings.TrimSpace(group)
		if group == "" {
			group = "Unassigned"
		}

		b := buckets[group]
		if b == nil {
			b = &GroupBalance{Group: group}
			buckets[group] = b
		}
		b.Employees++
		if balance.HasEntitlement {
			b.WithEntitlement++
			b.TotalEntitledDays += balance.EntitledDays
		}
		if balance.UsedDays > 0 {
			b.WithUsage++
			if !balance.HasEntitlement {
				b.UsageMissingEntitlement++
			}
		}
		b.TotalUsedDays += balance.UsedDays
	}

	groups := make([]GroupBalance, 0, len(buckets))
	for _, b := range buckets {
		b.TotalEntitledDays = round1(b.TotalEntitledDays)
		b.TotalUsedDays = round1(b.TotalUsedDays)
		b.RemainingDays = round1(b.TotalEntitledDays - b.TotalUsedDays)
		groups = append(groups, *b)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].RemainingDays != groups[j].RemainingDays {
			return groups[i].RemainingDays < groups[j].RemainingDays
		}
		return groups[i].Group < groups[j].Group
	})
	return groups
}

// WeeklyAbsenceCount is the day count of one category within one group for
// one week.
type WeeklyAbsenceCount struct {
	Group    string
	Category classify.Category
	Days     int
}

// WeeklyAbsenceSummary counts daily absence rows for the given week,
// grouped by team or country and category, largest first.
func WeeklyAbsenceSummary(daily []absence.DailyRow, key RollupKey, weekStart time.Time) []WeeklyAbsenceCount {
	type groupKey struct {
		group    string
		category classify.Category
	}
	counts := make(map[groupKey]int)
	for _, row := range daily {
		if !row.WeekStart.Equal(weekStart) {
			continue
		}
		group := row.Team
		if key == ByCountry {
			group = row.Country
		}
		counts[groupKey{group: group, category: row.Category}]++
	}

	summary := make([]WeeklyAbsenceCount, 0, len(counts))
	for k, days := range counts {
		summary = append(summary, WeeklyAbsenceCount{Group: k.group, Category: k.category, Days: days})
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Days != summary[j].Days {
			return summary[i].Days > summary[j].Days
		}
		if summary[i].Group != summary[j].Group {
			return summary[i].Group < summary[j].Group
		}
		return summary[i].Category < summary[j].Category
	})
	return summary
}

func appendDistinct(values []float64, value float64) []float64 {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}

func maxOf(values []float64) float64 {
	best := values[0]
	for _, value := range values[1:] {
		if value > best {
			best = value
		}
	}
	return best
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func roundHours(value float64) float64 {
	return math.Round(value*100) / 100
}

func roundRatio(value float64) float64 {
	return math.Round(value*1000) / 1000
}
