package aggregate

import (
	"testing"
	"time"

	"github.com/hmelementsgreen/HRM-Dashboard/absence"
	"github.com/hmelementsgreen/HRM-Dashboard/internal/classify"
)

func absenceRecord(employee, team, country string, entitlement float64, hasEntitlement bool) absence.Record {
	return absence.Record{
		FirstName:       employee,
		Team:            team,
		Country:         country,
		EntitlementDays: entitlement,
		HasEntitlement:  hasEntitlement,
	}
}

func annualDay(employee string, date time.Time, weekday bool) absence.DailyRow {
	return absence.DailyRow{
		Employee:  employee,
		Category:  classify.Annual,
		Date:      date,
		IsWeekday: weekday,
	}
}

func TestComputeBalances(t *testing.T) {
	t.Parallel()

	records := []absence.Record{
		absenceRecord("Mara Voss", "Engineering", "UK", 25, true),
		absenceRecord("Mara Voss", "Engineering", "UK", 28, true), // conflicting value
		absenceRecord("Jon Hale", "Agri", "UK", 0, false),         // usage without entitlement
		absenceRecord("Ines Falk", "HR", "Germany", 30, true),
	}
	day := time.Date(2026, 2, 9, 0, 0, 0, 0, time.Local)
	daily := []absence.DailyRow{
		annualDay("Mara Voss", day, true),
		annualDay("Mara Voss", day.AddDate(0, 0, 1), true),
		annualDay("Jon Hale", day, true),
	}

	balances, conflicts, quality := ComputeBalances(records, daily, BalanceOptions{})

	if len(balances) != 3 {
		t.Fatalf("want 3 employees, got %d", len(balances))
	}

	byEmployee := make(map[string]EmployeeBalance, len(balances))
	for _, balance := range balances {
		byEmployee[balance.Employee] = balance
	}

	mara := byEmployee["Mara Voss"]
	if mara.EntitledDays != 28 {
		t.Fatalf("conflicting entitlements must resolve to the maximum, got %v", mara.EntitledDays)
	}
	if mara.UsedDays != 2 || mara.RemainingDays != 26 {
		t.Fatalf("unexpected usage/remaining: %+v", mara)
	}

	jon := byEmployee["Jon Hale"]
	if jon.HasEntitlement {
		t.Fatal("Jon Hale has no entitlement on file")
	}
	if jon.UsedDays != 1 {
		t.Fatalf("unexpected usage for Jon Hale: %v", jon.UsedDays)
	}

	if len(conflicts) != 1 || conflicts[0].Employee != "Mara Voss" {
		t.Fatalf("unexpected conflicts: %+v", conflicts)
	}
	if len(conflicts[0].Values) != 2 || conflicts[0].Values[0] != 28 {
		t.Fatalf("conflict values should list distinct values descending: %+v", conflicts[0].Values)
	}

	if quality.Employees != 3 || quality.WithEntitlement != 2 || quality.WithUsage != 2 {
		t.Fatalf("unexpected quality counters: %+v", quality)
	}
	if quality.UsageMissingEntitlement != 1 || quality.ConflictingEntitlements != 1 {
		t.Fatalf("unexpected data-quality counters: %+v", quality)
	}
}

func TestComputeBalancesWeekdayOnly(t *testing.T) {
	t.Parallel()

	records := []absence.Record{absenceRecord("Mara Voss", "Engineering", "UK", 25, true)}
	saturday := time.Date(2026, 2, 14, 0, 0, 0, 0, time.Local)
	daily := []absence.DailyRow{
		annualDay("Mara Voss", saturday.AddDate(0, 0, -1), true),
		annualDay("Mara Voss", saturday, false),
	}

	balances, _, _ := ComputeBalances(records, daily, BalanceOptions{WeekdayOnly: true})

	if balances[0].UsedDays != 1 {
		t.Fatalf("weekend day must not count as usage, got %v", balances[0].UsedDays)
	}
}

func TestRollupBalances(t *testing.T) {
	t.Parallel()

	balances := []EmployeeBalance{
		{Employee: "A", Team: "Engineering", Country: "UK", EntitledDays: 25, HasEntitlement: true, UsedDays: 5},
		{Employee: "B", Team: "Engineering", Country: "UK", UsedDays: 2},
		{Employee: "C", Team: "", Country: "Germany", EntitledDays: 30, HasEntitlement: true},
	}

	byTeam := RollupBalances(balances, ByTeam)

	if len(byTeam) != 2 {
		t.Fatalf("want 2 team groups, got %d", len(byTeam))
	}
	var engineering, unassigned GroupBalance
	for _, group := range byTeam {
		switch group.Group {
		case "Engineering":
			engineering = group
		case "Unassigned":
			unassigned = group
		}
	}
	if engineering.Employees != 2 || engineering.WithEntitlement != 1 || engineering.WithUsage != 2 {
		t.Fatalf("unexpected engineering rollup: %+v", engineering)
	}
	if engineering.UsageMissingEntitlement != 1 {
		t.Fatalf("employee B has usage without entitlement: %+v", engineering)
	}
	if engineering.TotalEntitledDays != 25 || engineering.TotalUsedDays != 7 || engineering.RemainingDays != 18 {
		t.Fatalf("unexpected engineering totals: %+v", engineering)
	}
	if unassigned.Employees != 1 {
		t.Fatalf("blank team must collect under Unassigned: %+v", unassigned)
	}
	// Sorted ascending by remaining days: Engineering (18) before Unassigned (30).
	if byTeam[0].Group != "Engineering" {
		t.Fatalf("unexpected sort order: %+v", byTeam)
	}

	byCountry := RollupBalances(balances, ByCountry)
	if len(byCountry) != 2 {
		t.Fatalf("want 2 country groups, got %d", len(byCountry))
	}
}

func TestWeeklyAbsenceSummary(t *testing.T) {
	t.Parallel()

	week := time.Date(2026, 2, 9, 0, 0, 0, 0, time.Local)
	otherWeek := week.AddDate(0, 0, 7)
	daily := []absence.DailyRow{
		{Team: "Engineering", Category: classify.Annual, WeekStart: week},
		{Team: "Engineering", Category: classify.Annual, WeekStart: week},
		{Team: "Engineering", Category: classify.Medical, WeekStart: week},
		{Team: "HR", Category: classify.Annual, WeekStart: otherWeek},
	}

	summary := WeeklyAbsenceSummary(daily, ByTeam, week)

	if len(summary) != 2 {
		t.Fatalf("want 2 rows, got %d: %+v", len(summary), summary)
	}
	if summary[0].Group != "Engineering" || summary[0].Category != classify.Annual || summary[0].Days != 2 {
		t.Fatalf("unexpected first row: %+v", summary[0])
	}
	if summary[1].Days != 1 {
		t.Fatalf("unexpected second row: %+v", summary[1])
	}
}
