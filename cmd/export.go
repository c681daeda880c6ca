package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmelementsgreen/HRM-Dashboard/absence"
	"github.com/hmelementsgreen/HRM-Dashboard/aggregate"
	"github.com/hmelementsgreen/HRM-Dashboard/config"
	"github.com/hmelementsgreen/HRM-Dashboard/importer"
	"github.com/hmelementsgreen/HRM-Dashboard/internal/timeutil"
	"github.com/hmelementsgreen/HRM-Dashboard/output"
	"github.com/hmelementsgreen/HRM-Dashboard/reconcile"
	"github.com/hmelementsgreen/HRM-Dashboard/timesheet"
)

var (
	exportMode    string
	exportFormat  string
	exportOutput  string
	exportBlip    string
	exportAbsence string
	exportBy      string
	exportWeek    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export aggregate summaries from the cleaned flat files to CSV/Excel",
	Long: `Recompute aggregate summaries from the cleaned flat files and write them out.

Modes:
- daily/weekly/monthly: worked-hours utilisation over the corrected BLIP rows
  (--blip), against the expected-hours baseline from configuration
- segments: per-employee-day Work/Break totals rebuilt from the corrected
  BLIP rows (--blip), with long days flagged per the configured threshold
- balance: annual-leave entitlement vs usage from the cleaned absence rows
  (--absence); --by employee|team|country selects the grouping
- weekly-absence: absence-day counts for one week from the cleaned absence
  rows (--absence), grouped by --by team|country; --week picks the week
  (any date inside it), defaulting to the latest week on file

Output format can be selected explicitly via --format or inferred from the
--output extension.`,
	Example: `
  # Weekly utilisation from the cumulative BLIP CSV
  hrmdash export --mode weekly --blip blip_cumulative.csv --output weekly.csv

  # Monthly utilisation to Excel
  hrmdash export --mode monthly --blip blip_cumulative.csv --output monthly.xlsx

  # Daily Work/Break segment totals with long days flagged
  hrmdash export --mode segments --blip blip_cumulative.csv --output segments.csv

  # Per-employee leave balances
  hrmdash export --mode balance --absence absence_cleaned.csv --output balances.csv

  # Balances rolled up by country
  hrmdash export --mode balance --by country --absence absence_cleaned.csv --output by-country.csv

  # This week's absence days per team
  hrmdash export --mode weekly-absence --absence absence_cleaned.csv --output week.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		mode := strings.TrimSpace(strings.ToLower(exportMode))
		switch mode {
		case "daily", "weekly", "monthly":
			return exportUtilisation(cfg, mode, format)
		case "segments":
			return exportSegments(cfg, format)
		case "balance":
			return exportBalance(cfg, format)
		case "weekly-absence":
			return exportWeeklyAbsence(format)
		default:
			return fmt.Errorf("unsupported export mode: %s (supported: daily, weekly, monthly, segments, balance, weekly-absence)", exportMode)
		}
	},
}

func exportUtilisation(cfg *config.Config, mode, format string) error {
	if exportBlip == "" {
		return fmt.Errorf("mode %s requires --blip", mode)
	}
	events, err := readCleanedBlip(exportBlip, cfg)
	if err != nil {
		return err
	}

	policy := aggregate.UtilisationPolicy{
		ExpectedDailyHours: cfg.Policy.ExpectedDailyHours,
		ExcludeWeekends:    cfg.Policy.ExcludeWeekends,
	}

	var (
		label     string
		summaries []aggregate.PeriodSummary
	)
	switch mode {
	case "daily":
		label, summaries = "Date", aggregate.DailyUtilisation(events, policy)
	case "weekly":
		label, summaries = "Week", aggregate.WeeklyUtilisation(events, policy)
	case "monthly":
		label, summaries = "Month", aggregate.MonthlyUtilisation(events, policy)
	}

	if err := output.WriteDocument(exportOutput, format, output.UtilisationDocument(label, summaries)); err != nil {
		return err
	}
	fmt.Printf("Export completed. Periods: %d, Mode: %s, Format: %s, File: %s\n", len(summaries), mode, format, exportOutput)
	return nil
}

func exportSegments(cfg *config.Config, format string) error {
	if exportBlip == "" {
		return fmt.Errorf("mode segments requires --blip")
	}
	events, err := readCleanedBlip(exportBlip, cfg)
	if err != nil {
		return err
	}

	summaries := aggregate.SummarizeDaySegments(events, cfg.ReconcilePolicy())
	longDays := 0
	for _, summary := range summaries {
		if summary.LongDay {
			longDays++
		}
	}

	if err := output.WriteDocument(exportOutput, format, output.SegmentDocument(summaries)); err != nil {
		return err
	}
	fmt.Printf("Export completed. Employee-days: %d, Long days: %d, Mode: segments, Format: %s, File: %s\n",
		len(summaries), longDays, format, exportOutput)
	return nil
}

func exportWeeklyAbsence(format string) error {
	if exportAbsence == "" {
		return fmt.Errorf("mode weekly-absence requires --absence")
	}
	records, err := readCleanedAbsence(exportAbsence)
	if err != nil {
		return err
	}
	daily := absence.ExpandDaily(records)

	weekStart, err := resolveWeekStart(daily, exportWeek)
	if err != nil {
		return err
	}

	key, groupLabel := aggregate.ByTeam, "Team"
	switch strings.ToLower(strings.TrimSpace(exportBy)) {
	case "", "employee", "team":
	case "country":
		key, groupLabel = aggregate.ByCountry, "Country"
	default:
		return fmt.Errorf("unsupported --by value for weekly-absence: %s (supported: team, country)", exportBy)
	}

	counts := aggregate.WeeklyAbsenceSummary(daily, key, weekStart)
	doc := output.WeeklyAbsenceDocument(groupLabel, weekStart.Format("2006-01-02"), counts)
	if err := output.WriteDocument(exportOutput, format, doc); err != nil {
		return err
	}
	fmt.Printf("Export completed. Rows: %d, Week: %s, Mode: weekly-absence, Format: %s, File: %s\n",
		len(counts), weekStart.Format("2006-01-02"), format, exportOutput)
	return nil
}

// resolveWeekStart snaps an explicit --week value to its Monday, or falls
// back to the latest week present in the expanded absence days.
func resolveWeekStart(daily []absence.DailyRow, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) != "" {
		day, ok := timeutil.ParseBlipDate(raw)
		if !ok {
			return time.Time{}, fmt.Errorf("unparseable --week value: %s", raw)
		}
		return timeutil.WeekStart(day), nil
	}
	var latest time.Time
	for _, row := range daily {
		if row.WeekStart.After(latest) {
			latest = row.WeekStart
		}
	}
	if latest.IsZero() {
		return time.Time{}, fmt.Errorf("no absence days on file to summarise")
	}
	return latest, nil
}

func exportBalance(cfg *config.Config, format string) error {
	if exportAbsence == "" {
		return fmt.Errorf("mode balance requires --absence")
	}
	records, err := readCleanedAbsence(exportAbsence)
	if err != nil {
		return err
	}

	daily := absence.ExpandDaily(records)
	balances, conflicts, quality := aggregate.ComputeBalances(records, daily, aggregate.BalanceOptions{
		WeekdayOnly: cfg.Policy.ExcludeWeekends,
	})
	for _, conflict := range conflicts {
		fmt.Printf("Warning: %s has conflicting entitlements on file: %v\n", conflict.Employee, conflict.Values)
	}

	var doc output.Document
	rows := 0
	switch strings.ToLower(strings.TrimSpace(exportBy)) {
	case "", "employee":
		doc, rows = output.BalanceDocument(balances), len(balances)
	case "team":
		groups := aggregate.RollupBalances(balances, aggregate.ByTeam)
		doc, rows = output.RollupDocument("Team", groups), len(groups)
	case "country":
		groups := aggregate.RollupBalances(balances, aggregate.ByCountry)
		doc, rows = output.RollupDocument("Country", groups), len(groups)
	default:
		return fmt.Errorf("unsupported --by value: %s (supported: employee, team, country)", exportBy)
	}

	if err := output.WriteDocument(exportOutput, format, doc); err != nil {
		return err
	}
	fmt.Printf("Export completed. Rows: %d, Mode: balance, Format: %s, File: %s\n", rows, format, exportOutput)
	fmt.Printf("Quality: %d employees, %d with entitlement, %d with usage, %d using leave without an entitlement on file\n",
		quality.Employees, quality.WithEntitlement, quality.WithUsage, quality.UsageMissingEntitlement)
	return nil
}

// readCleanedBlip reads a cleaned BLIP file and re-runs the corrector, a
// no-op on already-clean rows. The CSV shape carries no leading note line;
// the spreadsheet shape does.
func readCleanedBlip(path string, cfg *config.Config) ([]timesheet.Event, error) {
	skip := 0
	if detectExportFormat(path) == "excel" {
		skip = 1
	}
	reader, err := importer.ReaderForPath(path, skip)
	if err != nil {
		return nil, err
	}
	table, err := reader.Read(path)
	if err != nil {
		return nil, err
	}
	events, err := importer.MapBlipEvents(table)
	if err != nil {
		return nil, err
	}
	events, _ = reconcile.CorrectEvents(events, cfg.ReconcilePolicy(), false)
	return events, nil
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func readCleanedAbsence(path string) ([]absence.Record, error) {
	reader, err := importer.ReaderForPath(path, 0)
	if err != nil {
		return nil, err
	}
	table, err := reader.Read(path)
	if err != nil {
		return nil, err
	}
	records, err := importer.MapAbsenceRecords(table)
	if err != nil {
		return nil, err
	}
	absence.ClassifyRecords(records)
	return records, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "", "Export mode: daily|weekly|monthly|segments|balance|weekly-absence")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportBlip, "blip", "", "Cleaned/cumulative BLIP file (daily/weekly/monthly/segments modes)")
	exportCmd.Flags().StringVar(&exportAbsence, "absence", "", "Cleaned absence file (balance/weekly-absence modes)")
	exportCmd.Flags().StringVar(&exportBy, "by", "employee", "Grouping: employee|team|country (balance), team|country (weekly-absence)")
	exportCmd.Flags().StringVar(&exportWeek, "week", "", "Week to summarise as any date inside it (weekly-absence mode; defaults to the latest week on file)")

	_ = exportCmd.MarkFlagRequired("mode")
	_ = exportCmd.MarkFlagRequired("output")
}
