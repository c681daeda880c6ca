package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hmelementsgreen/HRM-Dashboard/ingest"
)

var (
	blipInput  string
	blipOutput string
	blipAppend bool
)

var blipCmd = &cobra.Command{
	Use:   "blip",
	Short: "Correct one BLIP timesheet export",
	Long: `Read one BLIP export (the leading note line is skipped), repair clock
anomalies (overnight rollovers, negative reported durations), and write the
corrected rows.

With --append the corrected rows merge into the cumulative CSV at the output
path: one row survives per (first name, last name, clock-in day, blip type),
and a re-run with a corrected export replaces the stale rows. Append mode
requires a .csv output.`,
	Example: `
  # Standalone corrected spreadsheet
  hrmdash blip -i "blip export week 7.csv" -o blip_week7.xlsx

  # Merge into the cumulative CSV
  hrmdash blip -i "blip export week 7.csv" -o blip_cumulative.csv --append
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}

		service := ingest.NewService(newRunLogger(), cfg.ReconcilePolicy())
		result, err := service.RunBlip(blipInput, blipOutput, blipAppend)
		if err != nil {
			return err
		}

		printBlipSummary(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(blipCmd)

	blipCmd.Flags().StringVarP(&blipInput, "input", "i", "", "BLIP export file path")
	blipCmd.Flags().StringVarP(&blipOutput, "output", "o", "", "Output file path (.csv or .xlsx; --append requires .csv)")
	blipCmd.Flags().BoolVar(&blipAppend, "append", false, "Merge into the cumulative CSV at the output path")

	_ = blipCmd.MarkFlagRequired("input")
	_ = blipCmd.MarkFlagRequired("output")
}
