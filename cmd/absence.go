package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hmelementsgreen/HRM-Dashboard/ingest"
)

var (
	absenceInput  string
	absenceOutput string
)

var absenceCmd = &cobra.Command{
	Use:   "absence",
	Short: "Clean one absence export: dedupe, classify leave, map organisations",
	Long: `Read one absence CSV/Excel export, drop exact duplicate rows, classify every
row into the five reporting categories (unclassifiable rows stay "Others"),
map teams to organisations, and write the cleaned file. The output is a full
replacement, not an append.`,
	Example: `
  # Clean one export to CSV
  hrmdash absence -i "absence report feb.csv" -o absence_cleaned.csv

  # Excel output
  hrmdash absence -i "absence report feb.csv" -o absence_cleaned.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}

		service := ingest.NewService(newRunLogger(), cfg.ReconcilePolicy())
		result, err := service.RunAbsence(absenceInput, absenceOutput)
		if err != nil {
			return err
		}

		printAbsenceSummary(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(absenceCmd)

	absenceCmd.Flags().StringVarP(&absenceInput, "input", "i", "", "Absence export file path")
	absenceCmd.Flags().StringVarP(&absenceOutput, "output", "o", "", "Cleaned output file path (.csv or .xlsx)")

	_ = absenceCmd.MarkFlagRequired("input")
	_ = absenceCmd.MarkFlagRequired("output")
}
