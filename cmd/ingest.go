package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmelementsgreen/HRM-Dashboard/ingest"
)

var (
	ingestAbsenceName string
	ingestBlipName    string
	ingestAbsenceOnly bool
	ingestBlipOnly    bool
	ingestNoAppend    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <folder>",
	Short: "Process a weekly drop folder: clean the absence export and correct the BLIP export",
	Long: `Resolve the two exports inside the folder by name (the absence file contains
"absence", the BLIP file "blip" or "timesheet"), run both cleanup pipelines, and
write the results to a sibling <folder>_output directory.

The absence output fully replaces its file each run. The BLIP output appends to
the cumulative CSV by default; --no-append writes a standalone spreadsheet
instead. Zero or multiple candidate files abort the run with the candidates
named; disambiguate with --absence-name/--blip-name.`,
	Example: `
  # Process the weekly drop
  hrmdash ingest ./drops/week-07

  # Only the absence pipeline
  hrmdash ingest ./drops/week-07 --absence-only

  # Ambiguous folder: name the BLIP file explicitly
  hrmdash ingest ./drops/week-07 --blip-name "blip week 7.csv"

  # Standalone spreadsheet instead of the cumulative CSV
  hrmdash ingest ./drops/week-07 --no-append
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}

		service := ingest.NewService(newRunLogger(), cfg.ReconcilePolicy())
		result, err := service.RunFolder(args[0], ingest.FolderOptions{
			AbsenceName:    ingestAbsenceName,
			BlipName:       ingestBlipName,
			AbsenceOnly:    ingestAbsenceOnly,
			BlipOnly:       ingestBlipOnly,
			Append:         cfg.Ingest.BlipAppend && !ingestNoAppend,
			CumulativePath: cfg.Ingest.BlipCumulativePath,
		})
		if err != nil {
			return err
		}

		if result.Absence != nil {
			printAbsenceSummary(result.Absence)
		}
		if result.Blip != nil {
			printBlipSummary(result.Blip)
		}
		return nil
	},
}

func printAbsenceSummary(result *ingest.AbsenceResult) {
	fmt.Printf("Absence cleanup completed. Rows: %d, Duplicates removed: %d, Others after pass 1: %d, Others after pass 2: %d, File: %s\n",
		result.RawRows, result.DuplicatesRemoved, result.OthersAfterPass1, result.OthersAfterPass2, result.Output)
}

func printBlipSummary(result *ingest.BlipResult) {
	c := result.Correction
	fmt.Printf("BLIP correction completed. Events: %d, Repaired: %d (overnight: %d, negative duration: %d, negative worked: %d, inconsistent: %d), Incomplete: %d, Location mismatches: %d\n",
		c.Events, c.Corrected, c.Overnight, c.NegDuration, c.NegWorked, c.Inconsistent, c.Incomplete, c.Mismatched)
	if result.Appended {
		fmt.Printf("Cumulative file %s now holds %d rows (%d replaced).\n", result.Output, result.CumulativeRows, result.Deduped)
	} else {
		fmt.Printf("Corrected events written to %s.\n", result.Output)
	}
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestAbsenceName, "absence-name", "", "Explicit absence file name inside the folder (overrides detection)")
	ingestCmd.Flags().StringVar(&ingestBlipName, "blip-name", "", "Explicit BLIP file name inside the folder (overrides detection)")
	ingestCmd.Flags().BoolVar(&ingestAbsenceOnly, "absence-only", false, "Run only the absence pipeline")
	ingestCmd.Flags().BoolVar(&ingestBlipOnly, "blip-only", false, "Run only the BLIP pipeline")
	ingestCmd.Flags().BoolVar(&ingestNoAppend, "no-append", false, "Write a standalone BLIP spreadsheet instead of appending to the cumulative CSV")

	ingestCmd.MarkFlagsMutuallyExclusive("absence-only", "blip-only")
}
