package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hrmdash configuration file values.",
	Long: `Create, edit and display the hrmdash configuration file.

The configuration stores the correction and aggregation policy plus ingest
behaviour:
- policy.unpaid_break_minutes / short_shift_exempt_minutes / long_work_flag_hours
- policy.expected_daily_hours / exclude_weekends
- ingest.blip_append / blip_cumulative_path`,
	Example: `
  # Create default config in $HOME/.hrmdash.yaml
  hrmdash config create

  # Show active config and source file
  hrmdash config show

  # Open active config in editor (creates example if missing)
  hrmdash config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
