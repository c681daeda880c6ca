package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hmelementsgreen/HRM-Dashboard/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  hrmdash config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file found; built-in defaults in effect.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("policy.unpaid_break_minutes: %d\n", cfg.Policy.UnpaidBreakMinutes)
		fmt.Printf("policy.short_shift_exempt_minutes: %d\n", cfg.Policy.ShortShiftExemptMinutes)
		fmt.Printf("policy.long_work_flag_hours: %g\n", cfg.Policy.LongWorkFlagHours)
		fmt.Printf("policy.expected_daily_hours: %g\n", cfg.Policy.ExpectedDailyHours)
		fmt.Printf("policy.exclude_weekends: %t\n", cfg.Policy.ExcludeWeekends)
		fmt.Printf("ingest.blip_append: %t\n", cfg.Ingest.BlipAppend)
		fmt.Printf("ingest.blip_cumulative_path: %s\n", cfg.Ingest.BlipCumulativePath)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
