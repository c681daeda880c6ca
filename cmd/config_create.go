package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a starter configuration file with the default cleanup policy.",
	Long: `Write a starter configuration file seeded with the default cleanup policy:
the unpaid break deducted from worked time, the short-shift length exempt
from that deduction, the worked-hours threshold that flags long days, the
expected daily hours used as the utilisation baseline, and whether BLIP runs
append to the cumulative CSV.

An existing configuration file is left untouched.`,
	Example: `
  # Write $HOME/.hrmdash.yaml with the defaults, then adjust it
  hrmdash config create
  hrmdash config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig()
	},
}

func saveDefaultConfig() error {
	configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	created, err := ensureConfigFileWithTemplate(configPath)
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("New config file created at: %s\n", configPath)
		return nil
	}

	fmt.Printf("Config file already exists at: %s\n", configPath)
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
