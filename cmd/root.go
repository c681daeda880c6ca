/*
Copyright © 2026 HM Elements Green

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hmelementsgreen/HRM-Dashboard/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hrmdash",
	Short: "Clean, correct, and aggregate the weekly HR absence and BLIP timesheet exports.",
	Long: `
**********************************************
*               HRM DASHBOARD                *
**********************************************

This CLI reads the weekly HR exports (absence CSV, BLIP timesheet CSV/Excel),
repairs clock anomalies, reconstructs work/break day segments, classifies leave
into the five reporting categories, and writes the cleaned flat files and
aggregate summaries the dashboard layer consumes.

Supported input formats:
- Excel: .xlsx, .xlsm, .xls
- CSV: .csv
`,
	Example: `
  # Create configuration file
  hrmdash config create

  # Process a weekly drop folder (auto-detects the two exports)
  hrmdash ingest ./drops/week-07

  # Clean one absence export explicitly
  hrmdash absence -i "absence report.csv" -o absence_cleaned.csv

  # Correct one BLIP export and append to the cumulative CSV
  hrmdash blip -i "blip export.csv" -o blip_cumulative.csv --append

  # Export the weekly utilisation summary
  hrmdash export --mode weekly --blip blip_cumulative.csv --output weekly.csv
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.hrmdash.yaml, then ./.hrmdash.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log per-row data-quality diagnostics")
}

// newRunLogger builds the diagnostics logger for one command run. Quiet runs
// still surface warnings; --verbose adds progress info.
func newRunLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// loadRunConfig is the per-command config load; commands that can run on
// defaults alone still go through validation.
func loadRunConfig() (*config.Config, error) {
	return config.LoadAndValidate()
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".hrmdash" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hrmdash")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// Defaults cover every key, so a missing file is not fatal.
	if err := viper.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing {
			fmt.Fprintln(os.Stderr, "Warning: could not read config file:", err)
		}
	}
}
