// Package cmd implements the fintrack CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default days:  %d\n", cfg.General.DefaultDays)
	fmt.Printf("    Recent days:   %d\n", cfg.General.RecentDays)
	fmt.Printf("    Data file:     %s\n", cfg.General.DataFile)
	if flagFile != "" {
		fmt.Printf("    (overridden by --file: %s)\n", flagFile)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Printf("    Level: %s\n", cfg.Logging.Level)
	fmt.Println()

	fmt.Printf("  Environment overrides: %s, %s, %s\n",
		config.EnvDataFile, config.EnvDefaultDays, config.EnvLogLevel)
	fmt.Println("  Run `fintrack setup` to reconfigure.")
	return nil
}
