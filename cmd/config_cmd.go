package cmd

import (
	"fmt"

	"unbudget/internal/config"
	"unbudget/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Data]")
	fmt.Printf("    Budget:  %s\n", cfg.Data.Budget)
	fmt.Printf("    Details: %s\n", cfg.Data.Details)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:   %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Compact: %v\n", cfg.Appearance.Compact)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Listen: %s\n", cfg.Server.Listen)
	fmt.Println()

	fmt.Printf("  Cache: %s\n", store.DefaultPath())
	return nil
}
