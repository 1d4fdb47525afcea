// Package cmd implements the unbudget CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"unbudget/internal/config"
	"unbudget/internal/pipeline"
	"unbudget/internal/store"
	"unbudget/internal/treemap"

	"github.com/spf13/cobra"
)

var (
	flagData    string
	flagDetails string
	flagNoCache bool
	flagQuiet   bool
	flagMode    string
)

var rootCmd = &cobra.Command{
	Use:   "unbudget",
	Short: "UN Budget Explorer CLI",
	Long:  "Explore the UN 2026 proposed programme budget: parts, sections, entities, and layouts.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cfg, _ := config.Load()

	rootCmd.PersistentFlags().StringVarP(&flagData, "data", "d", cfg.Data.Budget, "Budget dataset path or URL")
	rootCmd.PersistentFlags().StringVar(&flagDetails, "details", cfg.Data.Details, "Narrative dataset path or URL")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, always fetch")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVarP(&flagMode, "mode", "m", "", "Split policy: aspect, longer-axis, or row-packing")
}

// loadBudget is the shared data loading path used by all commands.
// Uses the SQLite cache as an offline fallback when the fetch fails.
func loadBudget(ctx context.Context) (*pipeline.LoadResult, error) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loading %s...\n", flagData)
	}

	var cache *store.Cache
	if !flagNoCache {
		c, err := store.Open(store.DefaultPath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, fetching without fallback\n")
			}
		} else {
			cache = c
			defer cache.Close()
		}
	}

	result, err := pipeline.Load(ctx, flagData, cache)
	if err != nil {
		return nil, err
	}

	if !flagQuiet {
		if result.FromCache {
			fmt.Fprintf(os.Stderr, "  Fetch failed, using cached copy\n")
		}
		if result.Malformed > 0 {
			fmt.Fprintf(os.Stderr, "  Skipped %d malformed rows\n", result.Malformed)
		}
	}

	return result, nil
}

// splitPolicy maps the --mode flag to a partitioner policy.
func splitPolicy() (treemap.SplitPolicy, error) {
	switch flagMode {
	case "", "aspect":
		return treemap.AspectThreshold, nil
	case "longer-axis":
		return treemap.LongerAxis, nil
	case "row-packing", "compact":
		return treemap.RowPacking, nil
	}
	return treemap.AspectThreshold, fmt.Errorf("unknown mode %q (want aspect, longer-axis, or row-packing)", flagMode)
}
