package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"unbudget/internal/api"
	"unbudget/internal/config"
	"unbudget/internal/details"
	"unbudget/internal/pipeline"
	"unbudget/internal/store"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the budget layouts over HTTP",
	Long: "Load the dataset once and serve treemap, lollipop, and narrative\n" +
		"endpoints as JSON for web frontends.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&flagListen, "listen", "l", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	result, err := loadBudget(cmd.Context())
	if err != nil {
		return err
	}

	// Narratives are optional for the server; endpoints degrade without them.
	var records []details.Record
	if flagDetails != "" {
		var cache *store.Cache
		if !flagNoCache {
			if c, err := store.Open(store.DefaultPath()); err == nil {
				cache = c
				defer cache.Close()
			}
		}
		data, fromCache, err := pipeline.LoadDetails(cmd.Context(), flagDetails, cache)
		if err != nil {
			logger.Warn("narratives unavailable", "ref", flagDetails, "err", err)
		} else {
			records, err = details.Decode(data)
			if err != nil {
				logger.Warn("narratives unreadable", "ref", flagDetails, "err", err)
			} else if fromCache {
				logger.Info("narratives loaded from cache", "records", len(records))
			}
		}
	}

	listen := flagListen
	if listen == "" {
		cfg, _ := config.Load()
		listen = cfg.Server.Listen
	}

	srv := api.NewServer(result.Tree, records, logger)
	logger.Info("serving", "addr", listen, "parts", len(result.Tree.Parts))

	if err := http.ListenAndServe(listen, srv); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
