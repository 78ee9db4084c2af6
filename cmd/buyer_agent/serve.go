package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/buyer-intel/internal/server"
	"github.com/jonathan/buyer-intel/internal/types"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes buyer profiles, filtering, sorting, pagination and CSV export over REST.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	evaluator, err := newEvaluator(ctx, cfg)
	if err != nil {
		return err
	}

	// Precompute the common views so first requests hit the cache.
	warmRanges := []types.DateRange{types.DateRangeAll, types.DateRange12M, types.DateRange24M}
	if err := evaluator.Warm(ctx, warmRanges); err != nil {
		return fmt.Errorf("failed to warm caches: %w", err)
	}

	srv, err := server.New(cfg, evaluator)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
