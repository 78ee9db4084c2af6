package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/buyer-intel/internal/config"
	"github.com/jonathan/buyer-intel/internal/pipeline"
	"github.com/jonathan/buyer-intel/internal/query"
	"github.com/jonathan/buyer-intel/internal/registrydata"
	"github.com/jonathan/buyer-intel/internal/store"
	"github.com/jonathan/buyer-intel/internal/types"
)

// resolveConfig merges the config file (if any) over the environment over the
// built-in defaults, then validates the result.
func resolveConfig() (config.Config, error) {
	base := config.FromEnv()

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return config.Config{}, err
		}
		base = fileCfg.MergeWithDefaults(base)
	}

	cfg := base.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadRegistry loads one registry's records from the database when configured,
// otherwise from the conventional export file in the data directory.
func loadRegistry(ctx context.Context, cfg config.Config, registry types.Registry) ([]types.RawRecord, error) {
	if cfg.DatabaseURL != "" {
		st, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.LoadRecords(ctx, registry)
	}
	return registrydata.LoadDir(cfg.DataDir, registry)
}

// newEvaluator builds an evaluator over every registry collection that can be
// loaded. A registry with no data is skipped with a warning rather than
// failing the command; a single-registry command fails later when it finds no
// records.
func newEvaluator(ctx context.Context, cfg config.Config) (*pipeline.Evaluator, error) {
	evaluator := pipeline.New(time.Now())

	var st *store.Store
	if cfg.DatabaseURL != "" {
		var err error
		st, err = store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer st.Close()
	}

	loaded := 0
	for _, registry := range types.AllRegistries() {
		var records []types.RawRecord
		var err error
		if st != nil {
			records, err = st.LoadRecords(ctx, registry)
		} else {
			records, err = registrydata.LoadDir(cfg.DataDir, registry)
		}
		if err != nil {
			log.Printf("Skipping %s: %v", registry.Label(), err)
			continue
		}
		evaluator.SetCollection(registry, records)
		loaded++
	}
	if loaded == 0 {
		return nil, fmt.Errorf("no registry data could be loaded")
	}
	return evaluator, nil
}

// viewFlags are the filter/sort parameters shared by analyze and export.
type viewFlags struct {
	registry  string
	dateRange string
	search    string
	view      string
	sortKey   string
	sortDir   string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.registry, "registry", "", "Registry to analyze: verra or car (default from config)")
	cmd.Flags().StringVar(&f.dateRange, "range", "", "Date filter: all, 12m, 24m or a four-digit year (default from config)")
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "Substring filter over buyer names and project types")
	cmd.Flags().StringVar(&f.view, "view", "focus", "View: focus (qualified buyers only) or all")
	cmd.Flags().StringVar(&f.sortKey, "sort", query.SortByVolume, "Sort key: totalVolume, retirementCount or latestDate")
	cmd.Flags().StringVar(&f.sortDir, "dir", "desc", "Sort direction: asc or desc")
}

// buildView evaluates and shapes the profile list described by the flags.
func buildView(ctx context.Context, cfg config.Config, f viewFlags) ([]types.BuyerProfile, types.Registry, types.DateRange, error) {
	registry, err := types.ParseRegistry(valueOr(f.registry, cfg.Registry))
	if err != nil {
		return nil, "", "", err
	}
	dateRange, err := types.ParseDateRange(valueOr(f.dateRange, cfg.DateRange))
	if err != nil {
		return nil, "", "", err
	}

	records, err := loadRegistry(ctx, cfg, registry)
	if err != nil {
		return nil, "", "", err
	}

	evaluator := pipeline.New(time.Now())
	evaluator.SetCollection(registry, records)

	profiles := evaluator.Evaluate(registry, dateRange)
	profiles = query.Filter(profiles, f.search, f.view != "all")
	query.Sort(profiles, f.sortKey, f.sortDir != "asc")

	return profiles, registry, dateRange, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// writeExportFile writes a CSV export next to the caller's working directory
// unless an explicit path is given. Returns the path written.
func writeExportFile(outPath string, profiles []types.BuyerProfile, registry types.Registry, dateRange types.DateRange) (string, error) {
	if outPath == "" {
		outPath = query.ExportFileName(registry, dateRange, time.Now())
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := query.WriteCSV(f, profiles, registry, dateRange); err != nil {
		return "", err
	}
	return outPath, nil
}
