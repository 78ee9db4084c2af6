package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/buyer-intel/internal/registrydata"
	"github.com/jonathan/buyer-intel/internal/schemas"
	"github.com/jonathan/buyer-intel/internal/store"
	"github.com/jonathan/buyer-intel/internal/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load a registry export file into the database",
	Long:  "Validates a registry retirement export against its JSON Schema, then stores the raw records in PostgreSQL preserving their order for later analysis.",
	RunE:  runIngest,
}

var (
	ingestRegistry string
	ingestInFile   string
	ingestReplace  bool
)

func init() {
	ingestCmd.Flags().StringVar(&ingestRegistry, "registry", "", "Registry the export belongs to: verra or car (required)")
	ingestCmd.Flags().StringVarP(&ingestInFile, "in", "i", "", "Path to the export JSON file (default the conventional file in the data directory)")
	ingestCmd.Flags().BoolVar(&ingestReplace, "replace", false, "Delete the registry's stored records before inserting")

	if err := ingestCmd.MarkFlagRequired("registry"); err != nil {
		panic(fmt.Sprintf("failed to mark registry flag as required: %v", err))
	}

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for ingest")
	}

	registry, err := types.ParseRegistry(ingestRegistry)
	if err != nil {
		return err
	}

	inFile := ingestInFile
	if inFile == "" {
		inFile = filepath.Join(cfg.DataDir, registrydata.FileForRegistry(registry))
	}

	// Schema violations are reported but do not block the ingest: the
	// pipeline tolerates malformed records, and exports routinely carry
	// fields the schema has never heard of.
	if schemaPath := schemas.ResolveSchemaPath(schemas.RetirementsSchemaPath); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, inFile); err != nil {
			log.Printf("Schema validation warning: %v", err)
		}
	} else {
		log.Printf("Schema %s not found, skipping validation", schemas.RetirementsSchemaPath)
	}

	records, err := registrydata.LoadFile(inFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	if ingestReplace {
		deleted, err := st.DeleteRegistry(ctx, registry)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Deleted %d existing records\n", deleted)
	}

	batchID := uuid.New()
	saved, err := st.SaveRecords(ctx, registry, batchID, records)
	if err != nil {
		return fmt.Errorf("ingest failed after %d records: %w", saved, err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Ingested %d records for %s\n", saved, registry.Label())
	_, _ = fmt.Fprintf(os.Stdout, "Batch: %s\n", batchID)

	return nil
}
