package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export buyer profiles as CSV",
	Long:  "Runs the resolution pipeline over one registry's retirement records and writes the resulting buyer profiles to a CSV file with a UTF-8 byte-order mark.",
	RunE:  runExport,
}

var (
	exportFlags   viewFlags
	exportOutFile string
)

func init() {
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutFile, "out", "o", "", "Output file path (default buyer-intelligence-<registry>-<range>-<date>.csv)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	profiles, registry, dateRange, err := buildView(cmd.Context(), cfg, exportFlags)
	if err != nil {
		return err
	}

	outPath, err := writeExportFile(exportOutFile, profiles, registry, dateRange)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Exported %d buyers\n", len(profiles))
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", outPath)

	return nil
}
