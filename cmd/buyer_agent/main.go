// Package main provides the buyer_agent CLI for carbon retirement buyer
// intelligence.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "buyer_agent",
	Short: "Carbon retirement buyer intelligence",
	Long:  "buyer_agent turns noisy carbon registry retirement exports into deduplicated buyer profiles with volumes, activity tags and qualification flags, via CLI commands or a REST API.",
}

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to JSON config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
