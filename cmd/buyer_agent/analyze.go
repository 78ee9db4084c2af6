package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/buyer-intel/internal/classify"
	"github.com/jonathan/buyer-intel/internal/query"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Resolve buyers from a registry export and print the top profiles",
	Long:  "Runs the full resolution pipeline over one registry's retirement records and prints the resulting buyer profiles as a table.",
	RunE:  runAnalyze,
}

var (
	analyzeFlags viewFlags
	analyzeTop   int
)

func init() {
	analyzeFlags.register(analyzeCmd)
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 25, "Number of buyers to print (0 for all)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	profiles, registry, dateRange, err := buildView(cmd.Context(), cfg, analyzeFlags)
	if err != nil {
		return err
	}

	fmt.Printf("%s / %s: %d buyers, %d tCO2e total\n\n",
		registry.Label(), dateRange.Label(), len(profiles), query.TotalVolume(profiles))

	shown := profiles
	if analyzeTop > 0 && len(shown) > analyzeTop {
		shown = shown[:analyzeTop]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BUYER\tVOLUME\tEVENTS\tLAST ACTIVITY\tTAGS")
	for _, p := range shown {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			p.Name, p.TotalVolume, p.RetirementCount,
			classify.FormatDate(p.LatestDate), strings.Join(p.Tags, ", "))
	}
	return w.Flush()
}
