package query

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/buyer-intel/internal/classify"
	"github.com/jonathan/buyer-intel/internal/types"
)

// csvHeader is the column set consumers of the export expect.
var csvHeader = []string{
	"Company Name",
	"Total Volume (tCO2e)",
	"Retirement Events",
	"Last Activity",
	"Recent Project",
	"Project ID",
	"Project Types",
	"Tags",
	"Registry",
	"Date Filter",
}

// WriteCSV serializes a profile list (post filter/sort, pre-pagination) as
// CSV. A leading UTF-8 byte-order mark keeps accented buyer names intact when
// the file is opened in spreadsheet tools.
func WriteCSV(w io.Writer, profiles []types.BuyerProfile, registry types.Registry, dateRange types.DateRange) error {
	if _, err := io.WriteString(w, "\uFEFF"); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, p := range profiles {
		row := []string{
			p.Name,
			strconv.FormatInt(p.TotalVolume, 10),
			strconv.Itoa(p.RetirementCount),
			classify.FormatDate(p.LatestDate),
			p.LatestProject.Name,
			p.LatestProject.ID,
			strings.Join(p.ProjectTypes, ", "),
			strings.Join(p.Tags, ", "),
			registry.Label(),
			dateRange.Label(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFileName builds the conventional file name for a CSV export.
func ExportFileName(registry types.Registry, dateRange types.DateRange, now time.Time) string {
	return fmt.Sprintf("buyer-intelligence-%s-%s-%s.csv", registry, dateRange, now.Format("2006-01-02"))
}
