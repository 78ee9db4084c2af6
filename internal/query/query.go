// Package query provides the view-facing operations over finished buyer
// profiles: free-text filtering, sorting, pagination and CSV serialization.
// It consumes the pipeline's output and never feeds back into it.
package query

import (
	"sort"
	"strings"

	"github.com/jonathan/buyer-intel/internal/classify"
	"github.com/jonathan/buyer-intel/internal/types"
)

// Sort keys accepted by Sort.
const (
	SortByVolume     = "totalVolume"
	SortByEvents     = "retirementCount"
	SortByLatestDate = "latestDate"
)

// DefaultPerPage is the page size used when the caller does not choose one.
const DefaultPerPage = 10

// Filter returns the profiles matching a case-insensitive substring search
// over buyer names and project types. With qualifiedOnly set, unqualified
// profiles are dropped regardless of the search.
func Filter(profiles []types.BuyerProfile, search string, qualifiedOnly bool) []types.BuyerProfile {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]types.BuyerProfile, 0, len(profiles))
	for _, p := range profiles {
		if qualifiedOnly && !p.IsQualified {
			continue
		}
		if needle != "" && !matches(p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p types.BuyerProfile, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	for _, t := range p.ProjectTypes {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// Sort orders profiles in place by the given key. The sort is stable, so
// profiles that compare equal keep their deterministic aggregation order.
// Unknown keys sort by total volume.
func Sort(profiles []types.BuyerProfile, key string, desc bool) {
	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := sortValue(profiles[i], key), sortValue(profiles[j], key)
		if desc {
			return a > b
		}
		return a < b
	})
}

func sortValue(p types.BuyerProfile, key string) float64 {
	switch key {
	case SortByEvents:
		return float64(p.RetirementCount)
	case SortByLatestDate:
		if t, ok := classify.ParseDate(p.LatestDate); ok {
			return float64(t.UnixMilli())
		}
		return 0
	default:
		return float64(p.TotalVolume)
	}
}

// Page slices one page out of a profile list. Pages are 1-based; out-of-range
// pages clamp to the nearest valid page. The second return value is the total
// page count, which is at least 1 even for an empty list.
func Page(profiles []types.BuyerProfile, page, perPage int) ([]types.BuyerProfile, int) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	totalPages := (len(profiles) + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if start > len(profiles) {
		start = len(profiles)
	}
	if end > len(profiles) {
		end = len(profiles)
	}
	return profiles[start:end], totalPages
}

// TotalVolume sums the volume over a profile list.
func TotalVolume(profiles []types.BuyerProfile) int64 {
	var total int64
	for _, p := range profiles {
		total += p.TotalVolume
	}
	return total
}
