package server

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/buyer-intel/internal/query"
	"github.com/jonathan/buyer-intel/internal/types"
)

// parseQueryInt parses an integer query parameter with default and max values
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// buyerQuery holds the parsed view parameters shared by the list and export
// handlers.
type buyerQuery struct {
	registry      types.Registry
	dateRange     types.DateRange
	search        string
	qualifiedOnly bool
	sortKey       string
	sortDesc      bool
}

// parseBuyerQuery resolves the common view parameters. Invalid registry or
// date range values are reported; everything else falls back to defaults.
func (s *Server) parseBuyerQuery(r *http.Request) (buyerQuery, error) {
	q := r.URL.Query()

	registry, err := types.ParseRegistry(valueOr(q.Get("registry"), s.cfg.Registry))
	if err != nil {
		return buyerQuery{}, err
	}
	dateRange, err := types.ParseDateRange(valueOr(q.Get("range"), s.cfg.DateRange))
	if err != nil {
		return buyerQuery{}, err
	}

	// The focus view keeps qualified buyers only; "all" shows everything.
	qualifiedOnly := q.Get("view") != "all"

	sortKey := q.Get("sort")
	switch sortKey {
	case query.SortByVolume, query.SortByEvents, query.SortByLatestDate:
	default:
		sortKey = query.SortByVolume
	}

	return buyerQuery{
		registry:      registry,
		dateRange:     dateRange,
		search:        q.Get("q"),
		qualifiedOnly: qualifiedOnly,
		sortKey:       sortKey,
		sortDesc:      q.Get("dir") != "asc",
	}, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// handleListRegistries lists the supported registries
func (s *Server) handleListRegistries(w http.ResponseWriter, _ *http.Request) {
	registries := make([]map[string]any, 0, len(types.AllRegistries()))
	for _, registry := range types.AllRegistries() {
		registries = append(registries, map[string]any{
			"id":           string(registry),
			"label":        registry.Label(),
			"record_count": s.evaluator.RecordCount(registry),
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"registries": registries,
	})
}

// handleListBuyers returns one page of buyer profiles for the requested view
func (s *Server) handleListBuyers(w http.ResponseWriter, r *http.Request) {
	bq, err := s.parseBuyerQuery(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	page := parseQueryInt(r, "page", 1, 0)
	perPage := parseQueryInt(r, "per_page", query.DefaultPerPage, 100)

	profiles := s.evaluator.Evaluate(bq.registry, bq.dateRange)
	profiles = query.Filter(profiles, bq.search, bq.qualifiedOnly)
	query.Sort(profiles, bq.sortKey, bq.sortDesc)

	total := len(profiles)
	totalVolume := query.TotalVolume(profiles)
	paged, totalPages := query.Page(profiles, page, perPage)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"buyers":       paged,
		"total":        total,
		"total_volume": totalVolume,
		"page":         page,
		"per_page":     perPage,
		"total_pages":  totalPages,
		"registry":     string(bq.registry),
		"range":        string(bq.dateRange),
	})
}

// handleExportBuyers streams the requested view as a CSV download
func (s *Server) handleExportBuyers(w http.ResponseWriter, r *http.Request) {
	bq, err := s.parseBuyerQuery(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	profiles := s.evaluator.Evaluate(bq.registry, bq.dateRange)
	profiles = query.Filter(profiles, bq.search, bq.qualifiedOnly)
	query.Sort(profiles, bq.sortKey, bq.sortDesc)

	fileName := query.ExportFileName(bq.registry, bq.dateRange, time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	if err := query.WriteCSV(w, profiles, bq.registry, bq.dateRange); err != nil {
		// Headers are already out; the truncated body is all we can signal.
		log.Printf("CSV export failed: %v", err)
	}
}
