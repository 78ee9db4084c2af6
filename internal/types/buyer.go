package types

// ProjectInfo describes the carbon project behind a retirement record.
type ProjectInfo struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Type string `json:"type"`
}

// BuyerProfile is the aggregated, tagged representation of one distinct
// purchasing entity across all of its retirement records. Profiles are pure
// derivations of (records, registry, date range); nothing here is mutated
// after aggregation.
type BuyerProfile struct {
	// Name is the first non-normalized name observed for this identity.
	Name string `json:"name"`
	// TotalVolume is the sum of normalized per-record volumes, rounded.
	TotalVolume int64 `json:"total_volume"`
	// RetirementCount is the number of records that mapped to this identity.
	RetirementCount int `json:"retirement_count"`
	// LatestDate is the raw date string of the record holding the most recent
	// parsed date, or the first record's date string when no date parses.
	LatestDate string `json:"latest_date"`
	// LatestProject is the project from the record that set LatestDate.
	LatestProject ProjectInfo `json:"latest_project"`
	// ProjectTypes holds up to three distinct project types in the order
	// they were first observed.
	ProjectTypes []string `json:"project_types"`
	// Tags are the display labels derived from the fields above.
	Tags []string `json:"tags"`
	// IsQualified marks profiles meeting the sales-relevance thresholds.
	IsQualified bool `json:"is_qualified"`
}
