// Package aggregate folds a registry's record collection into one tagged
// profile per distinct buyer identity.
package aggregate

import (
	"math"
	"time"

	"github.com/jonathan/buyer-intel/internal/classify"
	"github.com/jonathan/buyer-intel/internal/extraction"
	"github.com/jonathan/buyer-intel/internal/tagging"
	"github.com/jonathan/buyer-intel/internal/types"
)

// maxDisplayTypes caps how many distinct project types a profile exposes.
const maxDisplayTypes = 3

// accum is the mutable state for one buyer while records are folded in.
type accum struct {
	name          string
	totalVolume   float64
	count         int
	latestDateStr string
	latestDate    time.Time
	hasLatestDate bool
	latestProject types.ProjectInfo
	projectTypes  *OrderedSet
}

// BuildProfiles folds a full record collection into buyer profiles. It is a
// pure function of its inputs: records are processed in input order, ties on
// equal dates keep the earliest-processed record, and the output order is the
// order in which each identity was first seen, never map iteration order.
// The reference instant anchors the trailing date windows and the Active tag.
func BuildProfiles(records []types.RawRecord, registry types.Registry, dateRange types.DateRange, ref time.Time) []types.BuyerProfile {
	acc := extraction.ForRegistry(registry)

	profiles := make(map[string]*accum)
	var order []string

	for _, r := range records {
		if !classify.WithinRange(r, acc, dateRange, ref) {
			continue
		}
		name := extraction.Identity(r, acc)
		if classify.ClassifyName(name) != classify.Valid {
			continue
		}

		volume := classify.NormalizeVolume(acc.Volume(r))
		dateStr := classify.DateString(r, acc)
		project := classify.ExtractProject(r, acc)
		key := extraction.Key(name)

		p, ok := profiles[key]
		if !ok {
			// Seed from the first record, keeping its date string even when
			// it does not parse; display falls back to "N/A" later.
			p = &accum{
				name:          name,
				latestDateStr: dateStr,
				latestProject: project,
				projectTypes:  NewOrderedSet(),
			}
			p.latestDate, p.hasLatestDate = classify.ParseDate(dateStr)
			profiles[key] = p
			order = append(order, key)
		}

		p.totalVolume += volume
		p.count++
		p.projectTypes.Add(project.Type)

		// The latest date and its project move together: the project shown is
		// always the one from the record holding the current latest date.
		// Strict After keeps the earliest-processed record on equal dates, and
		// a record with no parseable date never displaces an existing one.
		if t, parsed := classify.ParseDate(dateStr); parsed && (!p.hasLatestDate || t.After(p.latestDate)) {
			p.latestDate = t
			p.hasLatestDate = true
			p.latestDateStr = dateStr
			p.latestProject = project
		}
	}

	out := make([]types.BuyerProfile, 0, len(order))
	for _, key := range order {
		p := profiles[key]

		displayTypes := p.projectTypes.Items()
		if len(displayTypes) > maxDisplayTypes {
			displayTypes = displayTypes[:maxDisplayTypes]
		}

		profile := types.BuyerProfile{
			Name:            p.name,
			TotalVolume:     int64(math.Round(p.totalVolume)),
			RetirementCount: p.count,
			LatestDate:      p.latestDateStr,
			LatestProject:   p.latestProject,
			ProjectTypes:    displayTypes,
		}
		profile.Tags = tagging.Tags(profile, ref)
		profile.IsQualified = tagging.Qualified(profile)
		out = append(out, profile)
	}
	return out
}
