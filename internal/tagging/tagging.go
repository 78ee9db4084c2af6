// Package tagging applies the sales-classification rules over finished buyer
// aggregates. Tags are independent: a profile carries every label it
// qualifies for.
package tagging

import (
	"time"

	"github.com/jonathan/buyer-intel/internal/classify"
	"github.com/jonathan/buyer-intel/internal/types"
)

// Business thresholds. Qualification and tag thresholds are independent
// constants, not derived from each other.
const (
	MinQualifiedVolume  = 1000
	MinQualifiedEvents  = 2
	RepeatBuyerEvents   = 3
	HighVolumeThreshold = 50000
)

// Display tags.
const (
	TagRepeatBuyer = "Repeat Buyer"
	TagHighVolume  = "High Volume"
	TagActive      = "Active"
)

// Tags returns every label the profile qualifies for. The reference instant
// anchors the "Active" recency window; a profile whose latest date never
// parsed counts as year 0 and is never Active.
func Tags(p types.BuyerProfile, ref time.Time) []string {
	tags := make([]string, 0, 3)
	if p.RetirementCount >= RepeatBuyerEvents {
		tags = append(tags, TagRepeatBuyer)
	}
	if p.TotalVolume >= HighVolumeThreshold {
		tags = append(tags, TagHighVolume)
	}
	if latestYear(p) >= ref.Year()-1 {
		tags = append(tags, TagActive)
	}
	return tags
}

// Qualified reports whether the profile meets the minimum volume-or-events
// thresholds that flag it as sales-relevant.
func Qualified(p types.BuyerProfile) bool {
	return p.TotalVolume >= MinQualifiedVolume || p.RetirementCount >= MinQualifiedEvents
}

func latestYear(p types.BuyerProfile) int {
	if t, ok := classify.ParseDate(p.LatestDate); ok {
		return t.Year()
	}
	return 0
}
