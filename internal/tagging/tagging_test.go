package tagging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/buyer-intel/internal/types"
)

func TestTags(t *testing.T) {
	ref := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		profile  types.BuyerProfile
		expected []string
	}{
		{
			name:     "No tags",
			profile:  types.BuyerProfile{TotalVolume: 100, RetirementCount: 1, LatestDate: "2020-01-01"},
			expected: []string{},
		},
		{
			name:     "Repeat buyer at threshold",
			profile:  types.BuyerProfile{TotalVolume: 100, RetirementCount: 3, LatestDate: "2020-01-01"},
			expected: []string{TagRepeatBuyer},
		},
		{
			name:     "Below repeat threshold",
			profile:  types.BuyerProfile{TotalVolume: 100, RetirementCount: 2, LatestDate: "2020-01-01"},
			expected: []string{},
		},
		{
			name:     "High volume at threshold",
			profile:  types.BuyerProfile{TotalVolume: 50000, RetirementCount: 1, LatestDate: "2020-01-01"},
			expected: []string{TagHighVolume},
		},
		{
			name:     "Below high volume threshold",
			profile:  types.BuyerProfile{TotalVolume: 49999, RetirementCount: 1, LatestDate: "2020-01-01"},
			expected: []string{},
		},
		{
			name:     "Active this year",
			profile:  types.BuyerProfile{TotalVolume: 100, RetirementCount: 1, LatestDate: "2025-03-01"},
			expected: []string{TagActive},
		},
		{
			name:     "Active last year",
			profile:  types.BuyerProfile{TotalVolume: 100, RetirementCount: 1, LatestDate: "2024-01-15"},
			expected: []string{TagActive},
		},
		{
			name:     "Inactive two years back",
			profile:  types.BuyerProfile{TotalVolume: 100, RetirementCount: 1, LatestDate: "2023-12-31"},
			expected: []string{},
		},
		{
			name:     "Unparseable date never active",
			profile:  types.BuyerProfile{TotalVolume: 100, RetirementCount: 1, LatestDate: "N/A"},
			expected: []string{},
		},
		{
			name:     "Tags are not exclusive",
			profile:  types.BuyerProfile{TotalVolume: 75000, RetirementCount: 5, LatestDate: "2025-01-01"},
			expected: []string{TagRepeatBuyer, TagHighVolume, TagActive},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Tags(tt.profile, ref)
			assert.Equal(t, tt.expected, result, "should assign every applicable tag")
		})
	}
}

// Raising a profile's volume or event count must never remove a tag it
// already carries.
func TestTagsMonotonic(t *testing.T) {
	ref := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	base := types.BuyerProfile{TotalVolume: 49999, RetirementCount: 2, LatestDate: "2025-01-01"}
	baseTags := Tags(base, ref)

	raised := base
	raised.TotalVolume += 100000
	raised.RetirementCount += 10
	raisedTags := Tags(raised, ref)

	for _, tag := range baseTags {
		assert.Contains(t, raisedTags, tag, "raising totals should not remove tags")
	}
}

func TestQualified(t *testing.T) {
	tests := []struct {
		name     string
		profile  types.BuyerProfile
		expected bool
	}{
		{"Volume at threshold", types.BuyerProfile{TotalVolume: 1000, RetirementCount: 1}, true},
		{"Volume below threshold", types.BuyerProfile{TotalVolume: 999, RetirementCount: 1}, false},
		{"Events at threshold", types.BuyerProfile{TotalVolume: 0, RetirementCount: 2}, true},
		{"Events below threshold", types.BuyerProfile{TotalVolume: 0, RetirementCount: 1}, false},
		{"Either suffices", types.BuyerProfile{TotalVolume: 999, RetirementCount: 2}, true},
		{"Zero profile", types.BuyerProfile{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Qualified(tt.profile), "should apply the qualification thresholds")
		})
	}
}
