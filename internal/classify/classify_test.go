package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/buyer-intel/internal/extraction"
	"github.com/jonathan/buyer-intel/internal/types"
)

func TestNormalizeVolume(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{"Nil", nil, 0},
		{"Float passthrough", float64(1500), 1500},
		{"Float fraction kept", 1500.75, 1500.75},
		{"NaN becomes zero", math.NaN(), 0},
		{"Inf becomes zero", math.Inf(1), 0},
		{"Int", 42, 42},
		{"Int64", int64(99), 99},
		{"Plain numeric string", "1500", 1500},
		{"Comma grouping stripped", "1,500", 1500},
		{"Large comma grouping", "1,234,567", 1234567},
		{"Leading integer of mixed string", "1500 tCO2e", 1500},
		{"Padded string", "  250  ", 250},
		{"Non-numeric string", "lots", 0},
		{"Empty string", "", 0},
		{"Decimal string truncates at point", "1500.75", 1500},
		{"Unsupported type", []string{"1"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeVolume(tt.input)
			assert.Equal(t, tt.expected, result, "should normalize volume")
		})
	}
}

func TestExtractProject(t *testing.T) {
	acc := extraction.ForRegistry(types.RegistryVerra)

	tests := []struct {
		name     string
		record   types.RawRecord
		expected types.ProjectInfo
	}{
		{
			name: "All fields present",
			record: types.RawRecord{
				"project_name": "Katingan Peatland",
				"project_id":   "1477",
				"project_type": "REDD+",
			},
			expected: types.ProjectInfo{Name: "Katingan Peatland", ID: "1477", Type: "REDD+"},
		},
		{
			name: "Display-name fields",
			record: types.RawRecord{
				"Name":         "Katingan Peatland",
				"ID":           "1477",
				"Project Type": "REDD+",
			},
			expected: types.ProjectInfo{Name: "Katingan Peatland", ID: "1477", Type: "REDD+"},
		},
		{
			name:     "All fields missing",
			record:   types.RawRecord{},
			expected: types.ProjectInfo{Name: "Unknown Project", ID: "N/A", Type: "Unknown"},
		},
		{
			name: "Type truncated at parenthesis",
			record: types.RawRecord{
				"project_type": "REDD+(VCS)",
			},
			expected: types.ProjectInfo{Name: "Unknown Project", ID: "N/A", Type: "REDD+"},
		},
		{
			name: "Type truncated at hyphen",
			record: types.RawRecord{
				"project_type": "Forestry - ARR",
			},
			expected: types.ProjectInfo{Name: "Unknown Project", ID: "N/A", Type: "Forestry"},
		},
		{
			name: "Numeric project id rendered",
			record: types.RawRecord{
				"project_id": float64(1477),
			},
			expected: types.ProjectInfo{Name: "Unknown Project", ID: "1477", Type: "Unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractProject(tt.record, acc)
			assert.Equal(t, tt.expected, result, "should extract the project descriptor")
		})
	}
}

func TestClassifyName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Verdict
	}{
		{"Valid name", "Acme Corp", Valid},
		{"Two runes is valid", "AB", Valid},
		{"Empty string", "", Invalid},
		{"Sentinel", "n/a", Invalid},
		{"Single rune", "A", Invalid},
		{"Single rune padded", " A ", Invalid},
		{"Anonymous", "Anonymous donor", Noise},
		{"Anonymously", "Retired anonymously", Noise},
		{"No owner", "No Owner on record", Noise},
		{"Contributing towards", "Contributing towards net zero", Noise},
		{"Confidential", "CONFIDENTIAL client", Noise},
		{"Noise marker mid-name", "The Anonymous Trust", Noise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyName(tt.input)
			assert.Equal(t, tt.expected, result, "should classify the buyer name")
		})
	}
}
