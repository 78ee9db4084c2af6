package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawRecordFirst(t *testing.T) {
	r := RawRecord{
		"empty":   "",
		"zero":    float64(0),
		"nan":     math.NaN(),
		"nil":     nil,
		"name":    "Acme Corp",
		"display": "Display Name",
		"number":  float64(1500),
	}

	tests := []struct {
		name     string
		keys     []string
		expected any
	}{
		{"First present wins", []string{"name", "display"}, "Acme Corp"},
		{"Empty string falls through", []string{"empty", "display"}, "Display Name"},
		{"Zero number falls through", []string{"zero", "number"}, float64(1500)},
		{"NaN falls through", []string{"nan", "number"}, float64(1500)},
		{"Nil value falls through", []string{"nil", "name"}, "Acme Corp"},
		{"Absent key falls through", []string{"missing", "name"}, "Acme Corp"},
		{"Nothing present", []string{"empty", "zero", "missing"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.First(tt.keys...), "should apply candidate fallback")
		})
	}
}

func TestRawRecordFirstString(t *testing.T) {
	r := RawRecord{"id": float64(1477), "name": "Acme"}

	assert.Equal(t, "1477", r.FirstString("id"), "numbers render without trailing zeros")
	assert.Equal(t, "Acme", r.FirstString("name"))
	assert.Equal(t, "", r.FirstString("missing"))
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"Nil", nil, ""},
		{"String", "Acme", "Acme"},
		{"Whole float", float64(1500), "1500"},
		{"Fractional float", 1500.75, "1500.75"},
		{"NaN", math.NaN(), "NaN"},
		{"Int", 42, "42"},
		{"Int64", int64(99), "99"},
		{"Bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Stringify(tt.input))
		})
	}
}

func TestParseRegistry(t *testing.T) {
	reg, err := ParseRegistry("verra")
	require.NoError(t, err)
	assert.Equal(t, RegistryVerra, reg)

	reg, err = ParseRegistry("car")
	require.NoError(t, err)
	assert.Equal(t, RegistryCAR, reg)

	_, err = ParseRegistry("gold-standard")
	assert.Error(t, err)
}

func TestRegistryLabel(t *testing.T) {
	assert.Equal(t, "Verra", RegistryVerra.Label())
	assert.Equal(t, "Climate Action Reserve", RegistryCAR.Label())
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"All", "all", false},
		{"Twelve months", "12m", false},
		{"Twenty-four months", "24m", false},
		{"Year", "2023", false},
		{"Five digits", "20233", true},
		{"Empty", "", true},
		{"Garbage", "recent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateRange(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDateRangeYear(t *testing.T) {
	year, ok := DateRange("2023").Year()
	assert.True(t, ok)
	assert.Equal(t, 2023, year)

	_, ok = DateRange12M.Year()
	assert.False(t, ok)
}

func TestDateRangeLabel(t *testing.T) {
	assert.Equal(t, "All Time", DateRangeAll.Label())
	assert.Equal(t, "Last 12 Months", DateRange12M.Label())
	assert.Equal(t, "Last 24 Months", DateRange24M.Label())
	assert.Equal(t, "2023", DateRange("2023").Label())
}

func TestLoginRequestValidate(t *testing.T) {
	valid := LoginRequest{Username: "ops", Password: "hunter2"}
	assert.NoError(t, valid.Validate())

	missing := LoginRequest{Username: "ops"}
	assert.Error(t, missing.Validate())
}
