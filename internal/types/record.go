// Package types provides type definitions for structured data used throughout the buyer-intel system.
package types

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// RawRecord is one registry retirement record as exported: an opaque mapping
// from field name to value. The two registries use overlapping but
// differently-named fields, and the same export may carry a field under its
// snake_case or its display name, so all access goes through candidate lists.
type RawRecord map[string]any

// First returns the first candidate field whose value is present. Presence
// follows the source exports' conventions: nil, empty strings and zero
// numbers all mean "fall through to the next candidate".
func (r RawRecord) First(keys ...string) any {
	for _, key := range keys {
		if v, ok := r[key]; ok && present(v) {
			return v
		}
	}
	return nil
}

// FirstString returns the first present candidate field rendered as a string,
// or "" when none is present.
func (r RawRecord) FirstString(keys ...string) string {
	return Stringify(r.First(keys...))
}

// present reports whether a field value counts as filled-in for candidate
// fallback purposes. This is narrower than textnorm.IsMissing: sentinel
// strings like "N/A" are present here (the record carries them on purpose)
// and only get rejected later by the sentinel check.
func present(v any) bool {
	switch n := v.(type) {
	case nil:
		return false
	case string:
		return n != ""
	case float64:
		return n != 0 && !math.IsNaN(n)
	case int:
		return n != 0
	case int64:
		return n != 0
	}
	return true
}

// Stringify renders a raw field value the way the source data would display it.
// Numbers lose trailing zeros ("1500", not "1500.000000").
func Stringify(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		if math.IsNaN(n) {
			return "NaN"
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case bool:
		return strconv.FormatBool(n)
	}
	return fmt.Sprintf("%v", v)
}

// Registry identifies one of the two supported retirement-record sources.
type Registry string

// Supported registries.
const (
	RegistryVerra Registry = "verra"
	RegistryCAR   Registry = "car"
)

// AllRegistries lists the supported registries in canonical order.
func AllRegistries() []Registry {
	return []Registry{RegistryVerra, RegistryCAR}
}

// ParseRegistry validates a registry identifier.
func ParseRegistry(s string) (Registry, error) {
	switch Registry(s) {
	case RegistryVerra, RegistryCAR:
		return Registry(s), nil
	}
	return "", fmt.Errorf("unknown registry %q (expected %q or %q)", s, RegistryVerra, RegistryCAR)
}

// Label returns the registry's display name.
func (r Registry) Label() string {
	switch r {
	case RegistryVerra:
		return "Verra"
	case RegistryCAR:
		return "Climate Action Reserve"
	}
	return string(r)
}

// DateRange selects which retirement records are admitted into an evaluation:
// all time, a trailing window, or a single calendar year.
type DateRange string

// Named date ranges. A bare 4-digit year string is also a valid DateRange.
const (
	DateRangeAll DateRange = "all"
	DateRange12M DateRange = "12m"
	DateRange24M DateRange = "24m"
)

var yearRange = regexp.MustCompile(`^\d{4}$`)

// ParseDateRange validates a date-range identifier.
func ParseDateRange(s string) (DateRange, error) {
	switch DateRange(s) {
	case DateRangeAll, DateRange12M, DateRange24M:
		return DateRange(s), nil
	}
	if yearRange.MatchString(s) {
		return DateRange(s), nil
	}
	return "", fmt.Errorf("invalid date range %q (expected all, 12m, 24m or a 4-digit year)", s)
}

// Year returns the calendar year a year-typed range selects.
func (d DateRange) Year() (int, bool) {
	if !yearRange.MatchString(string(d)) {
		return 0, false
	}
	y, err := strconv.Atoi(string(d))
	if err != nil {
		return 0, false
	}
	return y, true
}

// Label returns the range's display name, as used in exports.
func (d DateRange) Label() string {
	switch d {
	case DateRangeAll:
		return "All Time"
	case DateRange12M:
		return "Last 12 Months"
	case DateRange24M:
		return "Last 24 Months"
	}
	return string(d)
}
