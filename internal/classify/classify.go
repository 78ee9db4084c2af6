// Package classify derives per-record facts for aggregation: normalized
// volume, retirement date, project descriptor, and the validity verdict.
// Every failure mode here degrades to a defined fallback; nothing errors.
package classify

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/buyer-intel/internal/extraction"
	"github.com/jonathan/buyer-intel/internal/textnorm"
	"github.com/jonathan/buyer-intel/internal/types"
)

// Placeholder values substituted when a record has no usable project fields.
const (
	UnknownProjectName = "Unknown Project"
	UnknownProjectID   = "N/A"
	UnknownProjectType = "Unknown"
)

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// NormalizeVolume coerces a raw quantity field to a number. Numeric values
// pass through (non-finite becomes 0); strings lose comma grouping and parse
// as a leading integer; anything else is 0. Never negative in practice since
// registries export absent quantities as empty or zero.
func NormalizeVolume(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
		digits := leadingInt.FindString(cleaned)
		if digits == "" {
			return 0
		}
		parsed, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0
		}
		return float64(parsed)
	}
	return 0
}

// ExtractProject reads the project descriptor from a record, substituting
// placeholders for anything missing. The type label is cut at the first
// hyphen or opening parenthesis to strip qualifier suffixes such as
// "REDD+(VCS)" or "Forestry - ARR".
func ExtractProject(r types.RawRecord, acc extraction.Accessor) types.ProjectInfo {
	fields := acc.ProjectFields()

	name := r.FirstString(fields.Name...)
	if name == "" {
		name = UnknownProjectName
	}
	id := r.FirstString(fields.ID...)
	if id == "" {
		id = UnknownProjectID
	}
	typ := r.FirstString(fields.Type...)
	if typ == "" {
		typ = UnknownProjectType
	}

	return types.ProjectInfo{Name: name, ID: id, Type: truncateType(typ)}
}

func truncateType(t string) string {
	if i := strings.IndexAny(t, "-("); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// noiseMarkers disqualify extracted names that are attribution noise rather
// than purchasing entities.
var noiseMarkers = []string{
	"no owner",
	"anonymous",
	"anonymously",
	"contributing towards",
	"confidential",
}

// Verdict is the validity outcome for an extracted buyer name.
type Verdict int

// Verdict values. Invalid and Noise records are dropped identically; the
// distinction only matters for reporting.
const (
	Valid Verdict = iota
	Invalid
	Noise
)

// ClassifyName decides whether an extracted buyer name identifies a real
// purchasing entity.
func ClassifyName(name string) Verdict {
	if textnorm.IsMissing(name) {
		return Invalid
	}
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 2 {
		return Invalid
	}
	lower := strings.ToLower(name)
	for _, marker := range noiseMarkers {
		if strings.Contains(lower, marker) {
			return Noise
		}
	}
	return Valid
}
