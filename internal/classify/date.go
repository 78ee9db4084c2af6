package classify

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/buyer-intel/internal/extraction"
	"github.com/jonathan/buyer-intel/internal/textnorm"
	"github.com/jonathan/buyer-intel/internal/types"
)

// dateLayouts are the formats the registry exports have actually used,
// tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var bareYear = regexp.MustCompile(`^\d{4}$`)

// ParseDate parses a registry date string. A bare 4-digit year means
// January 1 of that year. Returns false for sentinel or unparseable values;
// unparseable dates are an expected data-quality condition, not an error.
func ParseDate(s string) (time.Time, bool) {
	if textnorm.IsMissing(s) {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if bareYear.MatchString(s) {
		year, err := strconv.Atoi(s)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateString returns the record's raw date string: the first present value
// among the registry's date-field candidates, or "".
func DateString(r types.RawRecord, acc extraction.Accessor) string {
	return r.FirstString(acc.DateCandidates()...)
}

// ExtractDate reads and parses the record's retirement date.
func ExtractDate(r types.RawRecord, acc extraction.Accessor) (time.Time, bool) {
	return ParseDate(DateString(r, acc))
}

// FormatDate renders a raw date string for display, falling back to "N/A"
// when it does not parse.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}

// WithinRange reports whether a record is admitted by the active date filter.
// Records without a parseable date are admitted only under the all-time
// filter. The reference instant is explicit so evaluations are deterministic.
func WithinRange(r types.RawRecord, acc extraction.Accessor, dateRange types.DateRange, ref time.Time) bool {
	if dateRange == types.DateRangeAll {
		return true
	}
	retired, ok := ExtractDate(r, acc)
	if !ok {
		return false
	}
	switch dateRange {
	case types.DateRange12M:
		return !retired.Before(monthsBefore(ref, 12))
	case types.DateRange24M:
		return !retired.Before(monthsBefore(ref, 24))
	}
	if year, ok := dateRange.Year(); ok {
		return retired.Year() == year
	}
	return true
}

// monthsBefore returns midnight on the same day-of-month n months before the
// reference instant, normalized the way time.Date normalizes overflow.
func monthsBefore(ref time.Time, months int) time.Time {
	return time.Date(ref.Year(), ref.Month()-time.Month(months), ref.Day(), 0, 0, 0, 0, ref.Location())
}
