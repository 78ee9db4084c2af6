// Package extraction derives buyer identities from noisy registry free text.
package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/buyer-intel/internal/textnorm"
	"github.com/jonathan/buyer-intel/internal/types"
)

// buyerPatterns are tried strictly in order; each captures up to the next
// comma, period or semicolon. The first pattern whose capture is not a
// sentinel wins.
var buyerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)on behalf of\s+([^.,;]+)`),
	regexp.MustCompile(`(?i)retired for\s+([^.,;]+)`),
	regexp.MustCompile(`(?i)beneficiary:\s*([^.,;]+)`),
	regexp.MustCompile(`(?i)in the name of\s+([^.,;]+)`),
	regexp.MustCompile(`(?i)for the benefit of\s+([^.,;]+)`),
	regexp.MustCompile(`(?i)retirement by\s+([^.,;]+)`),
}

// ExtractBuyer scans free text for buyer-attribution phrases and returns the
// encoding-fixed captured name. The second return value is false when no
// pattern yielded a usable name, which is distinct from an empty capture.
func ExtractBuyer(text string) (string, bool) {
	if textnorm.IsMissing(text) {
		return "", false
	}
	for _, pattern := range buyerPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		captured := strings.TrimSpace(m[1])
		if textnorm.IsMissing(captured) {
			continue
		}
		return textnorm.FixEncoding(captured), true
	}
	return "", false
}

// Identity derives the buyer display name for one record: phrase extraction
// over the registry's free-text fields first, then the registry's raw
// fallback field. Returns "" when neither yields a name; downstream always
// rejects the empty string as invalid.
func Identity(r types.RawRecord, acc Accessor) string {
	if name, ok := ExtractBuyer(acc.IdentitySourceText(r)); ok {
		return name
	}
	if fallback := acc.FallbackName(r); !textnorm.IsMissing(fallback) {
		return textnorm.FixEncoding(fallback)
	}
	return ""
}

// Key returns the deduplication key for a buyer name. Two raw names merge
// into one buyer exactly when their keys are equal.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
