// Package textnorm repairs character-encoding artifacts in registry fields and
// provides the canonical missing-value check used across the pipeline.
package textnorm

import (
	"strings"

	"github.com/jonathan/buyer-intel/internal/types"
)

// missingSentinels are the junk values registries export in place of real
// data, compared after trimming and lowercasing.
var missingSentinels = map[string]struct{}{
	"":     {},
	"none": {},
	"null": {},
	"n/a":  {},
	"nan":  {},
	"0":    {},
}

// IsMissing reports whether a raw field value carries no real information.
// This is the single sentinel test for the whole pipeline; components must
// not roll their own blank checks.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	s := strings.ToLower(strings.TrimSpace(types.Stringify(v)))
	_, ok := missingSentinels[s]
	return ok
}

// encodingFixes maps known mis-decoded byte sequences to the characters the
// registries meant to export. The Verra export in particular went through a
// UTF-8 -> Mac Roman round trip at some point, producing the "√"-prefixed
// forms; the "Ã"-prefixed forms are plain UTF-8-as-Latin-1. Patterns are
// disjoint, so replacement order does not matter, and no replacement output
// matches another pattern, so the fix is idempotent.
var encodingFixes = []string{
	"√©", "é",
	"√†", "à",
	"√£", "ã",
	"√°", "á",
	"√ü", "ç",
	"√≠", "í",
	"√≥", "ó",
	"√∫", "ú",
	"√±", "ñ",
	"Ã©", "é",
	"Ã¡", "á",
	"Ã³", "ó",
	"Ã±", "ñ",
	"‚Äì", "–",
	"‚Äô", "'",
	"‚Äú", `"`,
	"‚Äù", `"`,
	"¬†", " ",
}

var encodingReplacer = strings.NewReplacer(encodingFixes...)

// FixEncoding repairs mojibake in a registry text field, strips stray straight
// double quotes, and trims surrounding whitespace. Running it on already-fixed
// text is a no-op.
func FixEncoding(s string) string {
	s = encodingReplacer.Replace(s)
	s = strings.ReplaceAll(s, `"`, "")
	return strings.TrimSpace(s)
}
