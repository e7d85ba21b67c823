package filters

// `compact` strips comments and collapses whitespace. It is purely
// textual: no semicolon removal, no selector merging.

import (
	"regexp"
	"strings"
)

func init() {
	Register("compact", func() Filter {
		return Compact(0)
	})
}

var (
	// Matches /* ... */ blocks, including multi-line ones and stray *
	// characters inside the body. Comment delimiters do not nest.
	commentRx = regexp.MustCompile(`/\*[^*]*\*+(?:[^*/][^*]*\*+)*/`)

	whitespaceRx = regexp.MustCompile(`\s+`)
)

type Compact int

func (f Compact) Name() string { return "compact" }

func (f Compact) Apply(s string) (string, error) {
	s = commentRx.ReplaceAllString(s, "")
	s = whitespaceRx.ReplaceAllString(s, " ")
	return strings.TrimSpace(s), nil
}
