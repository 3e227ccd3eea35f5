// Package escape turns arbitrary text into strings that are safe to use as
// diagram node identifiers or inside double-quoted string literals.
package escape

import (
	"strconv"
	"strings"
	"unicode"
)

// EscapeNodeName keeps letters, digits and underscores and replaces every
// other rune with an underscore.
func EscapeNodeName(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// EscapeStringValue escapes raw so it can be embedded between double quotes.
// Backslashes and quotes are backslash-escaped, control characters use Go
// escape sequences. The surrounding quotes are not included.
func EscapeStringValue(raw string) string {
	quoted := strconv.Quote(raw)
	return quoted[1 : len(quoted)-1]
}
