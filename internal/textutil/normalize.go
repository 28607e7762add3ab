// Package textutil provides text normalization shared by the record
// classifier and the name-candidate filter.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks, and recomposes,
// mapping accented Latin letters to their base form.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text and strips diacritical marks without altering
// token boundaries, so "CONCEDERÁ PENSÃO" and "concedera pensao" compare
// equal. The original text should be kept for patterns that depend on casing.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	out, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return out
}
