package parser

import (
	"strings"
	"unicode"

	"github.com/veriscan/veriscan-backend/internal/mrz/domain"
)

const filler = domain.Filler

// Normalize cleans an OCR line for fixed-width parsing at the given target
// width: uppercase, strip all whitespace, substitute the commonly-confused
// letter O with digit 0, truncate if longer and right-pad with filler if
// shorter. Pure function; the result always has length exactly width.
//
// The O->0 substitution runs across the whole line, including name fields.
// Field-aware correction (letter fields keep their O) would be more precise
// but MRZ check digits catch the rare miscorrection anyway.
func Normalize(line string, width int) string {
	s := strings.ToUpper(line)
	s = stripWhitespace(s)
	s = strings.ReplaceAll(s, "O", "0")

	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(string(filler), width-len(s))
}

// NormalizeAll normalizes the first n candidates to the given width.
func NormalizeAll(candidates []Candidate, n, width int) []string {
	lines := make([]string, n)
	for i := 0; i < n; i++ {
		lines[i] = Normalize(candidates[i].Text, width)
	}
	return lines
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
