package parser

import (
	"regexp"
	"strings"
)

// Candidate is an OCR line judged likely to belong to an MRZ block.
type Candidate struct {
	Original string // line as it appeared in the transcript
	Text     string // uppercased form
}

// CleanedLen returns the length of the candidate after whitespace removal.
// The format selector uses this as an early TD3-vs-TD2 signal.
func (c Candidate) CleanedLen() int {
	return len(stripWhitespace(c.Text))
}

// mrzLinePattern matches the MRZ character set at plausible MRZ length.
var mrzLinePattern = regexp.MustCompile(`^[A-Z0-9<]{30,}$`)

// Classify selects candidate MRZ lines out of arbitrary multi-line OCR text,
// preserving scan order. A line qualifies if it contains the filler
// character, or if its whitespace-stripped uppercased form matches the MRZ
// character set with length >= 30. An empty result means no MRZ is present;
// that is a diagnostic, not an error.
func Classify(text string) []Candidate {
	var candidates []Candidate

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		upper := strings.ToUpper(trimmed)
		if strings.ContainsRune(upper, filler) || mrzLinePattern.MatchString(stripWhitespace(upper)) {
			candidates = append(candidates, Candidate{Original: trimmed, Text: upper})
		}
	}

	return candidates
}
