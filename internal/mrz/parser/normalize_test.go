package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veriscan/veriscan-backend/internal/mrz/parser"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  string
	}{
		{"pads short line with filler", "ID", 10, "ID<<<<<<<<"},
		{"truncates long line", "ABCDEFGHIJKLMNOP", 10, "ABCDEFGHIJ"},
		{"uppercases", "idd<<d2314", 10, "IDD<<D2314"},
		{"strips inner and outer whitespace", "  ID D<< D2 314 ", 10, "IDD<<D2314"},
		{"substitutes letter O with zero", "IDOODOO<<<", 10, "ID00D00<<<"},
		{"empty line becomes all filler", "", 6, "<<<<<<"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.Normalize(tt.line, tt.width))
		})
	}
}

func TestNormalize_WidthInvariant(t *testing.T) {
	inputs := []string{"", "A", "  x  ", "IDD<<D231458907<<<<<<<<<<<<<<<", "a very long line with spaces that is certainly past the target width"}
	widths := []int{30, 36, 44}

	for _, in := range inputs {
		for _, w := range widths {
			assert.Len(t, parser.Normalize(in, w), w, "input %q width %d", in, w)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	line := "IDD<<D231458907<<<<<<<<<<<<<<<"
	once := parser.Normalize(line, 30)
	assert.Equal(t, once, parser.Normalize(once, 30))
}
