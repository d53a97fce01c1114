package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veriscan/veriscan-backend/internal/mrz/parser"
)

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		field string
		want  byte
	}{
		// ICAO 9303 worked example
		{"C01X00T47", '8'},
		{"851012", '7'},
		{"311031", '5'},
		{"740812", '2'},
		{"120415", '9'},
		// filler counts as zero
		{"<<<<<<", '0'},
		{"", '0'},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, string(tt.want), string(parser.CheckDigit(tt.field)))
		})
	}
}

func TestCheckDigit_SingleCharacterFlipChangesDigit(t *testing.T) {
	field := "C01X00T47"
	digit := parser.CheckDigit(field)

	for i := 0; i < len(field); i++ {
		flipped := []byte(field)
		if flipped[i] == '1' {
			flipped[i] = '2'
		} else {
			flipped[i] = '1'
		}
		assert.NotEqual(t, string(digit), string(parser.CheckDigit(string(flipped))),
			"flip at position %d should change the check digit", i)
	}
}
