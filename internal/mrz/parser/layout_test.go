package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veriscan/veriscan-backend/internal/mrz/domain"
	"github.com/veriscan/veriscan-backend/internal/mrz/parser"
)

// All sample blocks carry correct ICAO 9303 check digits.
var (
	td1Lines = []string{
		"IDD<<D231458907<<<<<<<<<<<<<<<",
		"7408122F1204159D<<<<<<<<<<<<<6",
		"MUSTERMANN<<ERIKA<<<<<<<<<<<<<",
	}
	td2Lines = []string{
		"I<D<<MUSTERMANN<<ERIKA<<<<<<<<<<<<<<",
		"D231458907D<<7408122F1204159<<<<<<<6",
	}
	td3Lines = []string{
		"P<D<<MUSTERMANN<<ERIKA<<<<<<<<<<<<<<<<<<<<<<",
		"C01X00T478D<<8510127F3110315<<<<<<<<<<<<<<08",
	}
)

func TestParseLines_TD1(t *testing.T) {
	result := parser.ParseLines(domain.FormatTD1, td1Lines)

	require.True(t, result.Valid)
	assert.Equal(t, domain.FormatTD1, result.Format)

	tests := []struct {
		field string
		want  string
	}{
		{domain.FieldDocumentCode, "ID"},
		{domain.FieldIssuingState, "D"},
		{domain.FieldDocumentNumber, "D23145890"},
		{domain.FieldBirthDate, "740812"},
		{domain.FieldSex, "F"},
		{domain.FieldExpiryDate, "120415"},
		{domain.FieldNationality, "D"},
		{domain.FieldLastName, "MUSTERMANN"},
		{domain.FieldFirstName, "ERIKA"},
		{domain.FieldOptionalData, ""},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, result.Fields[tt.field])
		})
	}
}

func TestParseLines_TD2(t *testing.T) {
	result := parser.ParseLines(domain.FormatTD2, td2Lines)

	require.True(t, result.Valid)
	assert.Equal(t, "D23145890", result.Fields[domain.FieldDocumentNumber])
	assert.Equal(t, "MUSTERMANN", result.Fields[domain.FieldLastName])
	assert.Equal(t, "ERIKA", result.Fields[domain.FieldFirstName])
	assert.Equal(t, "740812", result.Fields[domain.FieldBirthDate])
	assert.Equal(t, "120415", result.Fields[domain.FieldExpiryDate])
}

func TestParseLines_TD3(t *testing.T) {
	result := parser.ParseLines(domain.FormatTD3, td3Lines)

	require.True(t, result.Valid)
	assert.Equal(t, "P", result.Fields[domain.FieldDocumentCode])
	assert.Equal(t, "C01X00T47", result.Fields[domain.FieldDocumentNumber])
	assert.Equal(t, "851012", result.Fields[domain.FieldBirthDate])
	assert.Equal(t, "F", result.Fields[domain.FieldSex])
	assert.Equal(t, "311031", result.Fields[domain.FieldExpiryDate])
	assert.Equal(t, "", result.Fields[domain.FieldPersonalNumber])
	assert.True(t, result.Checks[domain.CheckPersonalNumber])
	assert.True(t, result.Checks[domain.CheckComposite])
}

func TestParseLines_CorruptionInvalidatesResult(t *testing.T) {
	// Flipping any character inside a checksum-covered field must flip
	// validation to false. The TD3 document number spans line 2 positions
	// 0-8.
	for pos := 0; pos < 9; pos++ {
		corrupted := []byte(td3Lines[1])
		if corrupted[pos] == '1' {
			corrupted[pos] = '2'
		} else {
			corrupted[pos] = '1'
		}

		result := parser.ParseLines(domain.FormatTD3, []string{td3Lines[0], string(corrupted)})
		assert.False(t, result.Valid, "corruption at position %d must invalidate", pos)
		assert.False(t, result.Checks[domain.CheckDocumentNumber])
	}
}

func TestParseLines_CompositeGatesValidity(t *testing.T) {
	corrupted := []byte(td3Lines[1])
	corrupted[43] = '9' // composite check digit is '8'

	result := parser.ParseLines(domain.FormatTD3, []string{td3Lines[0], string(corrupted)})
	assert.False(t, result.Valid)
	assert.True(t, result.Checks[domain.CheckDocumentNumber])
	assert.False(t, result.Checks[domain.CheckComposite])
}

func TestParseLines_WrongWidthPanics(t *testing.T) {
	assert.Panics(t, func() {
		parser.ParseLines(domain.FormatTD3, []string{"TOO<SHORT", "ALSO<SHORT"})
	})
	assert.Panics(t, func() {
		parser.ParseLines(domain.FormatTD1, td2Lines)
	})
}
