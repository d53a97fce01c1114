package parser

import (
	"unicode"

	"github.com/veriscan/veriscan-backend/internal/mrz/domain"
)

// Project maps a parse result into the stable caller-facing record, or into
// a validation_failed diagnostic when the checks did not pass.
func Project(result *domain.ParseResult) (*domain.Record, *domain.Diagnostic) {
	if !result.Valid {
		return nil, domain.ValidationFailed()
	}

	f := result.Fields
	return &domain.Record{
		DocumentType:   documentTypeLabel(f[domain.FieldDocumentCode]),
		DocumentCode:   f[domain.FieldDocumentCode],
		DocumentNumber: f[domain.FieldDocumentNumber],
		FirstName:      f[domain.FieldFirstName],
		LastName:       f[domain.FieldLastName],
		Nationality:    f[domain.FieldNationality],
		BirthDate:      FormatDate(f[domain.FieldBirthDate]),
		Sex:            f[domain.FieldSex],
		ExpiryDate:     FormatDate(f[domain.FieldExpiryDate]),
		IssuingState:   f[domain.FieldIssuingState],
		Format:         result.Format,
		Valid:          true,
		Lines:          result.Lines,
	}, nil
}

// documentTypeLabel maps the first character of the document code to a
// human-usable label.
func documentTypeLabel(code string) string {
	if code == "" {
		return "Unknown"
	}

	switch code[0] {
	case 'P':
		return "Passport"
	case 'I', 'A', 'C':
		return "ID Card"
	case 'V':
		return "Visa"
	case 'D':
		return "Driver's License"
	default:
		return "Document (" + code + ")"
	}
}

// FormatDate converts a 6-digit YYMMDD MRZ date to ISO yyyy-mm-dd.
// Two-digit years below 30 are read as 2000s, the rest as 1900s; the cutoff
// is a compatibility policy, not an ICAO rule. Anything that is not exactly
// six digits yields an empty string.
func FormatDate(yymmdd string) string {
	if len(yymmdd) != 6 {
		return ""
	}
	for _, c := range yymmdd {
		if !unicode.IsDigit(c) {
			return ""
		}
	}

	century := "19"
	if yymmdd[:2] < "30" {
		century = "20"
	}
	return century + yymmdd[:2] + "-" + yymmdd[2:4] + "-" + yymmdd[4:6]
}
