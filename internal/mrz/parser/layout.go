package parser

import (
	"strings"

	"github.com/veriscan/veriscan-backend/internal/mrz/domain"
)

// Fixed-width field layouts per ICAO 9303. Callers must supply lines of the
// exact width for the format; ParseLines enforces that precondition.

// parseTD1 parses a 3x30 ID card block.
// Line 1: document code (0-1), issuing state (2-4), document number (5-13),
//
//	check (14), optional data (15-29)
//
// Line 2: birth date (0-5), check (6), sex (7), expiry date (8-13),
//
//	check (14), nationality (15-17), optional data (18-28),
//	composite check (29)
//
// Line 3: surname<<given names
func parseTD1(lines []string) *domain.ParseResult {
	l1, l2, l3 := lines[0], lines[1], lines[2]

	fields := domain.FieldMap{
		domain.FieldDocumentCode:   cleanField(l1[0:2]),
		domain.FieldIssuingState:   cleanField(l1[2:5]),
		domain.FieldDocumentNumber: cleanField(l1[5:14]),
		domain.FieldOptionalData:   cleanField(l1[15:30]),
		domain.FieldBirthDate:      l2[0:6],
		domain.FieldSex:            cleanField(l2[7:8]),
		domain.FieldExpiryDate:     l2[8:14],
		domain.FieldNationality:    cleanField(l2[15:18]),
	}
	fields[domain.FieldLastName], fields[domain.FieldFirstName] = splitName(l3)

	checks := map[string]bool{
		domain.CheckDocumentNumber: checkMatches(l1[5:14], l1[14]),
		domain.CheckBirthDate:      checkMatches(l2[0:6], l2[6]),
		domain.CheckExpiryDate:     checkMatches(l2[8:14], l2[14]),
		domain.CheckComposite:      checkMatches(l1[5:30]+l2[0:7]+l2[8:15]+l2[18:29], l2[29]),
	}

	return buildResult(domain.FormatTD1, fields, checks, lines)
}

// parseTD2 parses a 2x36 ID card block.
// Line 1: document code (0-1), issuing state (2-4), names (5-35)
// Line 2: document number (0-8), check (9), nationality (10-12),
//
//	birth date (13-18), check (19), sex (20), expiry date (21-26),
//	check (27), optional data (28-34), composite check (35)
func parseTD2(lines []string) *domain.ParseResult {
	l1, l2 := lines[0], lines[1]

	fields := domain.FieldMap{
		domain.FieldDocumentCode:   cleanField(l1[0:2]),
		domain.FieldIssuingState:   cleanField(l1[2:5]),
		domain.FieldDocumentNumber: cleanField(l2[0:9]),
		domain.FieldNationality:    cleanField(l2[10:13]),
		domain.FieldBirthDate:      l2[13:19],
		domain.FieldSex:            cleanField(l2[20:21]),
		domain.FieldExpiryDate:     l2[21:27],
		domain.FieldOptionalData:   cleanField(l2[28:35]),
	}
	fields[domain.FieldLastName], fields[domain.FieldFirstName] = splitName(l1[5:])

	checks := map[string]bool{
		domain.CheckDocumentNumber: checkMatches(l2[0:9], l2[9]),
		domain.CheckBirthDate:      checkMatches(l2[13:19], l2[19]),
		domain.CheckExpiryDate:     checkMatches(l2[21:27], l2[27]),
		domain.CheckComposite:      checkMatches(l2[0:10]+l2[13:20]+l2[21:35], l2[35]),
	}

	return buildResult(domain.FormatTD2, fields, checks, lines)
}

// parseTD3 parses a 2x44 passport block.
// Line 1: document code (0-1), issuing state (2-4), names (5-43)
// Line 2: document number (0-8), check (9), nationality (10-12),
//
//	birth date (13-18), check (19), sex (20), expiry date (21-26),
//	check (27), personal number (28-41), check (42),
//	composite check (43)
func parseTD3(lines []string) *domain.ParseResult {
	l1, l2 := lines[0], lines[1]

	fields := domain.FieldMap{
		domain.FieldDocumentCode:   cleanField(l1[0:2]),
		domain.FieldIssuingState:   cleanField(l1[2:5]),
		domain.FieldDocumentNumber: cleanField(l2[0:9]),
		domain.FieldNationality:    cleanField(l2[10:13]),
		domain.FieldBirthDate:      l2[13:19],
		domain.FieldSex:            cleanField(l2[20:21]),
		domain.FieldExpiryDate:     l2[21:27],
		domain.FieldPersonalNumber: cleanField(l2[28:42]),
	}
	fields[domain.FieldLastName], fields[domain.FieldFirstName] = splitName(l1[5:])

	checks := map[string]bool{
		domain.CheckDocumentNumber: checkMatches(l2[0:9], l2[9]),
		domain.CheckBirthDate:      checkMatches(l2[13:19], l2[19]),
		domain.CheckExpiryDate:     checkMatches(l2[21:27], l2[27]),
		domain.CheckPersonalNumber: checkMatches(l2[28:42], l2[42]),
		domain.CheckComposite:      checkMatches(l2[0:10]+l2[13:20]+l2[21:43], l2[43]),
	}

	return buildResult(domain.FormatTD3, fields, checks, lines)
}

// ParseLines parses normalized lines of identical width for the given
// format. Wrong line count or width is a caller defect; the pipeline
// boundary downgrades the resulting panic to a parse_exception diagnostic.
func ParseLines(format domain.Format, lines []string) *domain.ParseResult {
	if len(lines) != format.LineCount() {
		panic("mrz: wrong line count for format " + string(format))
	}
	for _, l := range lines {
		if len(l) != format.LineWidth() {
			panic("mrz: wrong line width for format " + string(format))
		}
	}

	switch format {
	case domain.FormatTD1:
		return parseTD1(lines)
	case domain.FormatTD2:
		return parseTD2(lines)
	default:
		return parseTD3(lines)
	}
}

// buildResult derives overall validity from the checks the standard gates
// on: document number, birth date, expiry date and the composite line.
// The TD3 personal-number check is reported but does not gate validity.
func buildResult(format domain.Format, fields domain.FieldMap, checks map[string]bool, lines []string) *domain.ParseResult {
	valid := checks[domain.CheckDocumentNumber] &&
		checks[domain.CheckBirthDate] &&
		checks[domain.CheckExpiryDate] &&
		checks[domain.CheckComposite]

	return &domain.ParseResult{
		Format: format,
		Fields: fields,
		Checks: checks,
		Valid:  valid,
		Lines:  lines,
	}
}

// cleanField removes filler characters from a sliced field.
func cleanField(s string) string {
	return strings.ReplaceAll(s, string(filler), "")
}

// splitName splits a name section into surname and given names.
// Surname and given names are separated by a double filler; single fillers
// separate name parts and become spaces.
func splitName(section string) (last, first string) {
	parts := strings.SplitN(section, "<<", 2)
	last = cleanName(parts[0])
	if len(parts) == 2 {
		first = cleanName(parts[1])
	}
	return last, first
}

func cleanName(s string) string {
	cleaned := strings.TrimRight(s, "< ")
	cleaned = strings.ReplaceAll(cleaned, string(filler), " ")
	return strings.TrimSpace(cleaned)
}
