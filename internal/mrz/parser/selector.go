package parser

import "github.com/veriscan/veriscan-backend/internal/mrz/domain"

// Select decides which MRZ format the candidate lines should be read as and
// runs the field parser, returning either a parse result or a diagnostic.
//
// The format cannot be known up front from OCR noise alone; line count and
// raw line length are the only early signals, so selection is a retry
// ladder rather than a single deterministic choice:
//
//   - 3+ candidates: try TD1 on the first three lines. If that fails
//     validation, retry the first two lines as TD2; this recovers scans
//     where a spurious third line was classified as MRZ.
//   - exactly 2 candidates: TD3 if the first line's cleaned length reaches
//     the passport width, TD2 otherwise.
//   - fewer than 2: incomplete, no parse attempted.
//
// Only the TD1 attempt's failure is swallowed; any other invalid result is
// returned as-is for the projector to convert into a diagnostic.
func Select(candidates []Candidate) (*domain.ParseResult, *domain.Diagnostic) {
	switch {
	case len(candidates) >= 3:
		result := ParseLines(domain.FormatTD1, NormalizeAll(candidates, 3, domain.FormatTD1.LineWidth()))
		if result.Valid {
			return result, nil
		}
		return ParseLines(domain.FormatTD2, NormalizeAll(candidates, 2, domain.FormatTD2.LineWidth())), nil

	case len(candidates) == 2:
		format := domain.FormatTD2
		if candidates[0].CleanedLen() >= domain.FormatTD3.LineWidth() {
			format = domain.FormatTD3
		}
		return ParseLines(format, NormalizeAll(candidates, 2, format.LineWidth())), nil

	default:
		return nil, domain.Incomplete()
	}
}
