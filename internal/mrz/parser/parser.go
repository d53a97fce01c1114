// Package parser turns noisy OCR transcripts of travel documents into
// validated MRZ records. The pipeline is pure and stateless: classify
// candidate lines, normalize them to a fixed width, select the document
// format, slice and checksum the fields, then project the result. Each
// invocation is independent, so calls may run concurrently without
// coordination.
package parser

import (
	"fmt"

	"github.com/veriscan/veriscan-backend/internal/mrz/domain"
)

// Parse runs the full pipeline on one OCR transcript. It returns exactly
// one of a record or a diagnostic; internal faults never escape, they are
// downgraded to a parse_exception diagnostic at this boundary.
func Parse(text string) (record *domain.Record, diag *domain.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			diag = domain.ParseException(fmt.Sprint(r))
		}
	}()

	candidates := Classify(text)
	if len(candidates) == 0 {
		return nil, domain.NoCandidates()
	}

	result, diag := Select(candidates)
	if diag != nil {
		return nil, diag
	}

	return Project(result)
}
