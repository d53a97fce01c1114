package domain

import "time"

// Filler is the padding character used by ICAO 9303 fixed-width fields.
const Filler = '<'

// Format identifies the physical MRZ layout of a travel document.
type Format string

const (
	FormatTD1 Format = "td1" // 3 lines x 30 chars (ID cards)
	FormatTD2 Format = "td2" // 2 lines x 36 chars (older ID cards, visas)
	FormatTD3 Format = "td3" // 2 lines x 44 chars (passports)
)

// LineWidth returns the exact character width of each line in this format.
func (f Format) LineWidth() int {
	switch f {
	case FormatTD1:
		return 30
	case FormatTD2:
		return 36
	case FormatTD3:
		return 44
	}
	return 0
}

// LineCount returns the number of MRZ lines in this format.
func (f Format) LineCount() int {
	if f == FormatTD1 {
		return 3
	}
	return 2
}

// Field keys used in a parsed field map.
const (
	FieldDocumentCode   = "document_code"
	FieldDocumentNumber = "document_number"
	FieldIssuingState   = "issuing_state"
	FieldLastName       = "last_name"
	FieldFirstName      = "first_name"
	FieldNationality    = "nationality"
	FieldBirthDate      = "birth_date"
	FieldSex            = "sex"
	FieldExpiryDate     = "expiry_date"
	FieldPersonalNumber = "personal_number"
	FieldOptionalData   = "optional_data"
)

// Check names reported per recomputed check digit.
const (
	CheckDocumentNumber = "document_number"
	CheckBirthDate      = "birth_date"
	CheckExpiryDate     = "expiry_date"
	CheckPersonalNumber = "personal_number"
	CheckComposite      = "composite"
)

// FieldMap holds raw fixed-width field values keyed by field name.
// Missing optional fields are present with an empty value.
type FieldMap map[string]string

// ParseResult couples raw parsed fields with their check-digit outcomes.
type ParseResult struct {
	Format Format
	Fields FieldMap
	Checks map[string]bool
	// Valid is true when the document number, birth date and expiry date
	// checks pass and the composite check passes.
	Valid bool
	// Lines are the normalized MRZ lines the fields were sliced from.
	Lines []string
}

// Record is the projected, caller-facing MRZ record.
type Record struct {
	DocumentType   string   `json:"document_type"`
	DocumentCode   string   `json:"document_code"`
	DocumentNumber string   `json:"document_number"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Nationality    string   `json:"nationality"`
	BirthDate      string   `json:"birth_date"` // ISO yyyy-mm-dd, empty when unreadable
	Sex            string   `json:"sex"`
	ExpiryDate     string   `json:"expiry_date"` // ISO yyyy-mm-dd, empty when unreadable
	IssuingState   string   `json:"issuing_state"`
	Format         Format   `json:"format"`
	Valid          bool     `json:"valid"`
	Lines          []string `json:"lines"`
}

// DiagnosticCode classifies why no valid record could be produced.
type DiagnosticCode string

const (
	CodeNoCandidates     DiagnosticCode = "no_candidates"
	CodeIncomplete       DiagnosticCode = "incomplete"
	CodeValidationFailed DiagnosticCode = "validation_failed"
	CodeParseException   DiagnosticCode = "parse_exception"
)

// Diagnostic describes a failed scan. Diagnostics are expected outcomes,
// not faults: the caller is supposed to surface the message and allow a
// re-scan.
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	Message string         `json:"message"`
}

// Error implements the error interface so diagnostics can flow through
// logging and error-reporting paths.
func (d *Diagnostic) Error() string {
	return string(d.Code) + ": " + d.Message
}

func NoCandidates() *Diagnostic {
	return &Diagnostic{Code: CodeNoCandidates, Message: "no MRZ detected in text"}
}

func Incomplete() *Diagnostic {
	return &Diagnostic{Code: CodeIncomplete, Message: "incomplete MRZ: need at least 2 lines"}
}

func ValidationFailed() *Diagnostic {
	return &Diagnostic{Code: CodeValidationFailed, Message: "MRZ validation failed: check digit or structure mismatch"}
}

func ParseException(detail string) *Diagnostic {
	return &Diagnostic{Code: CodeParseException, Message: "unexpected parse fault: " + detail}
}

// ScanStatus represents the processing state of a scan job.
type ScanStatus string

const (
	StatusPending    ScanStatus = "pending"
	StatusProcessing ScanStatus = "processing"
	StatusCompleted  ScanStatus = "completed"
	StatusFailed     ScanStatus = "failed"
)

// ScanJob represents one submitted OCR transcript and its outcome.
// Exactly one of Record and Diagnostic is set once the job completes.
type ScanJob struct {
	JobID      string      `json:"job_id"`
	Status     ScanStatus  `json:"status"`
	Record     *Record     `json:"record,omitempty"`
	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ScanAuditEntry records a scan event for compliance reporting.
// Only metadata is kept; the transcript and extracted values are not stored.
type ScanAuditEntry struct {
	ID                   string    `db:"id"`
	ClientID             string    `db:"client_id"`
	DocumentType         string    `db:"document_type"`
	Format               string    `db:"format"`
	Outcome              string    `db:"outcome"` // "valid" or a diagnostic code
	ProcessingDurationMs int64     `db:"processing_duration_ms"`
	TranscriptZeroedAt   time.Time `db:"transcript_zeroed_at"`
	CreatedAt            time.Time `db:"created_at"`
}
