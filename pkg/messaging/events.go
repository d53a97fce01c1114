package messaging

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types
const (
	// Scan lifecycle events
	EventScanCompleted = "mrz.scan.completed"
	EventScanFailed    = "mrz.scan.failed"

	// Transcript intake events (published by OCR frontends)
	EventTranscriptReceived = "ocr.transcript.received"
)

// Exchange names
const (
	ExchangeScanEvents = "mrz.events"
	ExchangeOCREvents  = "ocr.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Scan Events

// ScanCompletedEvent is published when a transcript yields a valid MRZ record.
// Only non-identifying metadata is included; field values never leave the
// service over the bus.
type ScanCompletedEvent struct {
	JobID        string `json:"job_id"`
	ClientID     string `json:"client_id,omitempty"`
	DocumentType string `json:"document_type"`
	Format       string `json:"format"`
	DurationMs   int64  `json:"duration_ms"`
}

// ScanFailedEvent is published when a transcript produces a diagnostic.
type ScanFailedEvent struct {
	JobID      string `json:"job_id"`
	ClientID   string `json:"client_id,omitempty"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	DurationMs int64  `json:"duration_ms"`
}

// TranscriptReceivedEvent is consumed from OCR frontends that push
// transcripts over the bus instead of calling the HTTP API.
type TranscriptReceivedEvent struct {
	ClientID   string `json:"client_id"`
	Transcript string `json:"transcript"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), time.Now().Nanosecond()%10000)
}
