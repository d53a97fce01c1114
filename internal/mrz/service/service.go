package service

import (
	"context"
	"time"

	"github.com/veriscan/veriscan-backend/internal/mrz/domain"
	"github.com/veriscan/veriscan-backend/internal/mrz/parser"
	"github.com/veriscan/veriscan-backend/internal/mrz/storage"
	"github.com/veriscan/veriscan-backend/pkg/errors"
	"github.com/veriscan/veriscan-backend/pkg/logger"
)

// AuditRecorder persists scan audit entries
type AuditRecorder interface {
	Record(ctx context.Context, entry *domain.ScanAuditEntry) error
}

// EventSink publishes scan lifecycle events
type EventSink interface {
	PublishScanCompleted(ctx context.Context, jobID, clientID string, record *domain.Record, durationMs int64)
	PublishScanFailed(ctx context.Context, jobID, clientID string, diag *domain.Diagnostic, durationMs int64)
}

// Service orchestrates scans: parse transcript → zero it → record outcome.
// The audit recorder and event sink may be nil; scanning still works without
// persistence or a message bus.
type Service struct {
	storage            *storage.JobStore
	audit              AuditRecorder
	events             EventSink
	log                *logger.Logger
	maxTranscriptBytes int64
}

// NewService creates a new scan service
func NewService(store *storage.JobStore, audit AuditRecorder, events EventSink, log *logger.Logger, maxTranscriptBytes int64) *Service {
	return &Service{
		storage:            store,
		audit:              audit,
		events:             events,
		log:                log,
		maxTranscriptBytes: maxTranscriptBytes,
	}
}

// Parse runs the MRZ pipeline synchronously and returns the record or a
// diagnostic. The input is not retained.
func (s *Service) Parse(text string) (*domain.Record, *domain.Diagnostic) {
	return parser.Parse(text)
}

// StartScan creates a scan job and processes the transcript asynchronously.
// Returns the job immediately so the caller can poll for results.
// Transcript bytes are zeroed as soon as parsing finishes.
func (s *Service) StartScan(ctx context.Context, transcript []byte, clientID string) (*domain.ScanJob, error) {
	if len(transcript) == 0 {
		return nil, errors.BadRequest("transcript is required")
	}
	if s.maxTranscriptBytes > 0 && int64(len(transcript)) > s.maxTranscriptBytes {
		return nil, errors.BadRequest("transcript exceeds maximum size")
	}

	jobID := storage.GenerateJobID()
	job := &domain.ScanJob{
		JobID:     jobID,
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now(),
	}
	s.storage.StoreJob(job)

	go s.processAsync(jobID, transcript, clientID)

	return s.storage.GetJob(jobID), nil
}

// processAsync runs the parse in a background goroutine.
func (s *Service) processAsync(jobID string, transcript []byte, clientID string) {
	// Detached context so request cancellation doesn't kill processing
	ctx := context.Background()
	log := s.log.WithJobID(jobID)
	start := time.Now()

	record, diag := parser.Parse(string(transcript))

	// Zero the transcript immediately after parsing; identity document
	// contents must not linger in memory
	storage.ZeroBytes(transcript)
	zeroedAt := time.Now()
	durationMs := time.Since(start).Milliseconds()

	entry := &domain.ScanAuditEntry{
		ClientID:             clientID,
		ProcessingDurationMs: durationMs,
		TranscriptZeroedAt:   zeroedAt,
	}

	if diag != nil {
		s.storage.UpdateJob(jobID, func(j *domain.ScanJob) {
			j.Status = domain.StatusFailed
			j.Diagnostic = diag
		})
		entry.Outcome = string(diag.Code)

		log.Info().
			Str("code", string(diag.Code)).
			Int64("duration_ms", durationMs).
			Msg("scan produced diagnostic")

		if s.events != nil {
			s.events.PublishScanFailed(ctx, jobID, clientID, diag, durationMs)
		}
	} else {
		s.storage.UpdateJob(jobID, func(j *domain.ScanJob) {
			j.Status = domain.StatusCompleted
			j.Record = record
		})
		entry.Outcome = "valid"
		entry.DocumentType = record.DocumentType
		entry.Format = string(record.Format)

		log.Info().
			Str("format", string(record.Format)).
			Int64("duration_ms", durationMs).
			Msg("scan completed")

		if s.events != nil {
			s.events.PublishScanCompleted(ctx, jobID, clientID, record, durationMs)
		}
	}

	if s.audit != nil {
		if err := s.audit.Record(ctx, entry); err != nil {
			log.Error().Err(err).Msg("failed to write scan audit entry")
		}
	}
}

// GetJob retrieves a scan job by ID
func (s *Service) GetJob(jobID string) *domain.ScanJob {
	return s.storage.GetJob(jobID)
}
