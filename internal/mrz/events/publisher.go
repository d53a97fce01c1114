package events

import (
	"context"

	"github.com/veriscan/veriscan-backend/internal/mrz/domain"
	"github.com/veriscan/veriscan-backend/pkg/logger"
	"github.com/veriscan/veriscan-backend/pkg/messaging"
)

// ScanEventPublisher publishes scan lifecycle events. Publishing is
// best-effort: a bus outage must not fail the scan itself, so errors are
// logged and swallowed.
type ScanEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewScanEventPublisher creates a new scan event publisher
func NewScanEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*ScanEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeScanEvents, "mrz-service", log)
	if err != nil {
		return nil, err
	}

	return &ScanEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// PublishScanCompleted publishes a scan completed event.
// The record's field values are deliberately not included.
func (p *ScanEventPublisher) PublishScanCompleted(ctx context.Context, jobID, clientID string, record *domain.Record, durationMs int64) {
	data := messaging.ScanCompletedEvent{
		JobID:        jobID,
		ClientID:     clientID,
		DocumentType: record.DocumentType,
		Format:       string(record.Format),
		DurationMs:   durationMs,
	}

	if err := p.publisher.Publish(ctx, messaging.EventScanCompleted, data); err != nil {
		p.logger.Error().Err(err).Str("job_id", jobID).Msg("failed to publish scan completed event")
	}
}

// PublishScanFailed publishes a scan failed event
func (p *ScanEventPublisher) PublishScanFailed(ctx context.Context, jobID, clientID string, diag *domain.Diagnostic, durationMs int64) {
	data := messaging.ScanFailedEvent{
		JobID:      jobID,
		ClientID:   clientID,
		Code:       string(diag.Code),
		Message:    diag.Message,
		DurationMs: durationMs,
	}

	if err := p.publisher.Publish(ctx, messaging.EventScanFailed, data); err != nil {
		p.logger.Error().Err(err).Str("job_id", jobID).Msg("failed to publish scan failed event")
	}
}
