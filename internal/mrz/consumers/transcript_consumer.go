package consumers

import (
	"context"

	"github.com/veriscan/veriscan-backend/internal/mrz/service"
	"github.com/veriscan/veriscan-backend/pkg/logger"
	"github.com/veriscan/veriscan-backend/pkg/messaging"
)

// TranscriptConsumer consumes OCR transcript events. OCR frontends that
// cannot call the HTTP API push transcripts over the bus instead; each
// transcript is scanned exactly like an API submission.
type TranscriptConsumer struct {
	consumer    *messaging.Consumer
	scanService *service.Service
	logger      *logger.Logger
}

// NewTranscriptConsumer creates a new transcript consumer
func NewTranscriptConsumer(
	rmq *messaging.RabbitMQ,
	scanService *service.Service,
	log *logger.Logger,
) (*TranscriptConsumer, error) {
	consumer, err := messaging.NewConsumer(rmq, "mrz-service.ocr-transcripts", log)
	if err != nil {
		return nil, err
	}

	if err := consumer.Subscribe(messaging.ExchangeOCREvents, "ocr.transcript.#"); err != nil {
		return nil, err
	}

	c := &TranscriptConsumer{
		consumer:    consumer,
		scanService: scanService,
		logger:      log,
	}

	consumer.RegisterHandler(messaging.EventTranscriptReceived, c.handleTranscriptReceived)

	return c, nil
}

// Start starts consuming messages
func (c *TranscriptConsumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}

func (c *TranscriptConsumer) handleTranscriptReceived(ctx context.Context, event *messaging.Event) error {
	var data messaging.TranscriptReceivedEvent
	if err := event.UnmarshalData(&data); err != nil {
		return err
	}

	c.logger.Info().
		Str("client_id", data.ClientID).
		Msg("received transcript event")

	job, err := c.scanService.StartScan(ctx, []byte(data.Transcript), data.ClientID)
	if err != nil {
		// Oversized or empty transcripts are a producer bug; log and ack so
		// the message doesn't loop through the retry queue
		c.logger.Warn().Err(err).
			Str("client_id", data.ClientID).
			Msg("rejected transcript from event")
		return nil
	}

	c.logger.Info().
		Str("client_id", data.ClientID).
		Str("job_id", job.JobID).
		Msg("scan started from transcript event")

	return nil
}
