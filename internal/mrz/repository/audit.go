package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/veriscan/veriscan-backend/internal/mrz/domain"
	"github.com/veriscan/veriscan-backend/pkg/database"
)

// AuditRepository persists scan audit entries. Entries carry metadata only,
// never the transcript or the extracted holder data.
type AuditRepository struct {
	db *database.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *database.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record inserts an audit entry for a completed or failed scan
func (r *AuditRepository) Record(ctx context.Context, entry *domain.ScanAuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO scan_audit (id, client_id, document_type, format, outcome,
		                        processing_duration_ms, transcript_zeroed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		entry.ID,
		entry.ClientID,
		entry.DocumentType,
		entry.Format,
		entry.Outcome,
		entry.ProcessingDurationMs,
		entry.TranscriptZeroedAt,
	).Scan(&entry.CreatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

// ListRecent returns the most recent audit entries, newest first
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]*domain.ScanAuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, client_id, document_type, format, outcome,
		       processing_duration_ms, transcript_zeroed_at, created_at
		FROM scan_audit
		ORDER BY created_at DESC
		LIMIT $1
	`

	var entries []*domain.ScanAuditEntry
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByOutcome returns scan counts grouped by outcome for reporting
func (r *AuditRepository) CountByOutcome(ctx context.Context) (map[string]int64, error) {
	query := `SELECT outcome, COUNT(*) AS count FROM scan_audit GROUP BY outcome`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var outcome string
		var count int64
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, err
		}
		counts[outcome] = count
	}
	return counts, rows.Err()
}
