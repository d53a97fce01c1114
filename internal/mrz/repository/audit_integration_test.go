//go:build integration

package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veriscan/veriscan-backend/internal/mrz/domain"
	"github.com/veriscan/veriscan-backend/internal/mrz/repository"
	"github.com/veriscan/veriscan-backend/pkg/testutil"
)

var suite *testutil.IntegrationSuite

func TestMain(m *testing.M) {
	ctx := context.Background()

	s, err := testutil.NewIntegrationSuite(ctx)
	if err != nil {
		log.Fatalf("failed to set up integration suite: %v", err)
	}
	suite = s

	code := m.Run()
	testutil.TerminateContainer(ctx)
	os.Exit(code)
}

func TestAuditRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	suite.TruncateScanAudit(t, ctx)

	repo := repository.NewAuditRepository(suite.DB)

	entry := &domain.ScanAuditEntry{
		ClientID:             "ocr-gateway",
		DocumentType:         "Passport",
		Format:               "td3",
		Outcome:              "valid",
		ProcessingDurationMs: 15,
		TranscriptZeroedAt:   time.Now(),
	}
	require.NoError(t, repo.Record(ctx, entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	entries, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ocr-gateway", entries[0].ClientID)
	assert.Equal(t, "valid", entries[0].Outcome)
}

func TestAuditRepository_OutcomeConstraint(t *testing.T) {
	ctx := context.Background()
	suite.TruncateScanAudit(t, ctx)

	repo := repository.NewAuditRepository(suite.DB)

	entry := &domain.ScanAuditEntry{
		ClientID:           "ocr-gateway",
		Outcome:            "bogus",
		TranscriptZeroedAt: time.Now(),
	}
	assert.Error(t, repo.Record(ctx, entry))
}

func TestAuditRepository_CountByOutcomeGroups(t *testing.T) {
	ctx := context.Background()
	suite.TruncateScanAudit(t, ctx)

	repo := repository.NewAuditRepository(suite.DB)

	outcomes := []string{"valid", "valid", "validation_failed", "no_candidates"}
	for _, outcome := range outcomes {
		err := repo.Record(ctx, &domain.ScanAuditEntry{
			ClientID:           "kiosk-1",
			Outcome:            outcome,
			TranscriptZeroedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	counts, err := repo.CountByOutcome(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["valid"])
	assert.Equal(t, int64(1), counts["validation_failed"])
	assert.Equal(t, int64(1), counts["no_candidates"])
}
