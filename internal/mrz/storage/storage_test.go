package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veriscan/veriscan-backend/internal/mrz/domain"
)

func TestGenerateJobID(t *testing.T) {
	id := GenerateJobID()
	assert.Len(t, id, 32)
	for _, c := range id {
		assert.Contains(t, "0123456789abcdef", string(c))
	}

	other := GenerateJobID()
	assert.NotEqual(t, id, other)
}

func TestStoreAndGetJob(t *testing.T) {
	s := NewJobStore(time.Minute)

	job := &domain.ScanJob{
		JobID:     GenerateJobID(),
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
	}
	s.StoreJob(job)

	got := s.GetJob(job.JobID)
	require.NotNil(t, got)
	assert.Equal(t, domain.StatusPending, got.Status)

	assert.Nil(t, s.GetJob("missing"))
}

func TestUpdateJob(t *testing.T) {
	s := NewJobStore(time.Minute)

	job := &domain.ScanJob{
		JobID:     "job-1",
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now(),
	}
	s.StoreJob(job)

	s.UpdateJob("job-1", func(j *domain.ScanJob) {
		j.Status = domain.StatusCompleted
	})

	assert.Equal(t, domain.StatusCompleted, s.GetJob("job-1").Status)

	// Updating a missing job is a no-op
	s.UpdateJob("missing", func(j *domain.ScanJob) {
		t.Fatal("update callback invoked for missing job")
	})
}

func TestGetJobReturnsSnapshot(t *testing.T) {
	s := NewJobStore(time.Minute)

	s.StoreJob(&domain.ScanJob{
		JobID:     "job-1",
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now(),
	})

	before := s.GetJob("job-1")
	s.UpdateJob("job-1", func(j *domain.ScanJob) {
		j.Status = domain.StatusCompleted
		j.Record = &domain.Record{DocumentNumber: "C01X00T47"}
	})

	// The earlier snapshot must not see the update
	assert.Equal(t, domain.StatusProcessing, before.Status)
	assert.Nil(t, before.Record)

	after := s.GetJob("job-1")
	assert.Equal(t, domain.StatusCompleted, after.Status)
	require.NotNil(t, after.Record)

	// Mutating a snapshot must not leak back into the store
	after.Status = domain.StatusFailed
	assert.Equal(t, domain.StatusCompleted, s.GetJob("job-1").Status)
}

func TestGetJobConcurrentWithUpdates(t *testing.T) {
	s := NewJobStore(time.Minute)

	s.StoreJob(&domain.ScanJob{
		JobID:     "job-1",
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now(),
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			s.UpdateJob("job-1", func(j *domain.ScanJob) {
				j.Status = domain.StatusCompleted
				j.Record = &domain.Record{Valid: true}
			})
			s.UpdateJob("job-1", func(j *domain.ScanJob) {
				j.Status = domain.StatusProcessing
				j.Record = nil
			})
		}
	}()

	// Each snapshot must be internally consistent: a completed job always
	// carries its record, a processing job never does
	for i := 0; i < 1000; i++ {
		job := s.GetJob("job-1")
		require.NotNil(t, job)
		if job.Status == domain.StatusCompleted {
			assert.NotNil(t, job.Record)
		} else {
			assert.Nil(t, job.Record)
		}
	}
	<-done
}

func TestDeleteJob(t *testing.T) {
	s := NewJobStore(time.Minute)

	s.StoreJob(&domain.ScanJob{JobID: "job-1", CreatedAt: time.Now()})
	s.DeleteJob("job-1")

	assert.Nil(t, s.GetJob("job-1"))
}

func TestCleanupRemovesExpiredJobs(t *testing.T) {
	s := NewJobStore(time.Hour)

	s.StoreJob(&domain.ScanJob{JobID: "old", CreatedAt: time.Now().Add(-2 * time.Hour)})
	s.StoreJob(&domain.ScanJob{JobID: "fresh", CreatedAt: time.Now()})

	s.cleanup()

	assert.Nil(t, s.GetJob("old"))
	assert.NotNil(t, s.GetJob("fresh"))
}

func TestZeroBytes(t *testing.T) {
	b := []byte("P<D<<MUSTERMANN<<ERIKA")
	ZeroBytes(b)
	for i, v := range b {
		require.Zerof(t, v, "byte %d not zeroed", i)
	}
}
