package storage

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/veriscan/veriscan-backend/internal/mrz/domain"
)

// JobStore provides in-memory storage for scan jobs.
// OCR transcripts are processed in RAM only and zeroed after parsing.
// Jobs are automatically cleaned up after a TTL so results stay pollable
// for a bounded window without accumulating document data.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*domain.ScanJob
	ttl  time.Duration
}

// NewJobStore creates a new in-memory job store with the given TTL
func NewJobStore(ttl time.Duration) *JobStore {
	s := &JobStore{
		jobs: make(map[string]*domain.ScanJob),
		ttl:  ttl,
	}
	go s.cleanupLoop()
	return s
}

// GenerateJobID creates a cryptographically random job ID.
// Job IDs are the only capability needed to poll a scan result, so a
// degraded entropy source must not be papered over; panic instead.
func GenerateJobID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("storage: failed to read random bytes for job ID: " + err.Error())
	}
	const hex = "0123456789abcdef"
	id := make([]byte, 32)
	for i, v := range b {
		id[i*2] = hex[v>>4]
		id[i*2+1] = hex[v&0x0f]
	}
	return string(id)
}

// StoreJob stores a scan job
func (s *JobStore) StoreJob(job *domain.ScanJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.JobID] = job
}

// GetJob retrieves a snapshot of a scan job by ID, or nil if absent.
// Returning a copy keeps callers from observing concurrent updates while
// the scan is still running; Record and Diagnostic are written once under
// the store lock and never mutated after, so the shallow copy is safe to
// read and encode without further coordination.
func (s *JobStore) GetJob(jobID string) *domain.ScanJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil
	}
	snapshot := *job
	return &snapshot
}

// UpdateJob updates an existing scan job under the store lock
func (s *JobStore) UpdateJob(jobID string, update func(*domain.ScanJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[jobID]; ok {
		update(job)
	}
}

// DeleteJob removes a job from storage
func (s *JobStore) DeleteJob(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, jobID)
}

// ZeroBytes overwrites a byte slice with zeros for secure deletion.
// This prevents OCR transcripts of identity documents from lingering in memory.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// cleanupLoop periodically removes expired jobs
func (s *JobStore) cleanupLoop() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for range ticker.C {
		s.cleanup()
	}
}

func (s *JobStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, job := range s.jobs {
		if job.CreatedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
}
