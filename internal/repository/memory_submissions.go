package repository

import (
	"context"
	"sync"
)

// MemorySubmissionLog is used when the database is disabled.
type MemorySubmissionLog struct {
	mu   sync.RWMutex
	rows []Submission
}

func NewMemorySubmissionLog() *MemorySubmissionLog {
	return &MemorySubmissionLog{}
}

var _ SubmissionLog = (*MemorySubmissionLog)(nil)

func (r *MemorySubmissionLog) Append(_ context.Context, s Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, s)
	return nil
}

func (r *MemorySubmissionLog) ListRecent(_ context.Context, collection string, limit int) ([]Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Submission{}
	for i := len(r.rows) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if r.rows[i].Collection == collection {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}
