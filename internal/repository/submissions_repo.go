package repository

import (
	"context"
	"encoding/json"
	"time"
)

// Submission is one accepted create-form submit, kept as an audit trail.
// Records themselves live only in memory; this log is what survives a restart.
type Submission struct {
	SubmissionID string          `json:"submission_id"`
	Collection   string          `json:"collection"`
	RecordID     int             `json:"record_id"`
	SessionID    string          `json:"session_id"`
	Payload      json.RawMessage `json:"payload"`
	SubmittedAt  time.Time       `json:"submitted_at"`
}

// SubmissionLog stores the audit trail of submitted records.
type SubmissionLog interface {
	// Append records one submission.
	Append(ctx context.Context, s Submission) error

	// ListRecent returns at most limit submissions for a collection, newest first.
	ListRecent(ctx context.Context, collection string, limit int) ([]Submission, error)
}
