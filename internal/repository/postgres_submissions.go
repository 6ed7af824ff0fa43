package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresSubmissionLog writes the audit trail to record_submissions.
type PostgresSubmissionLog struct {
	db *sql.DB
}

func NewPostgresSubmissionLog(db *sql.DB) *PostgresSubmissionLog {
	return &PostgresSubmissionLog{db: db}
}

var _ SubmissionLog = (*PostgresSubmissionLog)(nil)

const createSubmissionsTable = `
	CREATE TABLE IF NOT EXISTS record_submissions (
		submission_id UUID PRIMARY KEY,
		collection    TEXT        NOT NULL,
		record_id     INTEGER     NOT NULL,
		session_id    TEXT        NOT NULL,
		payload       JSONB       NOT NULL,
		submitted_at  TIMESTAMPTZ NOT NULL
	)`

// EnsureSchema creates the table if it does not exist yet.
func (r *PostgresSubmissionLog) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSubmissionsTable); err != nil {
		return fmt.Errorf("failed to create record_submissions: %w", err)
	}
	return nil
}

func (r *PostgresSubmissionLog) Append(ctx context.Context, s Submission) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO record_submissions (submission_id, collection, record_id, session_id, payload, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.SubmissionID, s.Collection, s.RecordID, s.SessionID, []byte(s.Payload), s.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (r *PostgresSubmissionLog) ListRecent(ctx context.Context, collection string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			submission_id::text,
			collection,
			record_id,
			session_id,
			payload,
			submitted_at
		FROM record_submissions
		WHERE collection = $1
		ORDER BY submitted_at DESC
		LIMIT $2
	`, collection, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	out := []Submission{}
	for rows.Next() {
		var s Submission
		var payload []byte
		if err := rows.Scan(&s.SubmissionID, &s.Collection, &s.RecordID, &s.SessionID, &payload, &s.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		s.Payload = payload
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}
	return out, nil
}
