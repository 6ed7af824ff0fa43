package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hospital-data/internal/domain"
	"hospital-data/internal/events"
	"hospital-data/internal/export"
	"hospital-data/internal/metrics"
	"hospital-data/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecordService is the API-facing view of the catalog: filtered lists,
// per-session drafts and submits.
type RecordService struct {
	catalog *Catalog
	drafts  *DraftStore
	audit   repository.SubmissionLog
	events  events.Publisher
	metrics *metrics.Recorder
	logger  *zap.Logger
	now     func() time.Time
}

type RecordServiceOptions struct {
	Audit   repository.SubmissionLog
	Events  events.Publisher
	Metrics *metrics.Recorder
	Logger  *zap.Logger
	Now     func() time.Time
}

func NewRecordService(catalog *Catalog, drafts *DraftStore, opts RecordServiceOptions) *RecordService {
	s := &RecordService{
		catalog: catalog,
		drafts:  drafts,
		audit:   opts.Audit,
		events:  opts.Events,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		now:     opts.Now,
	}
	if s.audit == nil {
		s.audit = repository.NewMemorySubmissionLog()
	}
	if s.events == nil {
		s.events = events.Nop{}
	}
	if s.metrics == nil {
		s.metrics = metrics.NewRecorder()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	for _, c := range catalog.Collections() {
		s.metrics.Stored(c.Key(), c.Len())
	}
	return s
}

func (s *RecordService) Catalog() *Catalog {
	return s.catalog
}

// List returns the filtered view of a collection. An empty query lists all
// records in insertion order.
func (s *RecordService) List(_ context.Context, module, name, query string) ([]domain.Record, error) {
	c, err := s.catalog.Collection(module, name)
	if err != nil {
		return nil, err
	}
	s.metrics.Filtered(c.Key(), query)
	return c.Filter(query), nil
}

// Draft returns the session's current draft, creating the default one on
// first access.
func (s *RecordService) Draft(ctx context.Context, session, module, name string) (json.RawMessage, error) {
	c, err := s.catalog.Collection(module, name)
	if err != nil {
		return nil, err
	}
	return s.loadDraft(ctx, session, c)
}

// SetField applies one raw input value to the session draft. A rejected value
// leaves the stored draft unchanged.
func (s *RecordService) SetField(ctx context.Context, session, module, name, field, value string) (json.RawMessage, error) {
	c, err := s.catalog.Collection(module, name)
	if err != nil {
		return nil, err
	}
	draft, err := s.loadDraft(ctx, session, c)
	if err != nil {
		return nil, err
	}
	next, err := c.ApplyField(draft, field, value)
	s.metrics.DraftUpdated(c.Key(), err)
	if err != nil {
		return nil, err
	}
	if err := s.drafts.Save(ctx, session, c.Key(), next); err != nil {
		return nil, err
	}
	return next, nil
}

// ResetDraft replaces the session draft with fresh defaults.
func (s *RecordService) ResetDraft(ctx context.Context, session, module, name string) (json.RawMessage, error) {
	c, err := s.catalog.Collection(module, name)
	if err != nil {
		return nil, err
	}
	draft, err := c.DefaultDraft()
	if err != nil {
		return nil, err
	}
	if err := s.drafts.Save(ctx, session, c.Key(), draft); err != nil {
		return nil, err
	}
	return draft, nil
}

type SubmitResult struct {
	Record domain.Record   `json:"record"`
	Draft  json.RawMessage `json:"draft"`
	Count  int             `json:"count"`
}

// Submit adds the session draft to the store and resets the draft. Audit and
// event failures are logged; the record is already stored by then.
func (s *RecordService) Submit(ctx context.Context, session, module, name string) (SubmitResult, error) {
	c, err := s.catalog.Collection(module, name)
	if err != nil {
		return SubmitResult{}, err
	}
	draft, err := s.loadDraft(ctx, session, c)
	if err != nil {
		return SubmitResult{}, err
	}
	rec, next, err := c.Submit(draft)
	if err != nil {
		return SubmitResult{}, err
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("encode %s record: %w", c.Key(), err)
	}
	// Ids are len+1 at insert, so the id is the store size right after this add.
	count := rec.RecordID()
	s.metrics.Submitted(c.Key(), count)

	if err := s.drafts.Save(ctx, session, c.Key(), next); err != nil {
		s.logger.Warn("failed to reset draft after submit",
			zap.String("collection", c.Key()), zap.Error(err))
	}
	at := s.now().UTC()

	if err := s.audit.Append(ctx, repository.Submission{
		SubmissionID: uuid.NewString(),
		Collection:   c.Key(),
		RecordID:     rec.RecordID(),
		SessionID:    session,
		Payload:      payload,
		SubmittedAt:  at,
	}); err != nil {
		s.logger.Error("failed to audit submission",
			zap.String("collection", c.Key()), zap.Int("record_id", rec.RecordID()), zap.Error(err))
	}

	if err := s.events.RecordCreated(ctx, events.RecordCreated{
		Module:     c.Module(),
		Collection: c.Name(),
		RecordID:   rec.RecordID(),
		Record:     payload,
		CreatedAt:  at,
	}); err != nil {
		s.logger.Warn("failed to publish record created",
			zap.String("collection", c.Key()), zap.Int("record_id", rec.RecordID()), zap.Error(err))
	}

	s.logger.Info("record submitted",
		zap.String("collection", c.Key()), zap.Int("record_id", rec.RecordID()), zap.Int("count", count))
	return SubmitResult{Record: rec, Draft: next, Count: count}, nil
}

// Export renders the filtered view as an xlsx workbook.
func (s *RecordService) Export(ctx context.Context, module, name, query string) ([]byte, error) {
	c, err := s.catalog.Collection(module, name)
	if err != nil {
		return nil, err
	}
	recs, err := s.List(ctx, module, name, query)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = r.Row()
	}
	return export.Workbook(c.Name(), c.Schema().Columns, rows)
}

// Submissions returns the audit trail of a collection, newest first.
func (s *RecordService) Submissions(ctx context.Context, module, name string, limit int) ([]repository.Submission, error) {
	c, err := s.catalog.Collection(module, name)
	if err != nil {
		return nil, err
	}
	return s.audit.ListRecent(ctx, c.Key(), limit)
}

// SessionDrafts lists the collections the session has a draft in progress for.
func (s *RecordService) SessionDrafts(ctx context.Context, session string) ([]string, error) {
	return s.drafts.Collections(ctx, session)
}

// DiscardSession drops every draft of the session and reports how many were
// removed, including on a partial failure.
func (s *RecordService) DiscardSession(ctx context.Context, session string) (int, error) {
	keys, err := s.drafts.Collections(ctx, session)
	if err != nil {
		return 0, err
	}
	for i, k := range keys {
		if err := s.drafts.Clear(ctx, session, k); err != nil {
			return i, err
		}
	}
	return len(keys), nil
}

func (s *RecordService) loadDraft(ctx context.Context, session string, c Collection) (json.RawMessage, error) {
	draft, ok, err := s.drafts.Load(ctx, session, c.Key())
	if err != nil {
		return nil, err
	}
	if ok {
		return draft, nil
	}
	draft, err = c.DefaultDraft()
	if err != nil {
		return nil, err
	}
	if err := s.drafts.Save(ctx, session, c.Key(), draft); err != nil {
		return nil, err
	}
	return draft, nil
}
