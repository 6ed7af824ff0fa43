package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital-data/internal/store"
)

const draftKeyPrefix = "hospital-data:draft:"

// DraftStore parks in-progress create forms per client session.
type DraftStore struct {
	kv  store.KV
	ttl time.Duration
}

func NewDraftStore(kv store.KV, ttl time.Duration) *DraftStore {
	return &DraftStore{kv: kv, ttl: ttl}
}

// draftKey flattens "module/collection" so glob scans stay within one segment.
func draftKey(session, collection string) string {
	return draftKeyPrefix + session + ":" + strings.Replace(collection, "/", ":", 1)
}

// Load returns the saved draft, or ok=false if the session has none.
func (s *DraftStore) Load(ctx context.Context, session, collection string) (json.RawMessage, bool, error) {
	v, err := s.kv.Get(ctx, draftKey(session, collection))
	if errors.Is(err, store.ErrMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load draft %s: %w", collection, err)
	}
	return json.RawMessage(v), true, nil
}

// Save stores the draft and restarts its TTL.
func (s *DraftStore) Save(ctx context.Context, session, collection string, draft json.RawMessage) error {
	if err := s.kv.Set(ctx, draftKey(session, collection), string(draft), s.ttl); err != nil {
		return fmt.Errorf("save draft %s: %w", collection, err)
	}
	return nil
}

func (s *DraftStore) Clear(ctx context.Context, session, collection string) error {
	if err := s.kv.Delete(ctx, draftKey(session, collection)); err != nil {
		return fmt.Errorf("clear draft %s: %w", collection, err)
	}
	return nil
}

// Collections lists the collection keys the session has a saved draft for.
func (s *DraftStore) Collections(ctx context.Context, session string) ([]string, error) {
	prefix := draftKeyPrefix + session + ":"
	keys, err := s.kv.ScanKeys(ctx, prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan drafts: %w", err)
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.Replace(strings.TrimPrefix(k, prefix), ":", "/", 1))
	}
	return out, nil
}
