// Package records holds the in-memory record store, its filter view and the
// create form that feeds it. Every hospital collection is an instance of these
// three pieces with its own record and draft types.
package records

import (
	"strings"
	"sync"
	"time"
)

// Searchable exposes the string fields a free-text query is matched against.
type Searchable interface {
	SearchText() []string
}

// Builder turns a draft into a stored record once an id has been assigned.
// Derived fields (balances, timestamps) are computed here.
type Builder[T any] interface {
	Build(id int, now time.Time) T
}

// Validator is implemented by records that can be built into an unusable
// state, such as a derived amount overflowing to infinity.
type Validator interface {
	Validate() error
}

// Store is an ordered, append-only sequence of records of one type.
type Store[T Searchable] struct {
	mu    sync.RWMutex
	items []T
	now   func() time.Time
}

// NewStore creates a store holding seed in order. A nil clock means time.Now.
func NewStore[T Searchable](now func() time.Time, seed ...T) *Store[T] {
	if now == nil {
		now = time.Now
	}
	items := make([]T, 0, len(seed))
	items = append(items, seed...)
	return &Store[T]{items: items, now: now}
}

// Now reads the store clock.
func (s *Store[T]) Now() time.Time {
	return s.now()
}

// Add appends the record built from d with id = Len()+1 and returns it.
// Ids are not checked for uniqueness. A record failing Validate is not stored.
func (s *Store[T]) Add(d Builder[T]) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := d.Build(len(s.items)+1, s.now())
	if v, ok := any(rec).(Validator); ok {
		if err := v.Validate(); err != nil {
			var zero T
			return zero, err
		}
	}
	s.items = append(s.items, rec)
	return rec, nil
}

// Len returns the number of stored records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// List returns a copy of every record in insertion order.
func (s *Store[T]) List() []T {
	return s.Filter("")
}

// Filter returns, in insertion order, the records with at least one searchable
// field containing query case-insensitively. An empty query matches everything.
func (s *Store[T]) Filter(query string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	if query == "" {
		return append(out, s.items...)
	}
	q := strings.ToLower(query)
	for _, rec := range s.items {
		if matches(rec, q) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec Searchable, lowered string) bool {
	for _, field := range rec.SearchText() {
		if strings.Contains(strings.ToLower(field), lowered) {
			return true
		}
	}
	return false
}
