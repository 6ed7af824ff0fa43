package service

import (
	"encoding/json"
	"fmt"
	"time"

	"hospital-data/internal/domain"
	"hospital-data/internal/records"
)

// Collection is one record store of a module, with drafts carried as JSON so
// they can be parked in a KV between requests.
type Collection interface {
	Module() string
	Name() string
	// Key is unique across modules, e.g. "pharmacy/medications".
	Key() string
	Schema() domain.Schema
	Len() int
	Filter(query string) []domain.Record
	DefaultDraft() (json.RawMessage, error)
	ApplyField(draft json.RawMessage, field, value string) (json.RawMessage, error)
	// Submit adds draft to the store and returns the new record and the reset
	// draft. A record that fails validation is not stored.
	Submit(draft json.RawMessage) (domain.Record, json.RawMessage, error)
}

type collection[T domain.Record, D records.Draft[D, T]] struct {
	module   string
	name     string
	schema   domain.Schema
	store    *records.Store[T]
	defaults func(now time.Time) D
	coercer  records.Coercer
}

func newCollection[T domain.Record, D records.Draft[D, T]](
	module, name string,
	schema domain.Schema,
	now func() time.Time,
	coercer records.Coercer,
	defaults func(time.Time) D,
	seed []T,
) *collection[T, D] {
	return &collection[T, D]{
		module:   module,
		name:     name,
		schema:   schema,
		store:    records.NewStore(now, seed...),
		defaults: defaults,
		coercer:  coercer,
	}
}

func (c *collection[T, D]) Module() string        { return c.module }
func (c *collection[T, D]) Name() string          { return c.name }
func (c *collection[T, D]) Key() string           { return c.module + "/" + c.name }
func (c *collection[T, D]) Schema() domain.Schema { return c.schema }
func (c *collection[T, D]) Len() int              { return c.store.Len() }

func (c *collection[T, D]) Filter(query string) []domain.Record {
	items := c.store.Filter(query)
	out := make([]domain.Record, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func (c *collection[T, D]) DefaultDraft() (json.RawMessage, error) {
	return c.encode(records.NewForm(c.store, c.defaults, c.coercer).Draft())
}

func (c *collection[T, D]) ApplyField(draft json.RawMessage, field, value string) (json.RawMessage, error) {
	f, err := c.form(draft)
	if err != nil {
		return nil, err
	}
	d, err := f.SetField(field, value)
	if err != nil {
		return nil, err
	}
	return c.encode(d)
}

func (c *collection[T, D]) Submit(draft json.RawMessage) (domain.Record, json.RawMessage, error) {
	f, err := c.form(draft)
	if err != nil {
		return nil, nil, err
	}
	rec, err := f.Submit()
	if err != nil {
		return nil, nil, err
	}
	next, err := c.encode(f.Draft())
	if err != nil {
		return nil, nil, err
	}
	return rec, next, nil
}

// form resumes a saved draft; an empty draft starts from the defaults.
func (c *collection[T, D]) form(draft json.RawMessage) (*records.Form[T, D], error) {
	f := records.NewForm(c.store, c.defaults, c.coercer)
	if len(draft) == 0 {
		return f, nil
	}
	var d D
	if err := json.Unmarshal(draft, &d); err != nil {
		return nil, fmt.Errorf("decode %s draft: %w", c.Key(), err)
	}
	f.Load(d)
	return f, nil
}

func (c *collection[T, D]) encode(d D) (json.RawMessage, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode %s draft: %w", c.Key(), err)
	}
	return b, nil
}
