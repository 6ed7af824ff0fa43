package records

import "time"

// Draft is the editable, not yet submitted value of a create form. Set never
// mutates the receiver; it returns the replacement draft.
type Draft[D any, T any] interface {
	Builder[T]
	Set(field, raw string, c Coercer) (D, error)
}

// Form pairs a draft with the store it is submitted to.
type Form[T Searchable, D Draft[D, T]] struct {
	store    *Store[T]
	defaults func(now time.Time) D
	coercer  Coercer
	draft    D
}

// NewForm starts a form with a fresh default draft. Date fields in the
// defaults are taken from the store clock at this moment.
func NewForm[T Searchable, D Draft[D, T]](store *Store[T], defaults func(now time.Time) D, c Coercer) *Form[T, D] {
	return &Form[T, D]{
		store:    store,
		defaults: defaults,
		coercer:  c,
		draft:    defaults(store.Now()),
	}
}

// Draft returns the current draft.
func (f *Form[T, D]) Draft() D {
	return f.draft
}

// Load resumes editing a previously saved draft.
func (f *Form[T, D]) Load(d D) {
	f.draft = d
}

// SetField applies raw input to one field. On error the draft is unchanged.
func (f *Form[T, D]) SetField(field, raw string) (D, error) {
	next, err := f.draft.Set(field, raw, f.coercer)
	if err != nil {
		return f.draft, err
	}
	f.draft = next
	return f.draft, nil
}

// Submit appends the draft to the store and resets the form. Empty strings
// and zeros are accepted as entered. If the built record is rejected the
// draft is kept.
func (f *Form[T, D]) Submit() (T, error) {
	rec, err := f.store.Add(f.draft)
	if err != nil {
		return rec, err
	}
	f.Reset()
	return rec, nil
}

// Reset replaces the draft with the initial defaults.
func (f *Form[T, D]) Reset() D {
	f.draft = f.defaults(f.store.Now())
	return f.draft
}
