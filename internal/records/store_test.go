package records

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID     int
	Title  string
	Author string
	Pages  int
	Due    Date
}

func (n note) SearchText() []string { return []string{n.Title, n.Author} }

type noteDraft struct {
	Title  string
	Author string
	Pages  int
	Due    Date
}

func newNoteDraft(now time.Time) noteDraft { return noteDraft{Due: DateOf(now)} }

func (d noteDraft) Set(field, raw string, c Coercer) (noteDraft, error) {
	switch field {
	case "title":
		d.Title = raw
	case "author":
		d.Author = raw
	case "pages":
		v, err := c.Int(field, raw)
		if err != nil {
			return d, err
		}
		d.Pages = v
	case "due":
		v, err := c.Date(field, raw)
		if err != nil {
			return d, err
		}
		d.Due = v
	default:
		return d, UnknownField(field)
	}
	return d, nil
}

func (d noteDraft) Build(id int, _ time.Time) note {
	return note{ID: id, Title: d.Title, Author: d.Author, Pages: d.Pages, Due: d.Due}
}

func fixedClock() time.Time { return time.Date(2024, 10, 1, 9, 30, 0, 0, time.UTC) }

func seededNotes() *Store[note] {
	return NewStore(fixedClock,
		note{ID: 1, Title: "Ward Rounds", Author: "Dr. Smith"},
		note{ID: 2, Title: "Discharge Plan", Author: "Nurse Lee"},
		note{ID: 3, Title: "Pharmacy Audit", Author: "SMITHERS"},
	)
}

func TestStore_AddAssignsLengthPlusOne(t *testing.T) {
	s := seededNotes()
	before := s.Len()

	rec, err := s.Add(noteDraft{Title: "Night Shift"})
	require.NoError(t, err)

	assert.Equal(t, before+1, s.Len())
	assert.Equal(t, before+1, rec.ID)
	assert.Equal(t, "Night Shift", s.List()[before].Title)
}

func TestStore_FilterEmptyQueryReturnsAllInOrder(t *testing.T) {
	s := seededNotes()

	got := s.Filter("")

	require.Len(t, got, 3)
	for i, rec := range got {
		assert.Equal(t, i+1, rec.ID)
	}
}

func TestStore_FilterIsCaseInsensitive(t *testing.T) {
	s := seededNotes()

	got := s.Filter("smith")

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestStore_FilterPartitionsStore(t *testing.T) {
	s := seededNotes()
	for _, q := range []string{"a", "PLAN", "dr.", "zzz", "  ", "rounds"} {
		kept := map[int]bool{}
		for _, rec := range s.Filter(q) {
			kept[rec.ID] = true
			assert.True(t, containsFold(rec, q), "query %q kept %d", q, rec.ID)
		}
		for _, rec := range s.List() {
			if !kept[rec.ID] {
				assert.False(t, containsFold(rec, q), "query %q dropped %d", q, rec.ID)
			}
		}
	}
}

func containsFold(n note, q string) bool {
	for _, f := range n.SearchText() {
		if strings.Contains(strings.ToLower(f), strings.ToLower(q)) {
			return true
		}
	}
	return false
}

func TestStore_FilterReturnsCopy(t *testing.T) {
	s := seededNotes()

	got := s.Filter("")
	got[0].Title = "mutated"

	assert.Equal(t, "Ward Rounds", s.List()[0].Title)
}

type reading struct {
	ID    int
	Value float64
}

func (r reading) SearchText() []string { return nil }

func (r reading) Validate() error {
	if r.Value < 0 {
		return ErrInvalidValue
	}
	return nil
}

type readingDraft struct{ Value float64 }

func (d readingDraft) Build(id int, _ time.Time) reading { return reading{ID: id, Value: d.Value} }

func TestStore_AddRejectsInvalidRecord(t *testing.T) {
	s := NewStore(fixedClock, reading{ID: 1, Value: 3})

	_, err := s.Add(readingDraft{Value: -1})
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, 1, s.Len())

	rec, err := s.Add(readingDraft{Value: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, rec.ID)
	assert.Equal(t, []reading{{ID: 1, Value: 3}, {ID: 2, Value: 2}}, s.List())
}
