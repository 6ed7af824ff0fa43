// Package domain defines the hospital record shapes, their create-form drafts
// and the seed data each collection starts with.
package domain

import "hospital-data/internal/records"

// Record is what every stored hospital record provides to the API layer.
type Record interface {
	records.Searchable
	RecordID() int
	Row() []any
}

// FieldKind tells clients how a draft field is edited and coerced.
type FieldKind string

const (
	KindText    FieldKind = "text"
	KindInteger FieldKind = "integer"
	KindDecimal FieldKind = "decimal"
	KindDate    FieldKind = "date"
	KindOption  FieldKind = "option"
)

// Field describes one editable draft field.
type Field struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Options []string  `json:"options,omitempty"`
}

// Schema describes a collection: the form fields, the table columns (in the
// order Row returns them) and the fields a query is matched against.
type Schema struct {
	Fields     []Field  `json:"fields"`
	Columns    []string `json:"columns"`
	Searchable []string `json:"searchable"`
}

func text(name, label string) Field { return Field{Name: name, Label: label, Kind: KindText} }

func integer(name, label string) Field { return Field{Name: name, Label: label, Kind: KindInteger} }

func decimal(name, label string) Field { return Field{Name: name, Label: label, Kind: KindDecimal} }

func date(name, label string) Field { return Field{Name: name, Label: label, Kind: KindDate} }

func option(name, label string, opts ...string) Field {
	return Field{Name: name, Label: label, Kind: KindOption, Options: opts}
}
