package domain

import (
	"time"

	"hospital-data/internal/records"
)

// Patient is a registered patient.
type Patient struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

func (p Patient) RecordID() int { return p.ID }

func (p Patient) SearchText() []string { return []string{p.Name, p.Contact} }

func (p Patient) Row() []any { return []any{p.Name, p.Age, p.Gender, p.Contact} }

// PatientDraft is the add-patient form.
type PatientDraft struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

// NewPatientDraft returns an empty form.
func NewPatientDraft(time.Time) PatientDraft { return PatientDraft{} }

func (d PatientDraft) Set(field, raw string, c records.Coercer) (PatientDraft, error) {
	switch field {
	case "name":
		d.Name = raw
	case "age":
		age, err := c.Int(field, raw)
		if err != nil {
			return d, err
		}
		d.Age = age
	case "gender":
		d.Gender = raw
	case "contact":
		d.Contact = raw
	default:
		return d, records.UnknownField(field)
	}
	return d, nil
}

func (d PatientDraft) Build(id int, _ time.Time) Patient {
	return Patient{ID: id, Name: d.Name, Age: d.Age, Gender: d.Gender, Contact: d.Contact}
}

var PatientSchema = Schema{
	Fields: []Field{
		text("name", "Name"),
		integer("age", "Age"),
		text("gender", "Gender"),
		text("contact", "Contact"),
	},
	Columns:    []string{"Name", "Age", "Gender", "Contact"},
	Searchable: []string{"name", "contact"},
}

// SeedPatients returns the patients every new store starts with.
func SeedPatients() []Patient {
	return []Patient{
		{ID: 1, Name: "John Doe", Age: 35, Gender: "Male", Contact: "123-456-7890"},
		{ID: 2, Name: "Jane Smith", Age: 28, Gender: "Female", Contact: "987-654-3210"},
	}
}
