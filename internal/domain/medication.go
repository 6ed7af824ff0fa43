package domain

import (
	"time"

	"hospital-data/internal/records"
)

// Medication is a pharmacy stock line.
type Medication struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Dosage         string       `json:"dosage"`
	Quantity       int          `json:"quantity"`
	ExpirationDate records.Date `json:"expirationDate"`
	Supplier       string       `json:"supplier"`
}

func (m Medication) RecordID() int { return m.ID }

func (m Medication) SearchText() []string { return []string{m.Name, m.Supplier} }

func (m Medication) Row() []any {
	return []any{m.Name, m.Dosage, m.Quantity, m.ExpirationDate.Display(), m.Supplier}
}

type MedicationDraft struct {
	Name           string       `json:"name"`
	Dosage         string       `json:"dosage"`
	Quantity       int          `json:"quantity"`
	ExpirationDate records.Date `json:"expirationDate"`
	Supplier       string       `json:"supplier"`
}

func NewMedicationDraft(now time.Time) MedicationDraft {
	return MedicationDraft{ExpirationDate: records.DateOf(now)}
}

func (d MedicationDraft) Set(field, raw string, c records.Coercer) (MedicationDraft, error) {
	switch field {
	case "name":
		d.Name = raw
	case "dosage":
		d.Dosage = raw
	case "quantity":
		v, err := c.Int(field, raw)
		if err != nil {
			return d, err
		}
		d.Quantity = v
	case "expirationDate":
		v, err := c.Date(field, raw)
		if err != nil {
			return d, err
		}
		d.ExpirationDate = v
	case "supplier":
		d.Supplier = raw
	default:
		return d, records.UnknownField(field)
	}
	return d, nil
}

func (d MedicationDraft) Build(id int, _ time.Time) Medication {
	return Medication{
		ID:             id,
		Name:           d.Name,
		Dosage:         d.Dosage,
		Quantity:       d.Quantity,
		ExpirationDate: d.ExpirationDate,
		Supplier:       d.Supplier,
	}
}

var MedicationSchema = Schema{
	Fields: []Field{
		text("name", "Name"),
		text("dosage", "Dosage"),
		integer("quantity", "Quantity"),
		date("expirationDate", "Expiration Date"),
		text("supplier", "Supplier"),
	},
	Columns:    []string{"Name", "Dosage", "Quantity", "Expiration Date", "Supplier"},
	Searchable: []string{"name", "supplier"},
}

func SeedMedications() []Medication {
	return []Medication{
		{ID: 1, Name: "Amoxicillin", Dosage: "500mg", Quantity: 1000, ExpirationDate: records.NewDate(2025, time.December, 31), Supplier: "PharmaCorp"},
		{ID: 2, Name: "Lisinopril", Dosage: "10mg", Quantity: 500, ExpirationDate: records.NewDate(2026, time.June, 30), Supplier: "MediSupply"},
	}
}
