package domain

import (
	"time"

	"hospital-data/internal/records"
)

const (
	SpecimenCollected = "Collected"
	SpecimenInLab     = "In Lab"
	SpecimenAnalyzed  = "Analyzed"
	SpecimenDisposed  = "Disposed"
)

type Specimen struct {
	ID             int          `json:"id"`
	PatientName    string       `json:"patientName"`
	SpecimenType   string       `json:"specimenType"`
	CollectionDate records.Date `json:"collectionDate"`
	Status         string       `json:"status"`
}

func (s Specimen) RecordID() int { return s.ID }

func (s Specimen) SearchText() []string { return []string{s.PatientName, s.SpecimenType} }

func (s Specimen) Row() []any {
	return []any{s.PatientName, s.SpecimenType, s.CollectionDate.Display(), s.Status}
}

type SpecimenDraft struct {
	PatientName    string       `json:"patientName"`
	SpecimenType   string       `json:"specimenType"`
	CollectionDate records.Date `json:"collectionDate"`
	Status         string       `json:"status"`
}

func NewSpecimenDraft(now time.Time) SpecimenDraft {
	return SpecimenDraft{CollectionDate: records.DateOf(now), Status: SpecimenCollected}
}

func (d SpecimenDraft) Set(field, raw string, c records.Coercer) (SpecimenDraft, error) {
	switch field {
	case "patientName":
		d.PatientName = raw
	case "specimenType":
		d.SpecimenType = raw
	case "collectionDate":
		v, err := c.Date(field, raw)
		if err != nil {
			return d, err
		}
		d.CollectionDate = v
	case "status":
		d.Status = raw
	default:
		return d, records.UnknownField(field)
	}
	return d, nil
}

func (d SpecimenDraft) Build(id int, _ time.Time) Specimen {
	return Specimen{
		ID:             id,
		PatientName:    d.PatientName,
		SpecimenType:   d.SpecimenType,
		CollectionDate: d.CollectionDate,
		Status:         d.Status,
	}
}

var SpecimenSchema = Schema{
	Fields: []Field{
		text("patientName", "Patient Name"),
		text("specimenType", "Specimen Type"),
		date("collectionDate", "Collection Date"),
		option("status", "Status", SpecimenCollected, SpecimenInLab, SpecimenAnalyzed, SpecimenDisposed),
	},
	Columns:    []string{"Patient Name", "Specimen Type", "Collection Date", "Status"},
	Searchable: []string{"patientName", "specimenType"},
}

func SeedSpecimens() []Specimen {
	return []Specimen{
		{ID: 1, PatientName: "John Doe", SpecimenType: "Blood", CollectionDate: records.NewDate(2024, time.October, 1), Status: SpecimenInLab},
		{ID: 2, PatientName: "Jane Smith", SpecimenType: "Urine", CollectionDate: records.NewDate(2024, time.October, 2), Status: SpecimenAnalyzed},
	}
}
