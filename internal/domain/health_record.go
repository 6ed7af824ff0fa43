package domain

import (
	"time"

	"hospital-data/internal/records"
)

// HealthRecord is an electronic health record entry.
type HealthRecord struct {
	ID          int          `json:"id"`
	PatientName string       `json:"patientName"`
	DateOfBirth records.Date `json:"dateOfBirth"`
	Gender      string       `json:"gender"`
	Diagnosis   string       `json:"diagnosis"`
	Treatment   string       `json:"treatment"`
	Medication  string       `json:"medication"`
	LastUpdated records.Date `json:"lastUpdated"`
}

func (r HealthRecord) RecordID() int { return r.ID }

func (r HealthRecord) SearchText() []string { return []string{r.PatientName, r.Diagnosis} }

func (r HealthRecord) Row() []any {
	return []any{r.PatientName, r.DateOfBirth.Display(), r.Gender, r.Diagnosis, r.Treatment, r.Medication, r.LastUpdated.Display()}
}

// HealthRecordDraft has no LastUpdated; it is stamped on submit.
type HealthRecordDraft struct {
	PatientName string       `json:"patientName"`
	DateOfBirth records.Date `json:"dateOfBirth"`
	Gender      string       `json:"gender"`
	Diagnosis   string       `json:"diagnosis"`
	Treatment   string       `json:"treatment"`
	Medication  string       `json:"medication"`
}

func NewHealthRecordDraft(now time.Time) HealthRecordDraft {
	return HealthRecordDraft{DateOfBirth: records.DateOf(now)}
}

func (d HealthRecordDraft) Set(field, raw string, c records.Coercer) (HealthRecordDraft, error) {
	switch field {
	case "patientName":
		d.PatientName = raw
	case "dateOfBirth":
		v, err := c.Date(field, raw)
		if err != nil {
			return d, err
		}
		d.DateOfBirth = v
	case "gender":
		d.Gender = raw
	case "diagnosis":
		d.Diagnosis = raw
	case "treatment":
		d.Treatment = raw
	case "medication":
		d.Medication = raw
	default:
		return d, records.UnknownField(field)
	}
	return d, nil
}

func (d HealthRecordDraft) Build(id int, now time.Time) HealthRecord {
	return HealthRecord{
		ID:          id,
		PatientName: d.PatientName,
		DateOfBirth: d.DateOfBirth,
		Gender:      d.Gender,
		Diagnosis:   d.Diagnosis,
		Treatment:   d.Treatment,
		Medication:  d.Medication,
		LastUpdated: records.DateOf(now),
	}
}

var HealthRecordSchema = Schema{
	Fields: []Field{
		text("patientName", "Patient Name"),
		date("dateOfBirth", "Date of Birth"),
		option("gender", "Gender", "Male", "Female", "Other"),
		text("diagnosis", "Diagnosis"),
		text("treatment", "Treatment"),
		text("medication", "Medication"),
	},
	Columns:    []string{"Patient Name", "Date of Birth", "Gender", "Diagnosis", "Treatment", "Medication", "Last Updated"},
	Searchable: []string{"patientName", "diagnosis"},
}

func SeedHealthRecords() []HealthRecord {
	return []HealthRecord{
		{
			ID:          1,
			PatientName: "John Doe",
			DateOfBirth: records.NewDate(1980, time.June, 15),
			Gender:      "Male",
			Diagnosis:   "Hypertension",
			Treatment:   "Lifestyle changes, regular check-ups",
			Medication:  "Lisinopril 10mg daily",
			LastUpdated: records.NewDate(2024, time.October, 1),
		},
		{
			ID:          2,
			PatientName: "Jane Smith",
			DateOfBirth: records.NewDate(1992, time.September, 22),
			Gender:      "Female",
			Diagnosis:   "Type 2 Diabetes",
			Treatment:   "Diet control, exercise regimen",
			Medication:  "Metformin 500mg twice daily",
			LastUpdated: records.NewDate(2024, time.October, 5),
		},
	}
}
