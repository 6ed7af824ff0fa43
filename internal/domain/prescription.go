package domain

import (
	"time"

	"hospital-data/internal/records"
)

// Prescription status values.
const (
	PrescriptionPending   = "Pending"
	PrescriptionDispensed = "Dispensed"
	PrescriptionCompleted = "Completed"
)

type Prescription struct {
	ID             int          `json:"id"`
	PatientName    string       `json:"patientName"`
	MedicationName string       `json:"medicationName"`
	Dosage         string       `json:"dosage"`
	Frequency      string       `json:"frequency"`
	StartDate      records.Date `json:"startDate"`
	EndDate        records.Date `json:"endDate"`
	PrescribedBy   string       `json:"prescribedBy"`
	Status         string       `json:"status"`
}

func (p Prescription) RecordID() int { return p.ID }

func (p Prescription) SearchText() []string {
	return []string{p.PatientName, p.MedicationName, p.PrescribedBy}
}

func (p Prescription) Row() []any {
	return []any{p.PatientName, p.MedicationName, p.Dosage, p.Frequency, p.StartDate.Display(), p.EndDate.Display(), p.PrescribedBy, p.Status}
}

type PrescriptionDraft struct {
	PatientName    string       `json:"patientName"`
	MedicationName string       `json:"medicationName"`
	Dosage         string       `json:"dosage"`
	Frequency      string       `json:"frequency"`
	StartDate      records.Date `json:"startDate"`
	EndDate        records.Date `json:"endDate"`
	PrescribedBy   string       `json:"prescribedBy"`
	Status         string       `json:"status"`
}

// NewPrescriptionDraft starts and ends today, pending dispensing.
func NewPrescriptionDraft(now time.Time) PrescriptionDraft {
	today := records.DateOf(now)
	return PrescriptionDraft{StartDate: today, EndDate: today, Status: PrescriptionPending}
}

func (d PrescriptionDraft) Set(field, raw string, c records.Coercer) (PrescriptionDraft, error) {
	switch field {
	case "patientName":
		d.PatientName = raw
	case "medicationName":
		d.MedicationName = raw
	case "dosage":
		d.Dosage = raw
	case "frequency":
		d.Frequency = raw
	case "startDate":
		v, err := c.Date(field, raw)
		if err != nil {
			return d, err
		}
		d.StartDate = v
	case "endDate":
		v, err := c.Date(field, raw)
		if err != nil {
			return d, err
		}
		d.EndDate = v
	case "prescribedBy":
		d.PrescribedBy = raw
	case "status":
		d.Status = raw
	default:
		return d, records.UnknownField(field)
	}
	return d, nil
}

func (d PrescriptionDraft) Build(id int, _ time.Time) Prescription {
	return Prescription{
		ID:             id,
		PatientName:    d.PatientName,
		MedicationName: d.MedicationName,
		Dosage:         d.Dosage,
		Frequency:      d.Frequency,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		PrescribedBy:   d.PrescribedBy,
		Status:         d.Status,
	}
}

var PrescriptionSchema = Schema{
	Fields: []Field{
		text("patientName", "Patient Name"),
		text("medicationName", "Medication"),
		text("dosage", "Dosage"),
		text("frequency", "Frequency"),
		date("startDate", "Start Date"),
		date("endDate", "End Date"),
		text("prescribedBy", "Prescribed By"),
		option("status", "Status", PrescriptionPending, PrescriptionDispensed, PrescriptionCompleted),
	},
	Columns:    []string{"Patient Name", "Medication", "Dosage", "Frequency", "Start Date", "End Date", "Prescribed By", "Status"},
	Searchable: []string{"patientName", "medicationName", "prescribedBy"},
}

func SeedPrescriptions() []Prescription {
	return []Prescription{
		{
			ID:             1,
			PatientName:    "John Doe",
			MedicationName: "Amoxicillin",
			Dosage:         "500mg",
			Frequency:      "3 times daily",
			StartDate:      records.NewDate(2024, time.October, 1),
			EndDate:        records.NewDate(2024, time.October, 7),
			PrescribedBy:   "Dr. Smith",
			Status:         PrescriptionPending,
		},
		{
			ID:             2,
			PatientName:    "Jane Smith",
			MedicationName: "Lisinopril",
			Dosage:         "10mg",
			Frequency:      "Once daily",
			StartDate:      records.NewDate(2024, time.October, 2),
			EndDate:        records.NewDate(2024, time.November, 2),
			PrescribedBy:   "Dr. Johnson",
			Status:         PrescriptionDispensed,
		},
	}
}
