package domain

import (
	"time"

	"hospital-data/internal/records"
)

// Appointment is a scheduled patient visit.
type Appointment struct {
	ID          int          `json:"id"`
	PatientName string       `json:"patientName"`
	DoctorName  string       `json:"doctorName"`
	Date        records.Date `json:"date"`
	Time        string       `json:"time"`
	Department  string       `json:"department"`
}

func (a Appointment) RecordID() int { return a.ID }

func (a Appointment) SearchText() []string {
	return []string{a.PatientName, a.DoctorName, a.Department}
}

func (a Appointment) Row() []any {
	return []any{a.PatientName, a.DoctorName, a.Date.Display(), a.Time, a.Department}
}

type AppointmentDraft struct {
	PatientName string       `json:"patientName"`
	DoctorName  string       `json:"doctorName"`
	Date        records.Date `json:"date"`
	Time        string       `json:"time"`
	Department  string       `json:"department"`
}

// NewAppointmentDraft defaults the visit date to today.
func NewAppointmentDraft(now time.Time) AppointmentDraft {
	return AppointmentDraft{Date: records.DateOf(now)}
}

func (d AppointmentDraft) Set(field, raw string, c records.Coercer) (AppointmentDraft, error) {
	switch field {
	case "patientName":
		d.PatientName = raw
	case "doctorName":
		d.DoctorName = raw
	case "date":
		v, err := c.Date(field, raw)
		if err != nil {
			return d, err
		}
		d.Date = v
	case "time":
		d.Time = raw
	case "department":
		d.Department = raw
	default:
		return d, records.UnknownField(field)
	}
	return d, nil
}

func (d AppointmentDraft) Build(id int, _ time.Time) Appointment {
	return Appointment{
		ID:          id,
		PatientName: d.PatientName,
		DoctorName:  d.DoctorName,
		Date:        d.Date,
		Time:        d.Time,
		Department:  d.Department,
	}
}

var AppointmentSchema = Schema{
	Fields: []Field{
		text("patientName", "Patient Name"),
		text("doctorName", "Doctor Name"),
		date("date", "Date"),
		text("time", "Time"),
		option("department", "Department", "Cardiology", "Neurology", "Pediatrics", "Orthopedics"),
	},
	Columns:    []string{"Patient Name", "Doctor Name", "Date", "Time", "Department"},
	Searchable: []string{"patientName", "doctorName", "department"},
}

func SeedAppointments() []Appointment {
	return []Appointment{
		{ID: 1, PatientName: "Alice Johnson", DoctorName: "Dr. Smith", Date: records.NewDate(2024, time.October, 15), Time: "10:00 AM", Department: "Cardiology"},
		{ID: 2, PatientName: "Bob Williams", DoctorName: "Dr. Lee", Date: records.NewDate(2024, time.October, 16), Time: "2:00 PM", Department: "Neurology"},
	}
}
