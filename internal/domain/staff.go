package domain

import (
	"time"

	"hospital-data/internal/records"
)

type StaffMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Contact    string `json:"contact"`
	Schedule   string `json:"schedule"`
}

func (s StaffMember) RecordID() int { return s.ID }

func (s StaffMember) SearchText() []string { return []string{s.Name, s.Role, s.Department} }

func (s StaffMember) Row() []any {
	return []any{s.Name, s.Role, s.Department, s.Contact, s.Schedule}
}

type StaffDraft struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Contact    string `json:"contact"`
	Schedule   string `json:"schedule"`
}

func NewStaffDraft(time.Time) StaffDraft { return StaffDraft{} }

func (d StaffDraft) Set(field, raw string, _ records.Coercer) (StaffDraft, error) {
	switch field {
	case "name":
		d.Name = raw
	case "role":
		d.Role = raw
	case "department":
		d.Department = raw
	case "contact":
		d.Contact = raw
	case "schedule":
		d.Schedule = raw
	default:
		return d, records.UnknownField(field)
	}
	return d, nil
}

func (d StaffDraft) Build(id int, _ time.Time) StaffMember {
	return StaffMember{ID: id, Name: d.Name, Role: d.Role, Department: d.Department, Contact: d.Contact, Schedule: d.Schedule}
}

var StaffSchema = Schema{
	Fields: []Field{
		text("name", "Name"),
		option("role", "Role", "Doctor", "Nurse", "Administrator", "Technician"),
		option("department", "Department", "Cardiology", "Emergency", "Pediatrics", "Surgery"),
		text("contact", "Contact"),
		text("schedule", "Schedule"),
	},
	Columns:    []string{"Name", "Role", "Department", "Contact", "Schedule"},
	Searchable: []string{"name", "role", "department"},
}

func SeedStaff() []StaffMember {
	return []StaffMember{
		{ID: 1, Name: "Dr. Jane Smith", Role: "Doctor", Department: "Cardiology", Contact: "123-456-7890", Schedule: "Mon-Fri, 9AM-5PM"},
		{ID: 2, Name: "Nurse John Doe", Role: "Nurse", Department: "Emergency", Contact: "987-654-3210", Schedule: "Tue-Sat, 7AM-7PM"},
	}
}
