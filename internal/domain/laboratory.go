package domain

import (
	"time"

	"hospital-data/internal/records"
)

const (
	LabTestPending    = "Pending"
	LabTestInProgress = "In Progress"
	LabTestCompleted  = "Completed"

	PriorityRoutine = "Routine"
	PriorityUrgent  = "Urgent"
	PrioritySTAT    = "STAT"
)

// LabTest is an ordered laboratory test.
type LabTest struct {
	ID          int          `json:"id"`
	PatientName string       `json:"patientName"`
	TestName    string       `json:"testName"`
	OrderDate   records.Date `json:"orderDate"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	Results     string       `json:"results"`
}

func (t LabTest) RecordID() int { return t.ID }

func (t LabTest) SearchText() []string { return []string{t.PatientName, t.TestName} }

func (t LabTest) Row() []any {
	return []any{t.PatientName, t.TestName, t.OrderDate.Display(), t.Status, t.Priority, t.Results}
}

type LabTestDraft struct {
	PatientName string       `json:"patientName"`
	TestName    string       `json:"testName"`
	OrderDate   records.Date `json:"orderDate"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	Results     string       `json:"results"`
}

func NewLabTestDraft(now time.Time) LabTestDraft {
	return LabTestDraft{OrderDate: records.DateOf(now), Status: LabTestPending, Priority: PriorityRoutine}
}

func (d LabTestDraft) Set(field, raw string, c records.Coercer) (LabTestDraft, error) {
	switch field {
	case "patientName":
		d.PatientName = raw
	case "testName":
		d.TestName = raw
	case "orderDate":
		v, err := c.Date(field, raw)
		if err != nil {
			return d, err
		}
		d.OrderDate = v
	case "status":
		d.Status = raw
	case "priority":
		d.Priority = raw
	case "results":
		d.Results = raw
	default:
		return d, records.UnknownField(field)
	}
	return d, nil
}

func (d LabTestDraft) Build(id int, _ time.Time) LabTest {
	return LabTest{
		ID:          id,
		PatientName: d.PatientName,
		TestName:    d.TestName,
		OrderDate:   d.OrderDate,
		Status:      d.Status,
		Priority:    d.Priority,
		Results:     d.Results,
	}
}

var LabTestSchema = Schema{
	Fields: []Field{
		text("patientName", "Patient Name"),
		text("testName", "Test Name"),
		date("orderDate", "Order Date"),
		option("status", "Status", LabTestPending, LabTestInProgress, LabTestCompleted),
		option("priority", "Priority", PriorityRoutine, PriorityUrgent, PrioritySTAT),
		text("results", "Results"),
	},
	Columns:    []string{"Patient Name", "Test Name", "Order Date", "Status", "Priority", "Results"},
	Searchable: []string{"patientName", "testName"},
}

func SeedLabTests() []LabTest {
	return []LabTest{
		{
			ID:          1,
			PatientName: "John Doe",
			TestName:    "Complete Blood Count",
			OrderDate:   records.NewDate(2024, time.October, 1),
			Status:      LabTestPending,
			Priority:    PriorityRoutine,
		},
		{
			ID:          2,
			PatientName: "Jane Smith",
			TestName:    "Lipid Panel",
			OrderDate:   records.NewDate(2024, time.October, 2),
			Status:      LabTestCompleted,
			Priority:    PriorityUrgent,
			Results:     "Total Cholesterol: 180 mg/dL, HDL: 50 mg/dL, LDL: 110 mg/dL, Triglycerides: 100 mg/dL",
		},
	}
}
