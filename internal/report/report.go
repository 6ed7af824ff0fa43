// Package report serves the reporting and analytics page data. The figures
// are fixed reference datasets and are not derived from the record stores.
package report

// KPI is a headline figure with its change in percent.
type KPI struct {
	Label  string  `json:"label"`
	Value  any     `json:"value"`
	Change float64 `json:"change"`
}

type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
}

type Chart struct {
	Key      string    `json:"key"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Report struct {
	KPIs        []KPI    `json:"kpis"`
	Charts      []Chart  `json:"charts"`
	Departments []Option `json:"departments"`
}

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}

// Build returns a fresh copy of the report so callers may modify it.
func Build() Report {
	return Report{
		KPIs: []KPI{
			{Label: "Total Patients", Value: 1250, Change: 5.2},
			{Label: "Average Length of Stay", Value: "3.2 days", Change: -1.5},
			{Label: "Revenue", Value: "$2.5M", Change: 7.8},
			{Label: "Patient Satisfaction", Value: "92%", Change: 2.1},
		},
		Charts: []Chart{
			{
				Key:      "patients",
				Title:    "Patient Statistics",
				Subtitle: "Patient Admissions",
				Labels:   clone(months),
				Datasets: []Dataset{
					{Label: "Inpatients", Data: []float64{65, 59, 80, 81, 56, 55}, BackgroundColor: "rgba(255, 99, 132, 0.5)"},
					{Label: "Outpatients", Data: []float64{28, 48, 40, 19, 86, 27}, BackgroundColor: "rgba(53, 162, 235, 0.5)"},
				},
			},
			{
				Key:      "financial",
				Title:    "Financial Metrics",
				Subtitle: "Revenue vs Expenses",
				Labels:   clone(months),
				Datasets: []Dataset{
					{Label: "Revenue", Data: []float64{1200000, 1350000, 1100000, 1400000, 1300000, 1500000}, BackgroundColor: "rgba(75, 192, 192, 0.5)"},
					{Label: "Expenses", Data: []float64{1000000, 1100000, 950000, 1200000, 1150000, 1300000}, BackgroundColor: "rgba(255, 159, 64, 0.5)"},
				},
			},
			{
				Key:      "departments",
				Title:    "Department Performance",
				Subtitle: "Patient Visits by Department",
				Labels:   []string{"Cardiology", "Neurology", "Pediatrics", "Orthopedics", "Oncology"},
				Datasets: []Dataset{
					{Label: "Patient Visits", Data: []float64{300, 250, 400, 200, 150}, BackgroundColor: "rgba(153, 102, 255, 0.5)"},
				},
			},
		},
		Departments: []Option{
			{Value: "all", Label: "All Departments"},
			{Value: "cardiology", Label: "Cardiology"},
			{Value: "neurology", Label: "Neurology"},
			{Value: "pediatrics", Label: "Pediatrics"},
			{Value: "orthopedics", Label: "Orthopedics"},
			{Value: "oncology", Label: "Oncology"},
		},
	}
}

// Chart returns the chart with the given key.
func (r Report) Chart(key string) (Chart, bool) {
	for _, c := range r.Charts {
		if c.Key == key {
			return c, true
		}
	}
	return Chart{}, false
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
