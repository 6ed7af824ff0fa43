package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_KPIs(t *testing.T) {
	r := Build()
	require.Len(t, r.KPIs, 4)
	assert.Equal(t, KPI{Label: "Total Patients", Value: 1250, Change: 5.2}, r.KPIs[0])
	assert.Equal(t, "3.2 days", r.KPIs[1].Value)
	assert.Equal(t, -1.5, r.KPIs[1].Change)
}

func TestBuild_Charts(t *testing.T) {
	r := Build()

	patients, ok := r.Chart("patients")
	require.True(t, ok)
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, patients.Labels)
	assert.Equal(t, []float64{65, 59, 80, 81, 56, 55}, patients.Datasets[0].Data)

	financial, ok := r.Chart("financial")
	require.True(t, ok)
	assert.Equal(t, "Expenses", financial.Datasets[1].Label)
	assert.Equal(t, 950000.0, financial.Datasets[1].Data[2])

	depts, ok := r.Chart("departments")
	require.True(t, ok)
	assert.Equal(t, []float64{300, 250, 400, 200, 150}, depts.Datasets[0].Data)
	assert.Equal(t, "rgba(153, 102, 255, 0.5)", depts.Datasets[0].BackgroundColor)

	_, ok = r.Chart("unknown")
	assert.False(t, ok)
}

func TestBuild_ReturnsIndependentCopies(t *testing.T) {
	a := Build()
	a.Charts[0].Labels[0] = "changed"
	a.Charts[0].Datasets[0].Data[0] = -1

	b := Build()
	assert.Equal(t, "Jan", b.Charts[0].Labels[0])
	assert.Equal(t, 65.0, b.Charts[0].Datasets[0].Data[0])
}
