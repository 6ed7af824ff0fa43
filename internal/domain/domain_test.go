package domain

import (
	"testing"
	"time"

	"hospital-data/internal/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 10, 1, 9, 30, 0, 0, time.UTC)

// sampleValue returns a raw input every field kind accepts.
func sampleValue(f Field) string {
	switch f.Kind {
	case KindInteger:
		return "7"
	case KindDecimal:
		return "7.5"
	case KindDate:
		return "2025-01-31"
	case KindOption:
		return f.Options[len(f.Options)-1]
	default:
		return "x"
	}
}

type setter interface {
	set(field, raw string) (any, error)
}

type draftOf[D interface {
	Set(string, string, records.Coercer) (D, error)
}] struct{ d D }

func (s draftOf[D]) set(field, raw string) (any, error) {
	return s.d.Set(field, raw, records.Coercer{Strict: true})
}

func TestSchemas_EveryFieldIsSettable(t *testing.T) {
	cases := map[string]struct {
		schema Schema
		draft  setter
	}{
		"patient":      {PatientSchema, draftOf[PatientDraft]{NewPatientDraft(now)}},
		"appointment":  {AppointmentSchema, draftOf[AppointmentDraft]{NewAppointmentDraft(now)}},
		"ehr":          {HealthRecordSchema, draftOf[HealthRecordDraft]{NewHealthRecordDraft(now)}},
		"billing":      {BillingSchema, draftOf[BillingDraft]{NewBillingDraft(now)}},
		"inventory":    {InventorySchema, draftOf[InventoryDraft]{NewInventoryDraft(now)}},
		"staff":        {StaffSchema, draftOf[StaffDraft]{NewStaffDraft(now)}},
		"medication":   {MedicationSchema, draftOf[MedicationDraft]{NewMedicationDraft(now)}},
		"prescription": {PrescriptionSchema, draftOf[PrescriptionDraft]{NewPrescriptionDraft(now)}},
		"lab test":     {LabTestSchema, draftOf[LabTestDraft]{NewLabTestDraft(now)}},
		"specimen":     {SpecimenSchema, draftOf[SpecimenDraft]{NewSpecimenDraft(now)}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for _, f := range tc.schema.Fields {
				_, err := tc.draft.set(f.Name, sampleValue(f))
				assert.NoError(t, err, f.Name)
			}
			_, err := tc.draft.set("nope", "x")
			assert.ErrorIs(t, err, records.ErrUnknownField)
		})
	}
}

func TestSeeds_RowsMatchColumns(t *testing.T) {
	check := func(t *testing.T, s Schema, recs []Record) {
		t.Helper()
		require.Len(t, recs, 2)
		for i, r := range recs {
			assert.Equal(t, i+1, r.RecordID())
			assert.Len(t, r.Row(), len(s.Columns))
			assert.Len(t, r.SearchText(), len(s.Searchable))
		}
	}
	check(t, PatientSchema, asRecords(SeedPatients()))
	check(t, AppointmentSchema, asRecords(SeedAppointments()))
	check(t, HealthRecordSchema, asRecords(SeedHealthRecords()))
	check(t, BillingSchema, asRecords(SeedBillingRecords()))
	check(t, InventorySchema, asRecords(SeedInventory()))
	check(t, StaffSchema, asRecords(SeedStaff()))
	check(t, MedicationSchema, asRecords(SeedMedications()))
	check(t, PrescriptionSchema, asRecords(SeedPrescriptions()))
	check(t, LabTestSchema, asRecords(SeedLabTests()))
	check(t, SpecimenSchema, asRecords(SeedSpecimens()))
}

func asRecords[T Record](in []T) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}

func TestPatientDraft_AgeCoercion(t *testing.T) {
	d, err := NewPatientDraft(now).Set("age", "abc", records.Coercer{})
	require.NoError(t, err)
	assert.Equal(t, 0, d.Age)

	d, err = d.Set("age", "42", records.Coercer{})
	require.NoError(t, err)
	assert.Equal(t, 42, d.Age)

	_, err = d.Set("age", "abc", records.Coercer{Strict: true})
	assert.ErrorIs(t, err, records.ErrInvalidValue)
}

func TestBillingDraft_Balance(t *testing.T) {
	c := records.Coercer{}
	d := NewBillingDraft(now)
	d, _ = d.Set("totalAmount", "1500", c)
	d, _ = d.Set("amountPaid", "1200.25", c)

	b := d.Build(3, now)
	assert.Equal(t, 3, b.ID)
	assert.InDelta(t, 299.75, b.Balance, 1e-9)
	assert.Equal(t, records.NewDate(2024, time.October, 1), b.DateOfService)
}

func TestHealthRecordDraft_LastUpdatedIsSubmitTime(t *testing.T) {
	d, err := NewHealthRecordDraft(now).Set("dateOfBirth", "1990-02-03", records.Coercer{})
	require.NoError(t, err)

	later := now.Add(72 * time.Hour)
	r := d.Build(3, later)
	assert.Equal(t, records.NewDate(1990, time.February, 3), r.DateOfBirth)
	assert.Equal(t, records.NewDate(2024, time.October, 4), r.LastUpdated)
}

func TestDraftDefaults(t *testing.T) {
	today := records.DateOf(now)

	assert.Equal(t, PrescriptionDraft{StartDate: today, EndDate: today, Status: "Pending"}, NewPrescriptionDraft(now))
	assert.Equal(t, LabTestDraft{OrderDate: today, Status: "Pending", Priority: "Routine"}, NewLabTestDraft(now))
	assert.Equal(t, SpecimenDraft{CollectionDate: today, Status: "Collected"}, NewSpecimenDraft(now))
	assert.Equal(t, InventoryDraft{LastRestocked: today, ExpirationDate: today}, NewInventoryDraft(now))
	assert.Equal(t, PatientDraft{}, NewPatientDraft(now))
}

func TestSetIsNotInPlace(t *testing.T) {
	orig := NewStaffDraft(now)
	next, err := orig.Set("name", "Dr. Who", records.Coercer{})
	require.NoError(t, err)
	assert.Equal(t, "", orig.Name)
	assert.Equal(t, "Dr. Who", next.Name)
}

func TestRow_DisplaysDates(t *testing.T) {
	a := SeedAppointments()[0]
	assert.Equal(t, []any{"Alice Johnson", "Dr. Smith", "Oct 15, 2024", "10:00 AM", "Cardiology"}, a.Row())
}

func TestBillingRecord_ValidateRejectsOverflowingBalance(t *testing.T) {
	c := records.Coercer{}
	d := NewBillingDraft(now)
	d, err := d.Set("totalAmount", "1.7e308", c)
	require.NoError(t, err)
	d, err = d.Set("amountPaid", "-1.7e308", c)
	require.NoError(t, err)

	err = d.Build(3, now).Validate()
	assert.ErrorIs(t, err, records.ErrInvalidValue)

	d, err = d.Set("amountPaid", "1.7e308", c)
	require.NoError(t, err)
	assert.NoError(t, d.Build(3, now).Validate())
}
