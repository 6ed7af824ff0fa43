package service

import (
	"errors"
	"fmt"
	"time"

	"hospital-data/internal/domain"
	"hospital-data/internal/records"
)

var (
	ErrUnknownModule     = errors.New("unknown module")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Module is one dashboard entry. Every module links back to the root listing.
type Module struct {
	Key         string
	Name        string
	Path        string
	Back        string
	collections []Collection
}

func (m *Module) Collections() []Collection {
	return m.collections
}

// Collection looks up a collection of this module by name.
func (m *Module) Collection(name string) (Collection, error) {
	for _, c := range m.collections {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%s/%s: %w", m.Key, name, ErrUnknownCollection)
}

// Catalog holds the modules in dashboard order. Stores are independent; no
// data is shared between modules.
type Catalog struct {
	modules []*Module
	byKey   map[string]*Module
}

// NewCatalog builds every module with its seeded stores. A nil clock means time.Now.
func NewCatalog(now func() time.Time, c records.Coercer) *Catalog {
	if now == nil {
		now = time.Now
	}
	modules := []*Module{
		{Key: "patients", Name: "Patient Management", collections: []Collection{
			newCollection("patients", "patients", domain.PatientSchema, now, c, domain.NewPatientDraft, domain.SeedPatients()),
		}},
		{Key: "appointment", Name: "Appointments", collections: []Collection{
			newCollection("appointment", "appointments", domain.AppointmentSchema, now, c, domain.NewAppointmentDraft, domain.SeedAppointments()),
		}},
		{Key: "ehr", Name: "Electronic Health Records", collections: []Collection{
			newCollection("ehr", "records", domain.HealthRecordSchema, now, c, domain.NewHealthRecordDraft, domain.SeedHealthRecords()),
		}},
		{Key: "billing", Name: "Billing & Insurance", collections: []Collection{
			newCollection("billing", "billing", domain.BillingSchema, now, c, domain.NewBillingDraft, domain.SeedBillingRecords()),
		}},
		{Key: "inventory", Name: "Inventory", collections: []Collection{
			newCollection("inventory", "items", domain.InventorySchema, now, c, domain.NewInventoryDraft, domain.SeedInventory()),
		}},
		{Key: "staff", Name: "Staff Management", collections: []Collection{
			newCollection("staff", "staff", domain.StaffSchema, now, c, domain.NewStaffDraft, domain.SeedStaff()),
		}},
		{Key: "pharmacy", Name: "Pharmacy", collections: []Collection{
			newCollection("pharmacy", "medications", domain.MedicationSchema, now, c, domain.NewMedicationDraft, domain.SeedMedications()),
			newCollection("pharmacy", "prescriptions", domain.PrescriptionSchema, now, c, domain.NewPrescriptionDraft, domain.SeedPrescriptions()),
		}},
		{Key: "laboratory", Name: "Laboratory", collections: []Collection{
			newCollection("laboratory", "tests", domain.LabTestSchema, now, c, domain.NewLabTestDraft, domain.SeedLabTests()),
			newCollection("laboratory", "specimens", domain.SpecimenSchema, now, c, domain.NewSpecimenDraft, domain.SeedSpecimens()),
		}},
		{Key: "report", Name: "Reports & Analytics"},
	}

	cat := &Catalog{modules: modules, byKey: make(map[string]*Module, len(modules))}
	for _, m := range modules {
		m.Path = "/" + m.Key
		m.Back = "/"
		cat.byKey[m.Key] = m
	}
	return cat
}

func (c *Catalog) Modules() []*Module {
	return c.modules
}

func (c *Catalog) Module(key string) (*Module, error) {
	m, ok := c.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrUnknownModule)
	}
	return m, nil
}

func (c *Catalog) Collection(module, name string) (Collection, error) {
	m, err := c.Module(module)
	if err != nil {
		return nil, err
	}
	return m.Collection(name)
}

// Collections returns every collection across modules in dashboard order.
func (c *Catalog) Collections() []Collection {
	var out []Collection
	for _, m := range c.modules {
		out = append(out, m.collections...)
	}
	return out
}
