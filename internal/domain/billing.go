package domain

import (
	"fmt"
	"math"
	"time"

	"hospital-data/internal/records"
)

// BillingRecord is a charge for a date of service and its insurance claim.
// Balance is derived from TotalAmount and AmountPaid when the record is added.
type BillingRecord struct {
	ID                int          `json:"id"`
	PatientName       string       `json:"patientName"`
	DateOfService     records.Date `json:"dateOfService"`
	TotalAmount       float64      `json:"totalAmount"`
	InsuranceProvider string       `json:"insuranceProvider"`
	ClaimStatus       string       `json:"claimStatus"`
	AmountPaid        float64      `json:"amountPaid"`
	Balance           float64      `json:"balance"`
}

func (b BillingRecord) RecordID() int { return b.ID }

func (b BillingRecord) SearchText() []string { return []string{b.PatientName, b.InsuranceProvider} }

func (b BillingRecord) Row() []any {
	return []any{b.PatientName, b.DateOfService.Display(), b.TotalAmount, b.InsuranceProvider, b.ClaimStatus, b.AmountPaid, b.Balance}
}

// Validate rejects amounts that do not fit a float64, e.g. a balance that
// overflowed when derived from two extreme inputs.
func (b BillingRecord) Validate() error {
	for name, v := range map[string]float64{"totalAmount": b.TotalAmount, "amountPaid": b.AmountPaid, "balance": b.Balance} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%s: %v is out of range: %w", name, v, records.ErrInvalidValue)
		}
	}
	return nil
}

type BillingDraft struct {
	PatientName       string       `json:"patientName"`
	DateOfService     records.Date `json:"dateOfService"`
	TotalAmount       float64      `json:"totalAmount"`
	InsuranceProvider string       `json:"insuranceProvider"`
	ClaimStatus       string       `json:"claimStatus"`
	AmountPaid        float64      `json:"amountPaid"`
}

func NewBillingDraft(now time.Time) BillingDraft {
	return BillingDraft{DateOfService: records.DateOf(now)}
}

func (d BillingDraft) Set(field, raw string, c records.Coercer) (BillingDraft, error) {
	switch field {
	case "patientName":
		d.PatientName = raw
	case "dateOfService":
		v, err := c.Date(field, raw)
		if err != nil {
			return d, err
		}
		d.DateOfService = v
	case "totalAmount":
		v, err := c.Float(field, raw)
		if err != nil {
			return d, err
		}
		d.TotalAmount = v
	case "insuranceProvider":
		d.InsuranceProvider = raw
	case "claimStatus":
		d.ClaimStatus = raw
	case "amountPaid":
		v, err := c.Float(field, raw)
		if err != nil {
			return d, err
		}
		d.AmountPaid = v
	default:
		return d, records.UnknownField(field)
	}
	return d, nil
}

func (d BillingDraft) Build(id int, _ time.Time) BillingRecord {
	return BillingRecord{
		ID:                id,
		PatientName:       d.PatientName,
		DateOfService:     d.DateOfService,
		TotalAmount:       d.TotalAmount,
		InsuranceProvider: d.InsuranceProvider,
		ClaimStatus:       d.ClaimStatus,
		AmountPaid:        d.AmountPaid,
		Balance:           d.TotalAmount - d.AmountPaid,
	}
}

var BillingSchema = Schema{
	Fields: []Field{
		text("patientName", "Patient Name"),
		date("dateOfService", "Date of Service"),
		decimal("totalAmount", "Total Amount"),
		text("insuranceProvider", "Insurance Provider"),
		option("claimStatus", "Claim Status", "Submitted", "In Progress", "Approved", "Denied"),
		decimal("amountPaid", "Amount Paid"),
	},
	Columns:    []string{"Patient Name", "Date of Service", "Total Amount", "Insurance Provider", "Claim Status", "Amount Paid", "Balance"},
	Searchable: []string{"patientName", "insuranceProvider"},
}

func SeedBillingRecords() []BillingRecord {
	return []BillingRecord{
		{ID: 1, PatientName: "John Doe", DateOfService: records.NewDate(2024, time.October, 1), TotalAmount: 1500, InsuranceProvider: "Blue Cross", ClaimStatus: "Submitted", AmountPaid: 1200, Balance: 300},
		{ID: 2, PatientName: "Jane Smith", DateOfService: records.NewDate(2024, time.October, 5), TotalAmount: 2000, InsuranceProvider: "Aetna", ClaimStatus: "Approved", AmountPaid: 1800, Balance: 200},
	}
}
