package domain

import (
	"time"

	"hospital-data/internal/records"
)

// InventoryItem is a stocked supply line.
type InventoryItem struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Category       string       `json:"category"`
	Quantity       int          `json:"quantity"`
	Unit           string       `json:"unit"`
	LastRestocked  records.Date `json:"lastRestocked"`
	ExpirationDate records.Date `json:"expirationDate"`
	MinimumStock   int          `json:"minimumStock"`
}

func (i InventoryItem) RecordID() int { return i.ID }

func (i InventoryItem) SearchText() []string { return []string{i.Name, i.Category} }

func (i InventoryItem) Row() []any {
	return []any{i.Name, i.Category, i.Quantity, i.Unit, i.LastRestocked.Display(), i.ExpirationDate.Display(), i.MinimumStock}
}

type InventoryDraft struct {
	Name           string       `json:"name"`
	Category       string       `json:"category"`
	Quantity       int          `json:"quantity"`
	Unit           string       `json:"unit"`
	LastRestocked  records.Date `json:"lastRestocked"`
	ExpirationDate records.Date `json:"expirationDate"`
	MinimumStock   int          `json:"minimumStock"`
}

func NewInventoryDraft(now time.Time) InventoryDraft {
	today := records.DateOf(now)
	return InventoryDraft{LastRestocked: today, ExpirationDate: today}
}

func (d InventoryDraft) Set(field, raw string, c records.Coercer) (InventoryDraft, error) {
	switch field {
	case "name":
		d.Name = raw
	case "category":
		d.Category = raw
	case "quantity":
		v, err := c.Int(field, raw)
		if err != nil {
			return d, err
		}
		d.Quantity = v
	case "unit":
		d.Unit = raw
	case "lastRestocked":
		v, err := c.Date(field, raw)
		if err != nil {
			return d, err
		}
		d.LastRestocked = v
	case "expirationDate":
		v, err := c.Date(field, raw)
		if err != nil {
			return d, err
		}
		d.ExpirationDate = v
	case "minimumStock":
		v, err := c.Int(field, raw)
		if err != nil {
			return d, err
		}
		d.MinimumStock = v
	default:
		return d, records.UnknownField(field)
	}
	return d, nil
}

func (d InventoryDraft) Build(id int, _ time.Time) InventoryItem {
	return InventoryItem{
		ID:             id,
		Name:           d.Name,
		Category:       d.Category,
		Quantity:       d.Quantity,
		Unit:           d.Unit,
		LastRestocked:  d.LastRestocked,
		ExpirationDate: d.ExpirationDate,
		MinimumStock:   d.MinimumStock,
	}
}

var InventorySchema = Schema{
	Fields: []Field{
		text("name", "Name"),
		option("category", "Category", "PPE", "Medication", "Equipment", "Supplies"),
		integer("quantity", "Quantity"),
		text("unit", "Unit"),
		date("lastRestocked", "Last Restocked"),
		date("expirationDate", "Expiration Date"),
		integer("minimumStock", "Minimum Stock"),
	},
	Columns:    []string{"Name", "Category", "Quantity", "Unit", "Last Restocked", "Expiration Date", "Minimum Stock"},
	Searchable: []string{"name", "category"},
}

func SeedInventory() []InventoryItem {
	return []InventoryItem{
		{
			ID:             1,
			Name:           "Surgical Masks",
			Category:       "PPE",
			Quantity:       5000,
			Unit:           "piece",
			LastRestocked:  records.NewDate(2024, time.October, 1),
			ExpirationDate: records.NewDate(2026, time.October, 1),
			MinimumStock:   1000,
		},
		{
			ID:             2,
			Name:           "Ibuprofen 200mg",
			Category:       "Medication",
			Quantity:       10000,
			Unit:           "tablet",
			LastRestocked:  records.NewDate(2024, time.September, 15),
			ExpirationDate: records.NewDate(2025, time.September, 15),
			MinimumStock:   2000,
		},
	}
}
