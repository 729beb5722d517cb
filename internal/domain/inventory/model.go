// Package inventory holds group-departure service inventory and the
// financial figures derived from it.
package inventory

import (
	"backoffice/internal/core/types"
)

// PricingMode tells how the sale price of an inventory item is expressed.
type PricingMode string

const (
	// PricingManual: a per-unit sale price multiplied by the total quantity.
	PricingManual PricingMode = "MANUAL"
	// PricingTotalSale: an absolute sale total given directly.
	PricingTotalSale PricingMode = "TOTAL_SALE"
)

// BillingMode is carried for invoicing; it does not affect the metrics.
type BillingMode string

const (
	BillingAuto   BillingMode = "AUTO"
	BillingManual BillingMode = "MANUAL"
)

// Record is a single inventory row of a group departure.
type Record struct {
	ID           int64               `db:"id"`
	GroupID      int64               `db:"group_id"`
	DepartureID  *int64              `db:"departure_id"`
	ServiceType  string              `db:"service_type"`
	Description  string              `db:"description"`
	Currency     string              `db:"currency"`
	TotalQty     int64               `db:"total_qty"`
	AssignedQty  int64               `db:"assigned_qty"`
	ConfirmedQty int64               `db:"confirmed_qty"`
	BlockedQty   int64               `db:"blocked_qty"`
	UnitCost     types.OptionalMoney `db:"unit_cost"`
	Note         *string             `db:"note"`
}

// NoteValue returns the raw note, empty when NULL.
func (r Record) NoteValue() string {
	if r.Note == nil {
		return ""
	}
	return *r.Note
}

// FinancialMetadata is the structured block embedded in a record note.
// Every amount is normalized to 2 decimals; absent amounts are not Valid.
type FinancialMetadata struct {
	PricingMode        PricingMode
	BillingMode        BillingMode
	OperatorID         *int64
	SaleUnitPrice      types.OptionalMoney
	SaleTotalPrice     types.OptionalMoney
	Taxable21          types.OptionalMoney
	Taxable105         types.OptionalMoney
	ExemptAmount       types.OptionalMoney
	OtherTaxes         types.OptionalMoney
	TransferFeePercent types.OptionalMoney
}

// amounts lists the monetary fields in payload order.
func (m *FinancialMetadata) amounts() []types.OptionalMoney {
	return []types.OptionalMoney{
		m.SaleUnitPrice,
		m.SaleTotalPrice,
		m.Taxable21,
		m.Taxable105,
		m.ExemptAmount,
		m.OtherTaxes,
		m.TransferFeePercent,
	}
}

// HasValue reports whether the block carries an operator reference or any
// non-zero amount. Blocks without value are never written to a note.
func (m *FinancialMetadata) HasValue() bool {
	if m == nil {
		return false
	}
	if m.OperatorID != nil && *m.OperatorID > 0 {
		return true
	}
	for _, a := range m.amounts() {
		if a.Valid && !a.Decimal.IsZero() {
			return true
		}
	}
	return false
}

// Normalized returns a copy with enum defaults applied, a non-positive
// operator dropped and every amount rounded to 2 decimals.
func (m FinancialMetadata) Normalized() FinancialMetadata {
	out := FinancialMetadata{
		PricingMode:        PricingManual,
		BillingMode:        BillingAuto,
		SaleUnitPrice:      types.NormalizeMoney(m.SaleUnitPrice),
		SaleTotalPrice:     types.NormalizeMoney(m.SaleTotalPrice),
		Taxable21:          types.NormalizeMoney(m.Taxable21),
		Taxable105:         types.NormalizeMoney(m.Taxable105),
		ExemptAmount:       types.NormalizeMoney(m.ExemptAmount),
		OtherTaxes:         types.NormalizeMoney(m.OtherTaxes),
		TransferFeePercent: types.NormalizeMoney(m.TransferFeePercent),
	}
	if m.PricingMode == PricingTotalSale {
		out.PricingMode = PricingTotalSale
	}
	if m.BillingMode == BillingManual {
		out.BillingMode = BillingManual
	}
	if m.OperatorID != nil && *m.OperatorID > 0 {
		op := *m.OperatorID
		out.OperatorID = &op
	}
	return out
}

// Metrics are the figures derived from one record. Never persisted.
type Metrics struct {
	RecordID          int64
	Currency          string
	AvailableQty      int64
	CostTotal         types.Money
	CostAssigned      types.Money
	CostConfirmed     types.Money
	CostBlocked       types.Money
	CostAvailable     types.Money
	SaleTotal         types.Money
	TransferFeeAmount types.Money
	TaxesTotal        types.Money
	GrossMargin       types.Money
	OperationalDebt   types.Money
}

// CurrencySummary sums Metrics of every record sharing a currency.
type CurrencySummary struct {
	Currency          string
	ServicesCount     int
	AvailableQty      int64
	CostTotal         types.Money
	CostAssigned      types.Money
	CostConfirmed     types.Money
	CostBlocked       types.Money
	CostAvailable     types.Money
	SaleTotal         types.Money
	TransferFeeAmount types.Money
	TaxesTotal        types.Money
	GrossMargin       types.Money
	OperationalDebt   types.Money
}

// DecodedNote is the result of reading a record note.
type DecodedNote struct {
	Text      string
	Financial *FinancialMetadata
}

// ItemReport bundles a record with its decoded note and metrics.
type ItemReport struct {
	Record  Record
	Note    DecodedNote
	Metrics Metrics
}

// FinancialReport is the financial view of a group's inventory.
type FinancialReport struct {
	Items      []ItemReport
	Currencies []CurrencySummary
}

// ListFilter selects inventory rows of a group.
type ListFilter struct {
	GroupID     int64
	DepartureID *int64
	Currency    string
}
