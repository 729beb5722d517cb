package dto

import (
	"backoffice/internal/core/types"
	"backoffice/internal/domain/inventory"
)

// --- Request DTOs ---

// GroupFinancialsQuery holds the query string of the group financials endpoint.
type GroupFinancialsQuery struct {
	DepartureID *int64 `form:"departureId"`
	Currency    string `form:"currency" binding:"max=8"`
}

// FinancialMetadataRequest accepts amounts as JSON numbers or strings
// ("12,50" and "12.50" are both valid).
type FinancialMetadataRequest struct {
	PricingMode    string `json:"pricingMode"`
	BillingMode    string `json:"billingMode"`
	OperatorID     *int64 `json:"operatorId"`
	SaleUnitPrice  any    `json:"saleUnitPrice"`
	SaleTotalPrice any    `json:"saleTotalPrice"`
	Taxable21      any    `json:"taxable21"`
	Taxable105     any    `json:"taxable105"`
	ExemptAmount   any    `json:"exemptAmount"`
	OtherTaxes     any    `json:"otherTaxes"`
	TransferFeePct any    `json:"transferFeePct"`
}

// ToMetadata converts the request into domain metadata.
func (r *FinancialMetadataRequest) ToMetadata() *inventory.FinancialMetadata {
	if r == nil {
		return nil
	}
	return &inventory.FinancialMetadata{
		PricingMode:        inventory.PricingMode(r.PricingMode),
		BillingMode:        inventory.BillingMode(r.BillingMode),
		OperatorID:         r.OperatorID,
		SaleUnitPrice:      types.NormalizeMoney(r.SaleUnitPrice),
		SaleTotalPrice:     types.NormalizeMoney(r.SaleTotalPrice),
		Taxable21:          types.NormalizeMoney(r.Taxable21),
		Taxable105:         types.NormalizeMoney(r.Taxable105),
		ExemptAmount:       types.NormalizeMoney(r.ExemptAmount),
		OtherTaxes:         types.NormalizeMoney(r.OtherTaxes),
		TransferFeePercent: types.NormalizeMoney(r.TransferFeePct),
	}
}

// ComposeNoteRequest is the body of POST /inventories/notes/compose.
type ComposeNoteRequest struct {
	Note      string                    `json:"note"`
	Financial *FinancialMetadataRequest `json:"financial"`
}

// InspectNoteRequest is the body of POST /inventories/notes/inspect.
type InspectNoteRequest struct {
	Note string `json:"note"`
}

// --- Response DTOs ---

type FinancialMetadataResponse struct {
	PricingMode    string   `json:"pricingMode"`
	BillingMode    string   `json:"billingMode"`
	OperatorID     *int64   `json:"operatorId"`
	SaleUnitPrice  *float64 `json:"saleUnitPrice"`
	SaleTotalPrice *float64 `json:"saleTotalPrice"`
	Taxable21      *float64 `json:"taxable21"`
	Taxable105     *float64 `json:"taxable105"`
	ExemptAmount   *float64 `json:"exemptAmount"`
	OtherTaxes     *float64 `json:"otherTaxes"`
	TransferFeePct *float64 `json:"transferFeePct"`
}

func FromFinancialMetadata(m *inventory.FinancialMetadata) *FinancialMetadataResponse {
	if m == nil {
		return nil
	}
	return &FinancialMetadataResponse{
		PricingMode:    string(m.PricingMode),
		BillingMode:    string(m.BillingMode),
		OperatorID:     m.OperatorID,
		SaleUnitPrice:  optionalAmount(m.SaleUnitPrice),
		SaleTotalPrice: optionalAmount(m.SaleTotalPrice),
		Taxable21:      optionalAmount(m.Taxable21),
		Taxable105:     optionalAmount(m.Taxable105),
		ExemptAmount:   optionalAmount(m.ExemptAmount),
		OtherTaxes:     optionalAmount(m.OtherTaxes),
		TransferFeePct: optionalAmount(m.TransferFeePercent),
	}
}

// NoteResponse is a decoded note.
type NoteResponse struct {
	Note      string                     `json:"note"`
	Financial *FinancialMetadataResponse `json:"financial"`
}

func FromDecodedNote(d inventory.DecodedNote) NoteResponse {
	return NoteResponse{
		Note:      d.Text,
		Financial: FromFinancialMetadata(d.Financial),
	}
}

// ComposedNoteResponse carries the note ready to be stored; null means empty.
type ComposedNoteResponse struct {
	Note *string `json:"note"`
}

func FromComposedNote(note string) ComposedNoteResponse {
	if note == "" {
		return ComposedNoteResponse{}
	}
	return ComposedNoteResponse{Note: &note}
}

type MetricsResponse struct {
	AvailableQty      int64   `json:"availableQty"`
	CostTotal         float64 `json:"costTotal"`
	CostAssigned      float64 `json:"costAssigned"`
	CostConfirmed     float64 `json:"costConfirmed"`
	CostBlocked       float64 `json:"costBlocked"`
	CostAvailable     float64 `json:"costAvailable"`
	SaleTotal         float64 `json:"saleTotal"`
	TransferFeeAmount float64 `json:"transferFeeAmount"`
	TaxesTotal        float64 `json:"taxesTotal"`
	GrossMargin       float64 `json:"grossMargin"`
	OperationalDebt   float64 `json:"operationalDebt"`
}

func FromMetrics(m inventory.Metrics) MetricsResponse {
	return MetricsResponse{
		AvailableQty:      m.AvailableQty,
		CostTotal:         amount(m.CostTotal),
		CostAssigned:      amount(m.CostAssigned),
		CostConfirmed:     amount(m.CostConfirmed),
		CostBlocked:       amount(m.CostBlocked),
		CostAvailable:     amount(m.CostAvailable),
		SaleTotal:         amount(m.SaleTotal),
		TransferFeeAmount: amount(m.TransferFeeAmount),
		TaxesTotal:        amount(m.TaxesTotal),
		GrossMargin:       amount(m.GrossMargin),
		OperationalDebt:   amount(m.OperationalDebt),
	}
}

type InventoryItemResponse struct {
	ID           int64                      `json:"id"`
	GroupID      int64                      `json:"groupId"`
	DepartureID  *int64                     `json:"departureId,omitempty"`
	ServiceType  string                     `json:"serviceType"`
	Description  string                     `json:"description"`
	Currency     string                     `json:"currency"`
	TotalQty     int64                      `json:"totalQty"`
	AssignedQty  int64                      `json:"assignedQty"`
	ConfirmedQty int64                      `json:"confirmedQty"`
	BlockedQty   int64                      `json:"blockedQty"`
	UnitCost     *float64                   `json:"unitCost"`
	Note         string                     `json:"note"`
	Financial    *FinancialMetadataResponse `json:"financial"`
	Metrics      MetricsResponse            `json:"metrics"`
}

func FromItemReport(it *inventory.ItemReport) InventoryItemResponse {
	r := it.Record
	return InventoryItemResponse{
		ID:           r.ID,
		GroupID:      r.GroupID,
		DepartureID:  r.DepartureID,
		ServiceType:  r.ServiceType,
		Description:  r.Description,
		Currency:     it.Metrics.Currency,
		TotalQty:     r.TotalQty,
		AssignedQty:  r.AssignedQty,
		ConfirmedQty: r.ConfirmedQty,
		BlockedQty:   r.BlockedQty,
		UnitCost:     optionalAmount(r.UnitCost),
		Note:         it.Note.Text,
		Financial:    FromFinancialMetadata(it.Note.Financial),
		Metrics:      FromMetrics(it.Metrics),
	}
}

type CurrencySummaryResponse struct {
	Currency      string `json:"currency"`
	ServicesCount int    `json:"servicesCount"`
	MetricsResponse
}

type GroupFinancialsResponse struct {
	Items      []InventoryItemResponse   `json:"items"`
	Currencies []CurrencySummaryResponse `json:"currencies"`
}

func FromFinancialReport(report *inventory.FinancialReport) GroupFinancialsResponse {
	resp := GroupFinancialsResponse{
		Items:      make([]InventoryItemResponse, len(report.Items)),
		Currencies: make([]CurrencySummaryResponse, len(report.Currencies)),
	}
	for i := range report.Items {
		resp.Items[i] = FromItemReport(&report.Items[i])
	}
	for i, s := range report.Currencies {
		resp.Currencies[i] = CurrencySummaryResponse{
			Currency:      s.Currency,
			ServicesCount: s.ServicesCount,
			MetricsResponse: MetricsResponse{
				AvailableQty:      s.AvailableQty,
				CostTotal:         amount(s.CostTotal),
				CostAssigned:      amount(s.CostAssigned),
				CostConfirmed:     amount(s.CostConfirmed),
				CostBlocked:       amount(s.CostBlocked),
				CostAvailable:     amount(s.CostAvailable),
				SaleTotal:         amount(s.SaleTotal),
				TransferFeeAmount: amount(s.TransferFeeAmount),
				TaxesTotal:        amount(s.TaxesTotal),
				GrossMargin:       amount(s.GrossMargin),
				OperationalDebt:   amount(s.OperationalDebt),
			},
		}
	}
	return resp
}
