package inventory

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"backoffice/internal/core/types"
)

// DefaultCurrency is used for records with a blank currency.
const DefaultCurrency = "ARS"

var hundred = decimal.NewFromInt(100)

// ComputeItemMetrics derives the financial figures of one record.
// meta may be nil; defaultFeePct is the system-wide transfer fee and may be
// absent. It never fails.
func ComputeItemMetrics(r Record, meta *FinancialMetadata, defaultFeePct types.OptionalMoney) Metrics {
	total := ResolveQty(r.TotalQty)
	assigned := ResolveQty(r.AssignedQty)
	confirmed := ResolveQty(r.ConfirmedQty)
	blocked := ResolveQty(r.BlockedQty)

	available := total - assigned - blocked
	if available < 0 {
		available = 0
	}

	unitCost := ResolveUnitCost(r)
	cost := func(q int64) types.Money {
		return unitCost.Mul(decimal.NewFromInt(q))
	}

	m := Metrics{
		RecordID:      r.ID,
		Currency:      NormalizeCurrency(r.Currency, DefaultCurrency),
		AvailableQty:  available,
		CostTotal:     cost(total),
		CostAssigned:  cost(assigned),
		CostConfirmed: cost(confirmed),
		CostBlocked:   cost(blocked),
		CostAvailable: cost(available),
		SaleTotal:     ResolveSaleTotal(meta, total),
		TaxesTotal:    ResolveTaxesTotal(meta),
	}

	m.TransferFeeAmount = decimal.Zero
	if m.SaleTotal.IsPositive() {
		m.TransferFeeAmount = m.SaleTotal.Mul(ResolveTransferFeePct(meta, defaultFeePct)).Div(hundred)
	}

	m.GrossMargin = m.SaleTotal.Sub(m.CostTotal).Sub(m.TransferFeeAmount).Sub(m.TaxesTotal)

	// Confirming more than was assigned is prepaid buffer, not debt.
	m.OperationalDebt = decimal.Max(m.CostAssigned.Sub(m.CostConfirmed), decimal.Zero)

	return m
}

// NormalizeCurrency upper-cases a currency code, falling back when blank.
func NormalizeCurrency(code, fallback string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fallback
	}
	return code
}

// AggregateByCurrency sums item metrics per currency, ordered by code.
func AggregateByCurrency(items []Metrics) []CurrencySummary {
	byCode := make(map[string]*CurrencySummary)
	for _, it := range items {
		code := NormalizeCurrency(it.Currency, DefaultCurrency)
		s, ok := byCode[code]
		if !ok {
			s = newCurrencySummary(code)
			byCode[code] = s
		}
		s.add(it)
	}

	out := make([]CurrencySummary, 0, len(byCode))
	for _, s := range byCode {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Currency < out[j].Currency
	})
	return out
}

func newCurrencySummary(code string) *CurrencySummary {
	return &CurrencySummary{
		Currency:          code,
		CostTotal:         decimal.Zero,
		CostAssigned:      decimal.Zero,
		CostConfirmed:     decimal.Zero,
		CostBlocked:       decimal.Zero,
		CostAvailable:     decimal.Zero,
		SaleTotal:         decimal.Zero,
		TransferFeeAmount: decimal.Zero,
		TaxesTotal:        decimal.Zero,
		GrossMargin:       decimal.Zero,
		OperationalDebt:   decimal.Zero,
	}
}

func (s *CurrencySummary) add(m Metrics) {
	s.ServicesCount++
	s.AvailableQty += m.AvailableQty
	s.CostTotal = s.CostTotal.Add(m.CostTotal)
	s.CostAssigned = s.CostAssigned.Add(m.CostAssigned)
	s.CostConfirmed = s.CostConfirmed.Add(m.CostConfirmed)
	s.CostBlocked = s.CostBlocked.Add(m.CostBlocked)
	s.CostAvailable = s.CostAvailable.Add(m.CostAvailable)
	s.SaleTotal = s.SaleTotal.Add(m.SaleTotal)
	s.TransferFeeAmount = s.TransferFeeAmount.Add(m.TransferFeeAmount)
	s.TaxesTotal = s.TaxesTotal.Add(m.TaxesTotal)
	s.GrossMargin = s.GrossMargin.Add(m.GrossMargin)
	s.OperationalDebt = s.OperationalDebt.Add(m.OperationalDebt)
}
