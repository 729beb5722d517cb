package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/types"
)

func assertMoney(t *testing.T, want string, got types.Money, field string) {
	t.Helper()
	assert.True(t, types.MustMoney(want).Equal(got), "%s: want %s got %s", field, want, got)
}

func TestComputeItemMetrics_Full(t *testing.T) {
	r := Record{
		ID:           1,
		Currency:     "usd",
		TotalQty:     10,
		AssignedQty:  6,
		ConfirmedQty: 4,
		BlockedQty:   1,
		UnitCost:     money("50"),
	}
	meta := &FinancialMetadata{
		PricingMode:   PricingManual,
		SaleUnitPrice: money("80"),
		Taxable21:     money("10"),
		Taxable105:    money("5"),
		ExemptAmount:  money("2.5"),
		OtherTaxes:    money("1.5"),
	}

	m := ComputeItemMetrics(r, meta, money("2"))

	assert.Equal(t, int64(1), m.RecordID)
	assert.Equal(t, "USD", m.Currency)
	assert.Equal(t, int64(3), m.AvailableQty)
	assertMoney(t, "500", m.CostTotal, "costTotal")
	assertMoney(t, "300", m.CostAssigned, "costAssigned")
	assertMoney(t, "200", m.CostConfirmed, "costConfirmed")
	assertMoney(t, "50", m.CostBlocked, "costBlocked")
	assertMoney(t, "150", m.CostAvailable, "costAvailable")
	assertMoney(t, "800", m.SaleTotal, "saleTotal")
	assertMoney(t, "16", m.TransferFeeAmount, "transferFee")
	assertMoney(t, "19", m.TaxesTotal, "taxesTotal")
	assertMoney(t, "265", m.GrossMargin, "grossMargin")
	assertMoney(t, "100", m.OperationalDebt, "operationalDebt")
}

func TestComputeItemMetrics_QuantityClamp(t *testing.T) {
	r := Record{TotalQty: 10, AssignedQty: 7, BlockedQty: 5, UnitCost: money("3")}

	m := ComputeItemMetrics(r, nil, types.None())

	assert.Equal(t, int64(0), m.AvailableQty)
	assertMoney(t, "0", m.CostAvailable, "costAvailable")
}

func TestComputeItemMetrics_NegativeQuantitiesTreatedAsZero(t *testing.T) {
	r := Record{TotalQty: -5, AssignedQty: -1, ConfirmedQty: -2, BlockedQty: -3, UnitCost: money("10")}

	m := ComputeItemMetrics(r, nil, types.None())

	assert.Equal(t, int64(0), m.AvailableQty)
	assertMoney(t, "0", m.CostTotal, "costTotal")
	assertMoney(t, "0", m.OperationalDebt, "operationalDebt")
}

func TestComputeItemMetrics_OperationalDebtAsymmetry(t *testing.T) {
	tests := []struct {
		name      string
		assigned  int64
		confirmed int64
		want      string
	}{
		{"confirmed exceeds assigned", 10, 15, "0"},
		{"assigned exceeds confirmed", 15, 10, "50"},
		{"balanced", 8, 8, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{TotalQty: 20, AssignedQty: tt.assigned, ConfirmedQty: tt.confirmed, UnitCost: money("10")}
			m := ComputeItemMetrics(r, nil, types.None())
			assertMoney(t, tt.want, m.OperationalDebt, "operationalDebt")
		})
	}
}

func TestComputeItemMetrics_PricingModeSwitch(t *testing.T) {
	r := Record{TotalQty: 4}

	manual := ComputeItemMetrics(r, &FinancialMetadata{PricingMode: PricingManual, SaleUnitPrice: money("25")}, types.None())
	assertMoney(t, "100", manual.SaleTotal, "manual saleTotal")

	total := ComputeItemMetrics(r, &FinancialMetadata{
		PricingMode:    PricingTotalSale,
		SaleUnitPrice:  money("25"),
		SaleTotalPrice: money("90"),
	}, types.None())
	assertMoney(t, "90", total.SaleTotal, "total saleTotal")
}

func TestComputeItemMetrics_NoMetadata(t *testing.T) {
	r := Record{Currency: "", TotalQty: 2, AssignedQty: 1}

	m := ComputeItemMetrics(r, nil, money("3"))

	assert.Equal(t, DefaultCurrency, m.Currency)
	assertMoney(t, "0", m.CostTotal, "costTotal without unit cost")
	assertMoney(t, "0", m.SaleTotal, "saleTotal")
	assertMoney(t, "0", m.TransferFeeAmount, "transferFee")
	assertMoney(t, "0", m.TaxesTotal, "taxesTotal")
	assertMoney(t, "0", m.GrossMargin, "grossMargin")
}

func TestComputeItemMetrics_TransferFeeOnlyOnPositiveSale(t *testing.T) {
	r := Record{TotalQty: 1}
	meta := &FinancialMetadata{PricingMode: PricingTotalSale, SaleTotalPrice: money("-50"), TransferFeePercent: money("10")}

	m := ComputeItemMetrics(r, meta, types.None())

	assertMoney(t, "0", m.TransferFeeAmount, "transferFee")
	assertMoney(t, "-50", m.GrossMargin, "grossMargin")
}

func TestComputeItemMetrics_Idempotent(t *testing.T) {
	r := Record{ID: 3, Currency: "eur", TotalQty: 7, AssignedQty: 3, ConfirmedQty: 1, UnitCost: money("12.34")}
	meta := &FinancialMetadata{SaleUnitPrice: money("20"), TransferFeePercent: money("2.4")}

	first := ComputeItemMetrics(r, meta, money("1"))
	second := ComputeItemMetrics(r, meta, money("1"))

	assert.Equal(t, first.AvailableQty, second.AvailableQty)
	assert.True(t, first.GrossMargin.Equal(second.GrossMargin))
	assert.True(t, first.OperationalDebt.Equal(second.OperationalDebt))
	assertMoney(t, "3.36", first.TransferFeeAmount, "transferFee")
}

func TestAggregateByCurrency(t *testing.T) {
	items := []Metrics{
		{Currency: "USD", CostTotal: types.MustMoney("10")},
		{Currency: "ARS", CostTotal: types.MustMoney("5")},
		{Currency: "USD", CostTotal: types.MustMoney("20")},
	}

	got := AggregateByCurrency(items)

	require.Len(t, got, 2)
	assert.Equal(t, "ARS", got[0].Currency)
	assertMoney(t, "5", got[0].CostTotal, "ARS costTotal")
	assert.Equal(t, 1, got[0].ServicesCount)
	assert.Equal(t, "USD", got[1].Currency)
	assertMoney(t, "30", got[1].CostTotal, "USD costTotal")
	assert.Equal(t, 2, got[1].ServicesCount)
}

func TestAggregateByCurrency_NormalizesCodes(t *testing.T) {
	items := []Metrics{
		{Currency: " usd ", AvailableQty: 2, SaleTotal: types.MustMoney("100"), OperationalDebt: types.MustMoney("7")},
		{Currency: "", AvailableQty: 1, GrossMargin: types.MustMoney("-4")},
		{Currency: "USD", AvailableQty: 3, SaleTotal: types.MustMoney("50.5")},
		{Currency: "eur", TaxesTotal: types.MustMoney("1.25")},
	}

	got := AggregateByCurrency(items)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"ARS", "EUR", "USD"}, []string{got[0].Currency, got[1].Currency, got[2].Currency})

	assert.Equal(t, int64(1), got[0].AvailableQty)
	assertMoney(t, "-4", got[0].GrossMargin, "ARS grossMargin")
	assertMoney(t, "1.25", got[1].TaxesTotal, "EUR taxes")
	assertMoney(t, "0", got[1].CostTotal, "EUR cost")

	assert.Equal(t, 2, got[2].ServicesCount)
	assert.Equal(t, int64(5), got[2].AvailableQty)
	assertMoney(t, "150.5", got[2].SaleTotal, "USD sale")
	assertMoney(t, "7", got[2].OperationalDebt, "USD debt")
}

func TestAggregateByCurrency_Empty(t *testing.T) {
	assert.Empty(t, AggregateByCurrency(nil))
}
