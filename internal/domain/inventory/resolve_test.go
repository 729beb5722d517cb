package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/core/types"
)

func TestResolveTransferFeePct(t *testing.T) {
	tests := []struct {
		name     string
		meta     *FinancialMetadata
		fallback types.OptionalMoney
		want     string
	}{
		{"metadata wins", &FinancialMetadata{TransferFeePercent: money("3.5")}, money("2.4"), "3.5"},
		{"metadata zero still wins", &FinancialMetadata{TransferFeePercent: money("0")}, money("2.4"), "0"},
		{"system default", &FinancialMetadata{}, money("2.4"), "2.4"},
		{"no metadata uses default", nil, money("1.2"), "1.2"},
		{"nothing set", nil, types.None(), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMoney(t, tt.want, ResolveTransferFeePct(tt.meta, tt.fallback), "fee pct")
		})
	}
}

func TestResolveSaleTotal(t *testing.T) {
	tests := []struct {
		name string
		meta *FinancialMetadata
		qty  int64
		want string
	}{
		{"no metadata", nil, 5, "0"},
		{"manual", &FinancialMetadata{PricingMode: PricingManual, SaleUnitPrice: money("12.5")}, 4, "50"},
		{"manual without unit price", &FinancialMetadata{PricingMode: PricingManual}, 4, "0"},
		{"empty mode behaves as manual", &FinancialMetadata{SaleUnitPrice: money("2")}, 3, "6"},
		{"total sale", &FinancialMetadata{PricingMode: PricingTotalSale, SaleTotalPrice: money("99.9")}, 4, "99.9"},
		{"total sale without total", &FinancialMetadata{PricingMode: PricingTotalSale, SaleUnitPrice: money("5")}, 4, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMoney(t, tt.want, ResolveSaleTotal(tt.meta, tt.qty), "sale total")
		})
	}
}

func TestResolveTaxesTotal(t *testing.T) {
	assertMoney(t, "0", ResolveTaxesTotal(nil), "nil meta")
	assertMoney(t, "0", ResolveTaxesTotal(&FinancialMetadata{}), "empty meta")
	assertMoney(t, "7.5", ResolveTaxesTotal(&FinancialMetadata{Taxable21: money("5"), OtherTaxes: money("2.5")}), "partial")
}

func TestResolveQtyAndUnitCost(t *testing.T) {
	assert.Equal(t, int64(0), ResolveQty(-3))
	assert.Equal(t, int64(4), ResolveQty(4))
	assertMoney(t, "0", ResolveUnitCost(Record{}), "absent unit cost")
	assertMoney(t, "8.25", ResolveUnitCost(Record{UnitCost: money("8.25")}), "unit cost")
}
