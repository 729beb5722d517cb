package inventory

import (
	"github.com/shopspring/decimal"

	"backoffice/internal/core/types"
)

// Precedence rules for optional inputs. Each helper resolves one field so
// the fallback order can be read and tested on its own.

// ResolveQty clamps a raw quantity to zero.
func ResolveQty(q int64) int64 {
	if q < 0 {
		return 0
	}
	return q
}

// ResolveUnitCost returns the record unit cost or zero.
func ResolveUnitCost(r Record) types.Money {
	return types.OrZero(r.UnitCost)
}

// ResolveTransferFeePct returns, in order: the metadata percentage, the
// system default, zero.
func ResolveTransferFeePct(meta *FinancialMetadata, systemDefault types.OptionalMoney) types.Money {
	if meta != nil && meta.TransferFeePercent.Valid {
		return meta.TransferFeePercent.Decimal
	}
	return types.OrZero(systemDefault)
}

// ResolveSaleTotal returns the sale total for totalQty units.
// TOTAL_SALE uses the stored total; MANUAL, or no metadata, multiplies the
// unit price.
func ResolveSaleTotal(meta *FinancialMetadata, totalQty int64) types.Money {
	if meta == nil {
		return decimal.Zero
	}
	if meta.PricingMode == PricingTotalSale {
		return types.OrZero(meta.SaleTotalPrice)
	}
	return types.OrZero(meta.SaleUnitPrice).Mul(decimal.NewFromInt(totalQty))
}

// ResolveTaxesTotal sums the four tax buckets, treating absent ones as zero.
func ResolveTaxesTotal(meta *FinancialMetadata) types.Money {
	if meta == nil {
		return decimal.Zero
	}
	return types.OrZero(meta.Taxable21).
		Add(types.OrZero(meta.Taxable105)).
		Add(types.OrZero(meta.ExemptAmount)).
		Add(types.OrZero(meta.OtherTaxes))
}
