// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"backoffice/internal/core/types"
)

// amount renders money as a JSON number with 2 decimals.
func amount(m types.Money) float64 {
	return types.Round2(m).InexactFloat64()
}

// optionalAmount renders absent money as null.
func optionalAmount(m types.OptionalMoney) *float64 {
	if !m.Valid {
		return nil
	}
	v := amount(m.Decimal)
	return &v
}
