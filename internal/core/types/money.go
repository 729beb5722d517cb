// Package types provides common type aliases and utilities.
package types

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits every normalized amount keeps.
const MoneyPlaces int32 = 2

// MaxMoneyDigits is the largest number of integer digits an amount may carry.
const MaxMoneyDigits = 15

// ErrMoneyOutOfRange is returned for amounts with more than MaxMoneyDigits
// integer digits.
var ErrMoneyOutOfRange = errors.New("money: amount out of range")

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// OptionalMoney is a monetary value that may be absent.
type OptionalMoney = decimal.NullDecimal

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
//
// Amounts beyond MaxMoneyDigits integer digits return ErrMoneyOutOfRange.
// Amounts too small to survive rounding to MoneyPlaces collapse to zero, so
// the result never carries an extreme exponent.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero(), err
	}
	return bounded(d)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Some wraps a present amount.
func Some(m Money) OptionalMoney {
	return decimal.NewNullDecimal(m)
}

// None returns an absent amount.
func None() OptionalMoney {
	return decimal.NullDecimal{}
}

// OrZero returns the amount or zero when absent.
func OrZero(m OptionalMoney) Money {
	if !m.Valid {
		return decimal.Zero
	}
	return m.Decimal
}

// Round2 rounds to MoneyPlaces fractional digits.
func Round2(m Money) Money {
	return m.Round(MoneyPlaces)
}

// NormalizeMoney converts loosely typed input into a 2-decimal amount.
//
// Accepted inputs are Go numbers, decimals, json.Number and strings using
// either comma or dot as the decimal separator. Empty, non-numeric and
// non-finite input yields an absent amount; it never panics.
func NormalizeMoney(value any) OptionalMoney {
	switch v := value.(type) {
	case nil:
		return None()
	case decimal.Decimal:
		return normalizeDecimal(v)
	case decimal.NullDecimal:
		if !v.Valid {
			return None()
		}
		return normalizeDecimal(v.Decimal)
	case *decimal.Decimal:
		if v == nil {
			return None()
		}
		return normalizeDecimal(*v)
	case float64:
		return normalizeFloat(v)
	case float32:
		return normalizeFloat(float64(v))
	case int:
		return normalizeDecimal(decimal.NewFromInt(int64(v)))
	case int32:
		return normalizeDecimal(decimal.NewFromInt(int64(v)))
	case int64:
		return normalizeDecimal(decimal.NewFromInt(v))
	case json.Number:
		return normalizeString(string(v))
	case string:
		return normalizeString(v)
	case *string:
		if v == nil {
			return None()
		}
		return normalizeString(*v)
	default:
		return None()
	}
}

func normalizeFloat(f float64) OptionalMoney {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return None()
	}
	return normalizeDecimal(decimal.NewFromFloat(f))
}

func normalizeString(s string) OptionalMoney {
	s = strings.TrimSpace(s)
	if s == "" {
		return None()
	}
	d, err := NewMoneyFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return None()
	}
	return Some(Round2(d))
}

func normalizeDecimal(d decimal.Decimal) OptionalMoney {
	d, err := bounded(d)
	if err != nil {
		return None()
	}
	return Some(Round2(d))
}

// bounded checks the magnitude from the coefficient length and exponent
// alone; rescaling an unchecked exponent costs time proportional to it.
func bounded(d decimal.Decimal) (Money, error) {
	if d.IsZero() {
		return Zero(), nil
	}
	intDigits := int64(d.NumDigits()) + int64(d.Exponent())
	switch {
	case intDigits > MaxMoneyDigits:
		return Zero(), ErrMoneyOutOfRange
	case intDigits < -int64(MoneyPlaces):
		return Zero(), nil
	}
	return d, nil
}
