// Package core holds the domain entities and the pure accrual, installment
// and payday computations they feed. Nothing in here does I/O.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-entered amount string to a decimal rounded to
// two places. It accepts both dot (12.34) and comma (12,34) separators and
// rejects empty, signed, non-numeric and non-positive values.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,345") -> 12.35, nil (half-up on the third decimal)
//	ParseAmount("-5")     -> error
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if d.Sign() <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Round2 rounds an amount to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
