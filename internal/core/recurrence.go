package core

import "github.com/shopspring/decimal"

// Monthly-equivalent conversion factors. The weekly and biweekly multipliers
// are the customary approximations (4.33 ~= 52/12, 2.17 ~= 26/12), not exact
// calendar arithmetic; daily uses a flat 30-day month.
var (
	weeksPerMonth   = decimal.RequireFromString("4.33")
	biweeksPerMonth = decimal.RequireFromString("2.17")
	daysPerMonth    = decimal.NewFromInt(30)
	monthsPerQ      = decimal.NewFromInt(3)
	monthsPerYear   = decimal.NewFromInt(12)
)

// MonthlyEquivalent converts an amount tagged with a recurrence frequency to
// its monthly-equivalent value. Monthly, once and unrecognized frequencies
// pass through unchanged; a zero amount is returned as-is without consulting
// the table.
func MonthlyEquivalent(amount decimal.Decimal, f Frequency) decimal.Decimal {
	if amount.IsZero() {
		return decimal.Zero
	}
	switch f {
	case Weekly:
		return amount.Mul(weeksPerMonth)
	case Biweekly:
		return amount.Mul(biweeksPerMonth)
	case Quarterly:
		return amount.Div(monthsPerQ)
	case Yearly:
		return amount.Div(monthsPerYear)
	case Daily:
		return amount.Mul(daysPerMonth)
	default:
		return amount
	}
}
