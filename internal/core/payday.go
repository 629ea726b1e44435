package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaydayRule selects a business day within a month, counting forward from the
// first day or backward from the last. Saturdays and Sundays are excluded;
// there is no holiday calendar.
type PaydayRule string

const (
	FirstBusinessDay  PaydayRule = "first_bd"
	SecondBusinessDay PaydayRule = "second_bd"
	ThirdBusinessDay  PaydayRule = "third_bd"
	FourthBusinessDay PaydayRule = "fourth_bd"
	FifthBusinessDay  PaydayRule = "fifth_bd"

	LastBusinessDay       PaydayRule = "last_bd"
	SecondLastBusinessDay PaydayRule = "second_last_bd"
	ThirdLastBusinessDay  PaydayRule = "third_last_bd"
)

var bonusRate = decimal.RequireFromString("0.5")

// Valid reports whether r is a known payday rule.
func (r PaydayRule) Valid() bool {
	_, _, ok := r.ordinal()
	return ok
}

// ordinal returns the 1-based business-day count for the rule and whether the
// count runs backward from the end of the month.
func (r PaydayRule) ordinal() (n int, fromEnd bool, ok bool) {
	switch r {
	case FirstBusinessDay:
		return 1, false, true
	case SecondBusinessDay:
		return 2, false, true
	case ThirdBusinessDay:
		return 3, false, true
	case FourthBusinessDay:
		return 4, false, true
	case FifthBusinessDay:
		return 5, false, true
	case LastBusinessDay:
		return 1, true, true
	case SecondLastBusinessDay:
		return 2, true, true
	case ThirdLastBusinessDay:
		return 3, true, true
	}
	return 0, false, false
}

func isBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// ResolvePayday resolves a payday rule against a year and 0-based month index
// to a concrete calendar date. If the rule is unknown or its ordinal exceeds
// the business days in the month, the last calendar day of the month is
// returned; the function never fails.
func ResolvePayday(year, monthIndex0 int, rule PaydayRule) time.Time {
	month := time.Month(monthIndex0 + 1)
	last := DaysInMonth(year, month)

	if n, fromEnd, ok := rule.ordinal(); ok {
		seen := 0
		if fromEnd {
			for day := last; day >= 1; day-- {
				d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				if isBusinessDay(d) {
					seen++
					if seen == n {
						return d
					}
				}
			}
		} else {
			for day := 1; day <= last; day++ {
				d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				if isBusinessDay(d) {
					seen++
					if seen == n {
						return d
					}
				}
			}
		}
	}

	return time.Date(year, month, last, 0, 0, 0, 0, time.UTC)
}

// IsBonusMonth reports whether the month carries the seasonal half-salary
// bonus ("SAC"): June and December.
func IsBonusMonth(m time.Month) bool {
	return m == time.June || m == time.December
}

// SeasonalBonus returns the amount of the seasonal bonus receipt, 50% of the
// base salary.
func SeasonalBonus(base decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(bonusRate))
}
