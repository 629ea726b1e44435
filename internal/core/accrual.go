package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccruedIncome sums the monthly-equivalent value of every income that is
// economically owed in the month containing target: active, started on or
// before the end of that month (a zero start counts as always started), and
// not ended before the month began. One-time incomes count only in the month
// of their own start date.
func AccruedIncome(incomes []Income, target time.Time) decimal.Decimal {
	total := decimal.Zero
	end := EndOfMonth(target)
	start := StartOfMonth(target)
	for _, in := range incomes {
		if !in.Active {
			continue
		}
		if !in.StartDate.IsZero() && in.StartDate.After(end) {
			continue
		}
		if !in.EndDate.IsZero() && in.EndDate.Before(start) {
			continue
		}
		if in.Frequency == Once {
			if MonthKey(in.StartDate) != MonthKey(target) {
				continue
			}
		}
		total = total.Add(MonthlyEquivalent(in.Amount, in.Frequency))
	}
	return total
}

// AccruedExpenses sums the expenses owed in the month containing target.
// Recurring templates contribute their monthly-equivalent amount once their
// transaction date has been reached; one-time rows contribute their raw
// amount only in the month of the transaction date.
func AccruedExpenses(expenses []Expense, target time.Time) decimal.Decimal {
	total := decimal.Zero
	end := EndOfMonth(target)
	for _, e := range expenses {
		if e.Recurring {
			if e.TransactionDate.After(end) {
				continue
			}
			total = total.Add(MonthlyEquivalent(e.Amount, e.Frequency))
			continue
		}
		if MonthKey(e.TransactionDate) == MonthKey(target) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// AccruedSeries maps each period key to a PeriodPoint with accrued income,
// expenses, net and savings rate. Output order follows the input periods;
// the caller owns sorting and deduplication. A malformed period key produces
// an all-zero point rather than an error. Savings rate is zero whenever
// income is not positive.
func AccruedSeries(incomes []Income, expenses []Expense, periods []string) []PeriodPoint {
	points := make([]PeriodPoint, 0, len(periods))
	for _, p := range periods {
		point := PeriodPoint{
			Period:      p,
			Income:      decimal.Zero,
			Expenses:    decimal.Zero,
			Net:         decimal.Zero,
			SavingsRate: decimal.Zero,
		}
		at, err := ParseMonthKey(p)
		if err == nil {
			point.Income = AccruedIncome(incomes, at)
			point.Expenses = AccruedExpenses(expenses, at)
			point.Net = point.Income.Sub(point.Expenses)
			if point.Income.IsPositive() {
				point.SavingsRate = point.Net.Div(point.Income)
			}
		}
		points = append(points, point)
	}
	return points
}
