package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentLine is one dated slice of a financed total. Index is 1-based.
type InstallmentLine struct {
	Index   int
	Amount  decimal.Decimal
	DueDate time.Time
}

// SplitInstallments divides a financed total into count equal installments
// due one calendar month apart starting at firstDue. Each line carries
// round2(total/count); the per-line rounding means the lines may undershoot
// or overshoot the total by up to count cents, which is accepted rather than
// corrected. Due dates clamp to the last valid day of shorter months.
//
// Callers validate total > 0 and count >= 1 before invoking; a count below 1
// yields nil.
func SplitInstallments(total decimal.Decimal, count int, firstDue time.Time) []InstallmentLine {
	if count < 1 {
		return nil
	}
	per := Round2(total.Div(decimal.NewFromInt(int64(count))))
	lines := make([]InstallmentLine, count)
	for i := 0; i < count; i++ {
		lines[i] = InstallmentLine{
			Index:   i + 1,
			Amount:  per,
			DueDate: AddMonths(firstDue, i),
		}
	}
	return lines
}
