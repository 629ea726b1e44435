package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Once      Frequency = "once"
	Daily     Frequency = "daily"
	Weekly    Frequency = "weekly"
	Biweekly  Frequency = "biweekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

type (
	// Frequency is the cycle a recurring income or expense repeats on.
	Frequency string

	// Income is a recurring or one-time inflow. A zero StartDate means the
	// income has no anchor date and counts from the beginning of time; a zero
	// EndDate means it never stops.
	Income struct {
		ID          int64
		Description string
		Source      string
		Amount      decimal.Decimal
		Frequency   Frequency
		Active      bool
		StartDate   time.Time
		EndDate     time.Time
	}

	// Expense is either a recurring template (Recurring=true, Frequency is the
	// repeat cycle) or a one-time transaction anchored to TransactionDate.
	// Installment lines carry a shared GroupID plus InstallmentNo/InstallmentOf.
	Expense struct {
		ID              int64
		Description     string
		Category        string
		Amount          decimal.Decimal
		Frequency       Frequency
		Recurring       bool
		TransactionDate time.Time
		CardID          string
		GroupID         string
		InstallmentNo   int
		InstallmentOf   int
	}

	// PeriodPoint is one entry of an accrual time series. Derived, never stored.
	PeriodPoint struct {
		Period      string
		Income      decimal.Decimal
		Expenses    decimal.Decimal
		Net         decimal.Decimal
		SavingsRate decimal.Decimal
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrEmptyDescription = errors.New("empty description")
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case Once, Daily, Weekly, Biweekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

func (in Income) Validate() error {
	if in.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if !in.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if len(strings.TrimSpace(in.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(in.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if !in.EndDate.IsZero() {
		if in.StartDate.IsZero() {
			return errors.New("end date requires a start date")
		}
		if in.EndDate.Before(in.StartDate) {
			return errors.New("end date must not precede start date")
		}
	}
	return nil
}

func (e Expense) Validate() error {
	if e.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if !e.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if e.TransactionDate.IsZero() {
		return ErrInvalidDate
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if e.InstallmentNo < 0 || e.InstallmentOf < 0 || e.InstallmentNo > e.InstallmentOf {
		return errors.New("invalid installment sequence")
	}
	return nil
}
