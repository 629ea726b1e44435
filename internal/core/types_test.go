package core

import (
	"testing"
	"time"
)

func TestIncomeValidate(t *testing.T) {
	good := Income{
		Description: "salary",
		Amount:      dec("2500"),
		Frequency:   Monthly,
		Active:      true,
		StartDate:   date(2024, time.January, 5),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Income{
		{Description: "a", Amount: dec("0"), Frequency: Monthly},
		{Description: "a", Amount: dec("10"), Frequency: "fortnightly-ish"},
		{Description: "", Amount: dec("10"), Frequency: Monthly},
		{Description: "a", Amount: dec("10"), Frequency: Monthly,
			StartDate: date(2024, time.May, 1), EndDate: date(2024, time.April, 1)},
		{Description: "a", Amount: dec("10"), Frequency: Monthly,
			EndDate: date(2024, time.April, 1)}, // end without start
	}
	for i, in := range bads {
		if err := in.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Description:     "rent",
		Category:        "Housing",
		Amount:          dec("900"),
		Frequency:       Monthly,
		Recurring:       true,
		TransactionDate: date(2024, time.January, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Description: "a", Amount: dec("0"), Frequency: Once, TransactionDate: date(2024, time.January, 1)},
		{Description: "a", Amount: dec("10"), Frequency: "never", TransactionDate: date(2024, time.January, 1)},
		{Description: "a", Amount: dec("10"), Frequency: Once}, // zero date
		{Description: "", Amount: dec("10"), Frequency: Once, TransactionDate: date(2024, time.January, 1)},
		{Description: "a", Amount: dec("10"), Frequency: Once, TransactionDate: date(2024, time.January, 1),
			InstallmentNo: 4, InstallmentOf: 3},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
