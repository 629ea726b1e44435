// Package store defines the ports the services use to reach row storage.
// Adapters live in subpackages (memory) and in internal/storage (SQLite) and
// internal/sheets (hosted spreadsheet table store).
package store

import (
	"context"
	"time"

	"fintrack/internal/core"
)

type (
	IncomeStore interface {
		AddIncome(ctx context.Context, in core.Income) (int64, error)
		ListIncomes(ctx context.Context) ([]core.Income, error)
		DeleteIncome(ctx context.Context, id int64) error
	}

	ExpenseStore interface {
		AddExpense(ctx context.Context, e core.Expense) (int64, error)
		// AddExpenses inserts a batch atomically; used for installment plans.
		AddExpenses(ctx context.Context, es []core.Expense) ([]int64, error)
		ListExpenses(ctx context.Context) ([]core.Expense, error)
		DeleteExpense(ctx context.Context, id int64) error
		// DeleteGroup removes every row sharing an installment group id and
		// returns how many were removed.
		DeleteGroup(ctx context.Context, groupID string) (int, error)
	}

	// DueLister serves the reminder job: installment rows falling due in a window.
	DueLister interface {
		ListInstallmentsDueBetween(ctx context.Context, from, to time.Time) ([]core.Expense, error)
	}
)
