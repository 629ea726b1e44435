// Package storage is the local SQLite row cache. Every mutation lands here
// first; the worker pushes pending rows to the hosted table store afterwards.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// Sync states for rows waiting to reach the hosted table store.
const (
	SyncPending = "pending"
	SyncDone    = "synced"
	SyncError   = "error"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// AddIncome implements store.IncomeStore.
func (r *Repository) AddIncome(ctx context.Context, in core.Income) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO incomes (description, source, amount, frequency, active, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Description, in.Source, in.Amount.String(), string(in.Frequency),
		boolToInt(in.Active), formatDate(in.StartDate), formatDate(in.EndDate))
	if err != nil {
		return 0, fmt.Errorf("insert income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("income insert id: %w", err)
	}

	slog.InfoContext(ctx, "Income saved to SQLite",
		"id", id, "description", in.Description, "amount", in.Amount.String(), "frequency", in.Frequency)
	return id, nil
}

// ListIncomes implements store.IncomeStore.
func (r *Repository) ListIncomes(ctx context.Context) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, source, amount, frequency, active, start_date, end_date
		FROM incomes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	var out []core.Income
	for rows.Next() {
		var (
			in                 core.Income
			amount, freq       string
			active             int
			startDate, endDate string
		)
		if err := rows.Scan(&in.ID, &in.Description, &in.Source, &amount, &freq, &active, &startDate, &endDate); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		in.Amount = parseAmount(amount)
		in.Frequency = core.Frequency(freq)
		in.Active = active != 0
		in.StartDate = parseDate(startDate)
		in.EndDate = parseDate(endDate)
		out = append(out, in)
	}
	return out, rows.Err()
}

// DeleteIncome implements store.IncomeStore.
func (r *Repository) DeleteIncome(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AddExpense implements store.ExpenseStore.
func (r *Repository) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	ids, err := r.AddExpenses(ctx, []core.Expense{e})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// AddExpenses inserts a batch in one transaction; installment plans rely on
// all-or-nothing here.
func (r *Repository) AddExpenses(ctx context.Context, es []core.Expense) ([]int64, error) {
	for _, e := range es {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO expenses (description, category, amount, frequency, recurring,
			transaction_date, card_id, group_id, installment_no, installment_of)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(es))
	for _, e := range es {
		res, err := stmt.ExecContext(ctx,
			e.Description, e.Category, e.Amount.String(), string(e.Frequency),
			boolToInt(e.Recurring), formatDate(e.TransactionDate),
			e.CardID, e.GroupID, e.InstallmentNo, e.InstallmentOf)
		if err != nil {
			return nil, fmt.Errorf("insert expense: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("expense insert id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Expenses saved to SQLite", "count", len(ids))
	return ids, nil
}

// ListExpenses implements store.ExpenseStore.
func (r *Repository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, category, amount, frequency, recurring,
			transaction_date, card_id, group_id, installment_no, installment_of
		FROM expenses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// DeleteExpense implements store.ExpenseStore.
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteGroup removes every row of an installment group.
func (r *Repository) DeleteGroup(ctx context.Context, groupID string) (int, error) {
	if groupID == "" {
		return 0, fmt.Errorf("empty group id")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE group_id = ?`, groupID)
	if err != nil {
		return 0, fmt.Errorf("delete group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	slog.InfoContext(ctx, "Installment group deleted", "group_id", groupID, "count", n)
	return int(n), nil
}

// ListInstallmentsDueBetween implements store.DueLister for the reminder job.
func (r *Repository) ListInstallmentsDueBetween(ctx context.Context, from, to time.Time) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, category, amount, frequency, recurring,
			transaction_date, card_id, group_id, installment_no, installment_of
		FROM expenses
		WHERE installment_of > 0 AND transaction_date >= ? AND transaction_date <= ?
		ORDER BY transaction_date, id`,
		formatDate(from), formatDate(to))
	if err != nil {
		return nil, fmt.Errorf("list due installments: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func scanExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var out []core.Expense
	for rows.Next() {
		var (
			e            core.Expense
			amount, freq string
			recurring    int
			txDate       string
		)
		if err := rows.Scan(&e.ID, &e.Description, &e.Category, &amount, &freq, &recurring,
			&txDate, &e.CardID, &e.GroupID, &e.InstallmentNo, &e.InstallmentOf); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Amount = parseAmount(amount)
		e.Frequency = core.Frequency(freq)
		e.Recurring = recurring != 0
		e.TransactionDate = parseDate(txDate)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListPendingSync returns up to limit rows still waiting to be pushed.
func (r *Repository) ListPendingSync(ctx context.Context, kind string, limit int) ([]int64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE sync_state = ? ORDER BY id LIMIT ?`, table),
		SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending %s: %w", kind, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pending id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetIncome fetches a single income row by id.
func (r *Repository) GetIncome(ctx context.Context, id int64) (core.Income, error) {
	var (
		in                 core.Income
		amount, freq       string
		active             int
		startDate, endDate string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, description, source, amount, frequency, active, start_date, end_date
		FROM incomes WHERE id = ?`, id).
		Scan(&in.ID, &in.Description, &in.Source, &amount, &freq, &active, &startDate, &endDate)
	if err != nil {
		return core.Income{}, fmt.Errorf("get income %d: %w", id, err)
	}
	in.Amount = parseAmount(amount)
	in.Frequency = core.Frequency(freq)
	in.Active = active != 0
	in.StartDate = parseDate(startDate)
	in.EndDate = parseDate(endDate)
	return in, nil
}

// GetExpense fetches a single expense row by id.
func (r *Repository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, category, amount, frequency, recurring,
			transaction_date, card_id, group_id, installment_no, installment_of
		FROM expenses WHERE id = ?`, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	defer rows.Close()
	out, err := scanExpenses(rows)
	if err != nil {
		return core.Expense{}, err
	}
	if len(out) == 0 {
		return core.Expense{}, sql.ErrNoRows
	}
	return out[0], nil
}

// MarkSynced flips a row to the synced state.
func (r *Repository) MarkSynced(ctx context.Context, kind string, id int64) error {
	return r.setSyncState(ctx, kind, id, SyncDone)
}

// MarkSyncError flips a row to the error state; the periodic sweep will not
// retry it until an operator resets the state.
func (r *Repository) MarkSyncError(ctx context.Context, kind string, id int64) error {
	return r.setSyncState(ctx, kind, id, SyncError)
}

func (r *Repository) setSyncState(ctx context.Context, kind string, id int64, state string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET sync_state = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, table),
		state, id)
	if err != nil {
		return fmt.Errorf("set sync state %s/%d: %w", kind, id, err)
	}
	return nil
}

func tableFor(kind string) (string, error) {
	switch kind {
	case "income":
		return "incomes", nil
	case "expense":
		return "expenses", nil
	}
	return "", fmt.Errorf("unknown record kind: %s", kind)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
