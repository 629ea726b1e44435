// Package memory is the in-process store used by tests and the default dev
// backend. It mirrors the SQLite repository's behavior without persistence.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"fintrack/internal/core"
)

var ErrNotFound = errors.New("row not found")

type Store struct {
	mu       sync.Mutex
	nextID   int64
	incomes  []core.Income
	expenses []core.Expense
}

func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) AddIncome(_ context.Context, in core.Income) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.nextID
	s.nextID++
	s.incomes = append(s.incomes, in)
	return in.ID, nil
}

func (s *Store) ListIncomes(_ context.Context) ([]core.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Income(nil), s.incomes...), nil
}

func (s *Store) DeleteIncome(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, in := range s.incomes {
		if in.ID == id {
			s.incomes = append(s.incomes[:i], s.incomes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	ids, err := s.AddExpenses(ctx, []core.Expense{e})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

func (s *Store) AddExpenses(_ context.Context, es []core.Expense) ([]int64, error) {
	for _, e := range es {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, len(es))
	for i, e := range es {
		e.ID = s.nextID
		s.nextID++
		s.expenses = append(s.expenses, e)
		ids[i] = e.ID
	}
	return ids, nil
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...), nil
}

func (s *Store) DeleteExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteGroup(_ context.Context, groupID string) (int, error) {
	if groupID == "" {
		return 0, errors.New("empty group id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.expenses[:0]
	removed := 0
	for _, e := range s.expenses {
		if e.GroupID == groupID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.expenses = kept
	return removed, nil
}

func (s *Store) ListInstallmentsDueBetween(_ context.Context, from, to time.Time) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.expenses {
		if e.InstallmentOf == 0 {
			continue
		}
		if e.TransactionDate.Before(from) || e.TransactionDate.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
