package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/store"
)

var (
	ErrInvalidTotal            = errors.New("installment total must be positive")
	ErrInvalidInstallmentCount = errors.New("installment count must be at least 1")
)

// InstallmentPlan is the form payload for a financed purchase split into
// monthly installments.
type InstallmentPlan struct {
	Description string
	Category    string
	CardID      string
	Total       decimal.Decimal
	Count       int
	FirstDue    time.Time
}

func (p InstallmentPlan) validate() error {
	if p.Total.Sign() <= 0 {
		return ErrInvalidTotal
	}
	if p.Count < 1 {
		return ErrInvalidInstallmentCount
	}
	if p.Description == "" {
		return core.ErrEmptyDescription
	}
	if p.FirstDue.IsZero() {
		return core.ErrInvalidDate
	}
	return nil
}

type ExpenseService struct {
	store store.ExpenseStore
	queue SyncPublisher
	log   *log.Logger
}

func NewExpenseService(s store.ExpenseStore, queue SyncPublisher, logger *log.Logger) *ExpenseService {
	return &ExpenseService{store: s, queue: queue, log: logger.WithComponent(log.ComponentExpense)}
}

// Create validates and persists one expense row, then enqueues a sync.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	id, err := s.store.AddExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}
	s.publish(ctx, id)
	return id, nil
}

// CreateInstallmentPlan splits a financed total into dated expense rows that
// share a generated group id and carry their i/n sequence. The batch insert
// is atomic: either the whole plan lands or none of it.
func (s *ExpenseService) CreateInstallmentPlan(ctx context.Context, p InstallmentPlan) ([]core.Expense, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	lines := core.SplitInstallments(p.Total, p.Count, p.FirstDue)
	groupID := uuid.NewString()

	rows := make([]core.Expense, len(lines))
	for i, l := range lines {
		rows[i] = core.Expense{
			Description:     fmt.Sprintf("%s (%d/%d)", p.Description, l.Index, p.Count),
			Category:        p.Category,
			Amount:          l.Amount,
			Frequency:       core.Once,
			Recurring:       false,
			TransactionDate: l.DueDate,
			CardID:          p.CardID,
			GroupID:         groupID,
			InstallmentNo:   l.Index,
			InstallmentOf:   p.Count,
		}
	}

	ids, err := s.store.AddExpenses(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("save installment plan: %w", err)
	}
	for i, id := range ids {
		rows[i].ID = id
		s.publish(ctx, id)
	}

	s.log.InfoContext(ctx, "Installment plan created",
		log.FieldGroupID, groupID,
		log.FieldCount, p.Count,
		log.FieldAmount, p.Total.String())
	return rows, nil
}

// List returns every expense row.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx)
}

// Delete removes a single expense row.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// DeleteGroup removes every row of an installment group and reports how many
// went away.
func (s *ExpenseService) DeleteGroup(ctx context.Context, groupID string) (int, error) {
	n, err := s.store.DeleteGroup(ctx, groupID)
	if err != nil {
		return 0, fmt.Errorf("delete installment group: %w", err)
	}
	s.log.InfoContext(ctx, "Installment group deleted", log.FieldGroupID, groupID, log.FieldCount, n)
	return n, nil
}

func (s *ExpenseService) publish(ctx context.Context, id int64) {
	if s.queue == nil {
		s.log.WarnContext(ctx, "Sync queue not available, row stays local", log.FieldRecordID, id)
		return
	}
	if err := s.queue.PublishRecordSync(ctx, amqp.KindExpense, id); err != nil {
		s.log.ErrorContext(ctx, "Failed to publish sync message",
			log.FieldRecordID, id, log.FieldError, err.Error())
	}
}
