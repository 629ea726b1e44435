// Package services orchestrates the domain operations over the row stores,
// the sync queue and the email sender.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/store"
)

// SyncPublisher enqueues a sync request for a locally saved row. A nil
// publisher is tolerated: rows stay local until the periodic sweep.
type SyncPublisher interface {
	PublishRecordSync(ctx context.Context, kind string, id int64) error
}

var (
	ErrInvalidPaydayRule = errors.New("invalid payday rule")
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
)

// SalaryOnboarding is the form payload for registering a salaried income with
// a payday rule. Month is 1-based as entered by the user.
type SalaryOnboarding struct {
	Description string
	Source      string
	Amount      decimal.Decimal
	Rule        core.PaydayRule
	Year        int
	Month       int
}

func (o SalaryOnboarding) validate() error {
	if o.Amount.Sign() <= 0 {
		return core.ErrInvalidAmount
	}
	if !o.Rule.Valid() {
		return ErrInvalidPaydayRule
	}
	if o.Month < 1 || o.Month > 12 {
		return ErrInvalidMonth
	}
	if o.Description == "" {
		return core.ErrEmptyDescription
	}
	return nil
}

type IncomeService struct {
	store store.IncomeStore
	queue SyncPublisher
	log   *log.Logger
}

func NewIncomeService(s store.IncomeStore, queue SyncPublisher, logger *log.Logger) *IncomeService {
	return &IncomeService{store: s, queue: queue, log: logger.WithComponent(log.ComponentIncome)}
}

// Create validates and persists a single income row, then enqueues a sync.
func (s *IncomeService) Create(ctx context.Context, in core.Income) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	id, err := s.store.AddIncome(ctx, in)
	if err != nil {
		return 0, fmt.Errorf("save income: %w", err)
	}
	s.publish(ctx, id)
	return id, nil
}

// OnboardSalary resolves the payday for the given year/month and materializes
// the monthly salary row anchored on that date. In June and December a second
// one-time row worth 50% of the base is created for the seasonal bonus (SAC).
func (s *IncomeService) OnboardSalary(ctx context.Context, o SalaryOnboarding) ([]core.Income, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	payday := core.ResolvePayday(o.Year, o.Month-1, o.Rule)

	base := core.Income{
		Description: o.Description,
		Source:      o.Source,
		Amount:      o.Amount,
		Frequency:   core.Monthly,
		Active:      true,
		StartDate:   payday,
	}
	created := []core.Income{base}

	if core.IsBonusMonth(payday.Month()) {
		created = append(created, core.Income{
			Description: o.Description + " (SAC bonus)",
			Source:      o.Source,
			Amount:      core.SeasonalBonus(o.Amount),
			Frequency:   core.Once,
			Active:      true,
			StartDate:   payday,
		})
	}

	for i := range created {
		id, err := s.store.AddIncome(ctx, created[i])
		if err != nil {
			return nil, fmt.Errorf("save salary row %d: %w", i, err)
		}
		created[i].ID = id
		s.publish(ctx, id)
	}

	s.log.InfoContext(ctx, "Salary onboarded",
		log.FieldAmount, o.Amount.String(),
		"payday", payday.Format("2006-01-02"),
		"rows", len(created))
	return created, nil
}

// List returns every income row.
func (s *IncomeService) List(ctx context.Context) ([]core.Income, error) {
	return s.store.ListIncomes(ctx)
}

// Delete removes an income row. No sync message: remote deletions are an
// operator concern for now.
func (s *IncomeService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteIncome(ctx, id); err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	return nil
}

func (s *IncomeService) publish(ctx context.Context, id int64) {
	if s.queue == nil {
		s.log.WarnContext(ctx, "Sync queue not available, row stays local", log.FieldRecordID, id)
		return
	}
	if err := s.queue.PublishRecordSync(ctx, amqp.KindIncome, id); err != nil {
		// Row is saved locally; the periodic sweep will pick it up.
		s.log.ErrorContext(ctx, "Failed to publish sync message",
			log.FieldRecordID, id, log.FieldError, err.Error())
	}
}
