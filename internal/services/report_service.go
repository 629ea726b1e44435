package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/store"
)

// ReportService derives dashboard figures from the stored rows. All the math
// lives in core; this layer only fetches and shapes.
type ReportService struct {
	incomes  store.IncomeStore
	expenses store.ExpenseStore
	log      *log.Logger
}

func NewReportService(incomes store.IncomeStore, expenses store.ExpenseStore, logger *log.Logger) *ReportService {
	return &ReportService{
		incomes:  incomes,
		expenses: expenses,
		log:      logger.WithComponent(log.ComponentReport),
	}
}

// MonthOverview returns the accrued point for a single month (1-based).
func (s *ReportService) MonthOverview(ctx context.Context, year, month int) (core.PeriodPoint, error) {
	if month < 1 || month > 12 {
		return core.PeriodPoint{}, ErrInvalidMonth
	}
	at := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	points, err := s.series(ctx, []string{core.MonthKey(at)})
	if err != nil {
		return core.PeriodPoint{}, err
	}
	return points[0], nil
}

// Series returns the accrual series for the closed month range [from, to],
// both "YYYY-MM" keys, in chronological order.
func (s *ReportService) Series(ctx context.Context, from, to string) ([]core.PeriodPoint, error) {
	start, err := core.ParseMonthKey(from)
	if err != nil {
		return nil, err
	}
	end, err := core.ParseMonthKey(to)
	if err != nil {
		return nil, err
	}
	periods := core.MonthKeys(start, end)
	if periods == nil {
		return nil, fmt.Errorf("empty period range %s..%s", from, to)
	}
	return s.series(ctx, periods)
}

func (s *ReportService) series(ctx context.Context, periods []string) ([]core.PeriodPoint, error) {
	incomes, err := s.incomes.ListIncomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load incomes: %w", err)
	}
	expenses, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	points := core.AccruedSeries(incomes, expenses, periods)
	s.log.DebugContext(ctx, "Series computed",
		log.FieldCount, len(points),
		"incomes", len(incomes),
		"expenses", len(expenses))
	return points, nil
}
