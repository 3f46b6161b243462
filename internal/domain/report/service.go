package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/transaction"
	"nestfin/internal/domain/validation"
)

// Service computes reports from a user's active transactions.
type Service struct {
	repo transaction.Repository
	now  func() time.Time
}

func NewService(repo transaction.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Financial returns the report for the trailing months window.
func (s *Service) Financial(ctx context.Context, userID int64, months int) (*FinancialReport, error) {
	if err := checkRange("months", months, 1, MaxMonths); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	since := addMonths(now, -months)
	txs, err := s.repo.List(ctx, userID, transaction.Filter{StartDate: &since})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return BuildFinancialReport(txs, months, now), nil
}

// Spending analyzes the expenses of the trailing days window.
func (s *Service) Spending(ctx context.Context, userID int64, days int) (*SpendingAnalysis, error) {
	if err := checkRange("days", days, 1, MaxDays); err != nil {
		return nil, err
	}

	since := s.now().UTC().AddDate(0, 0, -days)
	expense := transaction.TypeExpense
	txs, err := s.repo.List(ctx, userID, transaction.Filter{Type: &expense, StartDate: &since})
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	return BuildSpendingAnalysis(txs, days), nil
}

// NetWorth returns lifetime income minus lifetime expense.
func (s *Service) NetWorth(ctx context.Context, userID int64) (decimal.Decimal, error) {
	txs, err := s.repo.List(ctx, userID, transaction.Filter{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load transactions: %w", err)
	}
	return NetWorth(txs), nil
}

// ProjectedExpenses projects spending over the next months from the mean
// monthly expense of the last six months.
func (s *Service) ProjectedExpenses(ctx context.Context, userID int64, months int) (decimal.Decimal, error) {
	if err := checkRange("months", months, 1, MaxMonths); err != nil {
		return decimal.Zero, err
	}

	since := addMonths(s.now().UTC(), -projectionHistoryMonths)
	expense := transaction.TypeExpense
	txs, err := s.repo.List(ctx, userID, transaction.Filter{Type: &expense, StartDate: &since})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load expenses: %w", err)
	}
	return ProjectExpenses(txs, months), nil
}

func checkRange(field string, v, min, max int) error {
	if v < min || v > max {
		return validation.NewError(field, fmt.Sprintf("%s must be between %d and %d", field, min, max))
	}
	return nil
}
