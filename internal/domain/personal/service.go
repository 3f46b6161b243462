package personal

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInfoNotFound      = errors.New("personal info not found")
	ErrSavingsNotFound   = errors.New("monthly savings not found")
	ErrSavingsMonthTaken = errors.New("monthly savings for that month already exist")
	ErrExpenseNotFound   = errors.New("extra expense not found")
)

// Service contains the business logic for a user's profile, goals and
// savings ledgers.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) GetInfo(ctx context.Context, userID int64) (*Info, error) {
	info, err := s.repo.GetInfo(ctx, userID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, ErrInfoNotFound
	}
	return info, nil
}

// SaveInfo replaces the user's profile, creating it on first use.
func (s *Service) SaveInfo(ctx context.Context, userID int64, params InfoParams) error {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return err
	}
	return s.repo.UpsertInfo(ctx, userID, params)
}

func (s *Service) CreateGoal(ctx context.Context, userID int64, params GoalParams) (*Goal, error) {
	params.TargetAmount = params.TargetAmount.Round(2)
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreateGoal(ctx, userID, params)
}

func (s *Service) ListGoals(ctx context.Context, userID int64) ([]*Goal, error) {
	goals, err := s.repo.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []*Goal{}
	}
	return goals, nil
}

func (s *Service) ListSavings(ctx context.Context, userID int64) ([]*MonthlySavings, error) {
	out, err := s.repo.ListSavings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*MonthlySavings{}
	}
	return out, nil
}

// AddSavings records money saved in a month. A second entry for the same
// month is merged into the first.
func (s *Service) AddSavings(ctx context.Context, userID int64, params SavingsParams) (*MonthlySavings, error) {
	if err := s.prepareSavings(&params); err != nil {
		return nil, err
	}
	return s.repo.AddSavings(ctx, userID, params)
}

func (s *Service) UpdateSavings(ctx context.Context, userID, id int64, params SavingsParams) (*MonthlySavings, error) {
	if err := s.prepareSavings(&params); err != nil {
		return nil, err
	}
	return s.repo.UpdateSavings(ctx, userID, id, params)
}

func (s *Service) DeleteSavings(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteSavings(ctx, userID, id)
}

func (s *Service) ListExtraExpenses(ctx context.Context, userID int64) ([]*ExtraExpense, error) {
	out, err := s.repo.ListExtraExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*ExtraExpense{}
	}
	return out, nil
}

func (s *Service) AddExtraExpense(ctx context.Context, userID int64, params ExtraExpenseParams) (*ExtraExpense, error) {
	if err := s.prepareExpense(&params); err != nil {
		return nil, err
	}
	return s.repo.CreateExtraExpense(ctx, userID, params)
}

func (s *Service) UpdateExtraExpense(ctx context.Context, userID, id int64, params ExtraExpenseParams) (*ExtraExpense, error) {
	if err := s.prepareExpense(&params); err != nil {
		return nil, err
	}
	return s.repo.UpdateExtraExpense(ctx, userID, id, params)
}

func (s *Service) DeleteExtraExpense(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteExtraExpense(ctx, userID, id)
}

func (s *Service) prepareSavings(p *SavingsParams) error {
	if p.Date.IsZero() {
		p.Date = s.now().UTC()
	}
	p.Amount = p.Amount.Round(2)
	return p.Validate()
}

// prepareExpense fills the date with now and month/year from the date.
func (s *Service) prepareExpense(p *ExtraExpenseParams) error {
	if p.Date.IsZero() {
		p.Date = s.now().UTC()
	}
	if p.Month == 0 {
		p.Month = int(p.Date.Month())
	}
	if p.Year == 0 {
		p.Year = p.Date.Year()
	}
	p.Amount = p.Amount.Round(2)
	return p.Validate()
}
