package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"nestfin/internal/domain/personal"
	"nestfin/internal/domain/validation"
)

type PersonalRepository struct {
	mu       sync.RWMutex
	info     map[int64]personal.Info
	goals    map[int64]personal.Goal
	savings  map[int64]personal.MonthlySavings
	expenses map[int64]personal.ExtraExpense
	nextID   int64
}

func NewPersonalRepository() *PersonalRepository {
	return &PersonalRepository{
		info:     make(map[int64]personal.Info),
		goals:    make(map[int64]personal.Goal),
		savings:  make(map[int64]personal.MonthlySavings),
		expenses: make(map[int64]personal.ExtraExpense),
	}
}

func (r *PersonalRepository) GetInfo(ctx context.Context, userID int64) (*personal.Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.info[userID]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

func (r *PersonalRepository) UpsertInfo(ctx context.Context, userID int64, params personal.InfoParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.info[userID] = personal.Info{
		UserID:                  userID,
		FullName:                params.FullName,
		Email:                   params.Email,
		Phone:                   params.Phone,
		MonthlyIncome:           params.MonthlyIncome,
		MonthlyFixedExpenses:    params.MonthlyFixedExpenses,
		MonthlyVariableExpenses: params.MonthlyVariableExpenses,
		Notes:                   params.Notes,
		UpdatedAt:               time.Now().UTC(),
	}
	return nil
}

func (r *PersonalRepository) CreateGoal(ctx context.Context, userID int64, params personal.GoalParams) (*personal.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	g := personal.Goal{
		ID:           r.nextID,
		UserID:       userID,
		Name:         params.Name,
		TargetAmount: params.TargetAmount,
		CreatedAt:    time.Now().UTC(),
	}
	r.goals[g.ID] = g
	return &g, nil
}

func (r *PersonalRepository) ListGoals(ctx context.Context, userID int64) ([]*personal.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*personal.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, &g)
		}
	}
	// IDs grow with creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *PersonalRepository) ListSavings(ctx context.Context, userID int64) ([]*personal.MonthlySavings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*personal.MonthlySavings
	for _, s := range r.savings {
		if s.UserID == userID {
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (r *PersonalRepository) AddSavings(ctx context.Context, userID int64, params personal.SavingsParams) (*personal.MonthlySavings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing := r.findSavings(userID, params.Month, params.Year); existing != nil {
		total := existing.Amount.Add(params.Amount)
		if total.GreaterThan(validation.MaxAmount) {
			return nil, personal.ErrSavingsTotalTooLarge
		}
		existing.Amount = total
		existing.Date = params.Date
		existing.UpdatedAt = &now
		r.savings[existing.ID] = *existing
		return existing, nil
	}

	r.nextID++
	s := personal.MonthlySavings{
		ID:        r.nextID,
		UserID:    userID,
		Month:     params.Month,
		Year:      params.Year,
		Amount:    params.Amount,
		Date:      params.Date,
		CreatedAt: now,
	}
	r.savings[s.ID] = s
	return &s, nil
}

func (r *PersonalRepository) UpdateSavings(ctx context.Context, userID, id int64, params personal.SavingsParams) (*personal.MonthlySavings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.savings[id]
	if !ok || s.UserID != userID {
		return nil, personal.ErrSavingsNotFound
	}
	if other := r.findSavings(userID, params.Month, params.Year); other != nil && other.ID != id {
		return nil, personal.ErrSavingsMonthTaken
	}

	now := time.Now().UTC()
	s.Month, s.Year, s.Amount, s.Date, s.UpdatedAt = params.Month, params.Year, params.Amount, params.Date, &now
	r.savings[id] = s
	return &s, nil
}

func (r *PersonalRepository) DeleteSavings(ctx context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.savings[id]
	if !ok || s.UserID != userID {
		return personal.ErrSavingsNotFound
	}
	delete(r.savings, id)
	return nil
}

func (r *PersonalRepository) ListExtraExpenses(ctx context.Context, userID int64) ([]*personal.ExtraExpense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*personal.ExtraExpense
	for _, e := range r.expenses {
		if e.UserID == userID {
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *PersonalRepository) CreateExtraExpense(ctx context.Context, userID int64, params personal.ExtraExpenseParams) (*personal.ExtraExpense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	e := personal.ExtraExpense{
		ID:          r.nextID,
		UserID:      userID,
		Description: params.Description,
		Amount:      params.Amount,
		Date:        params.Date,
		Month:       params.Month,
		Year:        params.Year,
		CreatedAt:   time.Now().UTC(),
	}
	r.expenses[e.ID] = e
	return &e, nil
}

func (r *PersonalRepository) UpdateExtraExpense(ctx context.Context, userID, id int64, params personal.ExtraExpenseParams) (*personal.ExtraExpense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.expenses[id]
	if !ok || e.UserID != userID {
		return nil, personal.ErrExpenseNotFound
	}

	now := time.Now().UTC()
	e.Description, e.Amount, e.Date, e.Month, e.Year, e.UpdatedAt = params.Description, params.Amount, params.Date, params.Month, params.Year, &now
	r.expenses[id] = e
	return &e, nil
}

func (r *PersonalRepository) DeleteExtraExpense(ctx context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.expenses[id]
	if !ok || e.UserID != userID {
		return personal.ErrExpenseNotFound
	}
	delete(r.expenses, id)
	return nil
}

// findSavings must be called with r.mu held.
func (r *PersonalRepository) findSavings(userID int64, month, year int) *personal.MonthlySavings {
	for _, s := range r.savings {
		if s.UserID == userID && s.Month == month && s.Year == year {
			return &s
		}
	}
	return nil
}
