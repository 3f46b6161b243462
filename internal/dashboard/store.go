// Package dashboard holds one signed-in user's working set on the client.
// The server is the system of record; the local repository is only a cache.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"nestfin/internal/client"
	"nestfin/internal/domain/personal"
	"nestfin/internal/domain/transaction"
	"nestfin/internal/shared/logger"
)

var ErrNotSignedIn = errors.New("not signed in")

// API is the part of the REST client the Store uses. *client.Client implements it.
type API interface {
	SetToken(token string)
	Register(ctx context.Context, name, email, password string) (*client.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*client.AuthResponse, error)

	AllTransactions(ctx context.Context) ([]*transaction.Transaction, error)
	CreateTransaction(ctx context.Context, in client.TransactionInput) (*transaction.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, in client.TransactionInput) (*transaction.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	GetPersonalInfo(ctx context.Context) (*personal.Info, error)
	SavePersonalInfo(ctx context.Context, in client.InfoInput) error
	CreateGoal(ctx context.Context, in client.GoalInput) (*personal.Goal, error)
	ListGoals(ctx context.Context) ([]*personal.Goal, error)

	ListSavings(ctx context.Context) ([]*personal.MonthlySavings, error)
	AddSavings(ctx context.Context, in client.SavingsInput) (*personal.MonthlySavings, error)
	UpdateSavings(ctx context.Context, id int64, in client.SavingsInput) (*personal.MonthlySavings, error)
	DeleteSavings(ctx context.Context, id int64) error

	ListExtraExpenses(ctx context.Context) ([]*personal.ExtraExpense, error)
	AddExtraExpense(ctx context.Context, in client.ExtraExpenseInput) (*personal.ExtraExpense, error)
	UpdateExtraExpense(ctx context.Context, id int64, in client.ExtraExpenseInput) (*personal.ExtraExpense, error)
	DeleteExtraExpense(ctx context.Context, id int64) error
}

// Store is the client-side state container. Every mutation goes to the
// server first; memory and the cache change only after it succeeds.
type Store struct {
	api  API
	repo Repository
	log  *slog.Logger

	mu   sync.RWMutex
	user *User
	snap Snapshot
}

func NewStore(api API, repo Repository) *Store {
	return &Store{api: api, repo: repo, log: logger.WithComponent("dashboard")}
}

func (s *Store) Register(ctx context.Context, name, email, password string) error {
	resp, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return s.signIn(ctx, resp)
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.signIn(ctx, resp)
}

func (s *Store) signIn(ctx context.Context, resp *client.AuthResponse) error {
	u := &User{ID: resp.UserID, Name: resp.Name, Email: resp.Email, Token: resp.Token}
	s.api.SetToken(u.Token)

	s.mu.Lock()
	s.user = u
	s.snap = s.repo.Load(ctx, u.Email)
	s.mu.Unlock()

	if err := s.repo.SaveUser(ctx, u); err != nil {
		s.log.WarnContext(ctx, "Failed to cache signed-in user", logger.FieldError, err)
	}
	return s.Refresh(ctx)
}

// Logout drops the in-memory state and the cached session.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.snap = Snapshot{}
	s.mu.Unlock()

	s.api.SetToken("")
	return s.repo.Clear(ctx)
}

// Restore resumes the cached session without contacting the server. It
// reports false when no user is cached.
func (s *Store) Restore(ctx context.Context) bool {
	u, ok := s.repo.LoadUser(ctx)
	if !ok {
		return false
	}
	s.api.SetToken(u.Token)

	s.mu.Lock()
	s.user = u
	s.snap = s.repo.Load(ctx, u.Email)
	s.mu.Unlock()
	return true
}

// Refresh replaces the working set with the server's copy. The parts are
// fetched concurrently; any failure leaves the current state in place.
func (s *Store) Refresh(ctx context.Context) error {
	if _, err := s.currentUser(); err != nil {
		return err
	}

	var (
		snap  Snapshot
		goals []*personal.Goal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if snap.PersonalInfo, err = s.api.GetPersonalInfo(gctx); err != nil {
			return fmt.Errorf("fetch personal info: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if goals, err = s.api.ListGoals(gctx); err != nil {
			return fmt.Errorf("fetch goals: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if snap.Transactions, err = s.api.AllTransactions(gctx); err != nil {
			return fmt.Errorf("fetch transactions: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if snap.MonthlySavings, err = s.api.ListSavings(gctx); err != nil {
			return fmt.Errorf("fetch savings: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if snap.ExtraExpenses, err = s.api.ListExtraExpenses(gctx); err != nil {
			return fmt.Errorf("fetch extra expenses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	// Goals are listed newest first; the newest is the active one.
	if len(goals) > 0 {
		snap.Goal = goals[0]
	}

	return s.apply(ctx, func(cur *Snapshot) { *cur = snap })
}

func (s *Store) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Snapshot returns a copy of the working set. The slices are fresh; the
// records they point to are shared and must not be modified.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		PersonalInfo:   s.snap.PersonalInfo,
		Goal:           s.snap.Goal,
		Transactions:   slices.Clone(s.snap.Transactions),
		MonthlySavings: slices.Clone(s.snap.MonthlySavings),
		ExtraExpenses:  slices.Clone(s.snap.ExtraExpenses),
	}
}

func (s *Store) UpdatePersonalInfo(ctx context.Context, in client.InfoInput) error {
	if _, err := s.currentUser(); err != nil {
		return err
	}
	if err := s.api.SavePersonalInfo(ctx, in); err != nil {
		return err
	}
	info, err := s.api.GetPersonalInfo(ctx)
	if err != nil {
		return err
	}
	return s.apply(ctx, func(snap *Snapshot) { snap.PersonalInfo = info })
}

// SetGoal creates a goal on the server and makes it the active one.
func (s *Store) SetGoal(ctx context.Context, in client.GoalInput) (*personal.Goal, error) {
	if _, err := s.currentUser(); err != nil {
		return nil, err
	}
	goal, err := s.api.CreateGoal(ctx, in)
	if err != nil {
		return nil, err
	}
	return goal, s.apply(ctx, func(snap *Snapshot) { snap.Goal = goal })
}

func (s *Store) AddTransaction(ctx context.Context, in client.TransactionInput) (*transaction.Transaction, error) {
	if _, err := s.currentUser(); err != nil {
		return nil, err
	}
	tx, err := s.api.CreateTransaction(ctx, in)
	if err != nil {
		return nil, err
	}
	return tx, s.apply(ctx, func(snap *Snapshot) {
		snap.Transactions = upsert(snap.Transactions, tx, func(t *transaction.Transaction) int64 { return t.ID })
		sortTransactions(snap.Transactions)
	})
}

func (s *Store) UpdateTransaction(ctx context.Context, id int64, in client.TransactionInput) (*transaction.Transaction, error) {
	if _, err := s.currentUser(); err != nil {
		return nil, err
	}
	tx, err := s.api.UpdateTransaction(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return tx, s.apply(ctx, func(snap *Snapshot) {
		snap.Transactions = upsert(snap.Transactions, tx, func(t *transaction.Transaction) int64 { return t.ID })
		sortTransactions(snap.Transactions)
	})
}

func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := s.currentUser(); err != nil {
		return err
	}
	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	return s.apply(ctx, func(snap *Snapshot) {
		snap.Transactions = remove(snap.Transactions, id, func(t *transaction.Transaction) int64 { return t.ID })
	})
}

// AddMonthlySavings records savings for a month. The server merges repeated
// entries for the same month into one.
func (s *Store) AddMonthlySavings(ctx context.Context, in client.SavingsInput) (*personal.MonthlySavings, error) {
	if _, err := s.currentUser(); err != nil {
		return nil, err
	}
	saved, err := s.api.AddSavings(ctx, in)
	if err != nil {
		return nil, err
	}
	return saved, s.apply(ctx, func(snap *Snapshot) {
		snap.MonthlySavings = upsert(snap.MonthlySavings, saved, savingsID)
	})
}

func (s *Store) UpdateMonthlySavings(ctx context.Context, id int64, in client.SavingsInput) (*personal.MonthlySavings, error) {
	if _, err := s.currentUser(); err != nil {
		return nil, err
	}
	saved, err := s.api.UpdateSavings(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return saved, s.apply(ctx, func(snap *Snapshot) {
		snap.MonthlySavings = upsert(snap.MonthlySavings, saved, savingsID)
	})
}

func (s *Store) DeleteMonthlySavings(ctx context.Context, id int64) error {
	if _, err := s.currentUser(); err != nil {
		return err
	}
	if err := s.api.DeleteSavings(ctx, id); err != nil {
		return err
	}
	return s.apply(ctx, func(snap *Snapshot) {
		snap.MonthlySavings = remove(snap.MonthlySavings, id, savingsID)
	})
}

func (s *Store) AddExtraExpense(ctx context.Context, in client.ExtraExpenseInput) (*personal.ExtraExpense, error) {
	if _, err := s.currentUser(); err != nil {
		return nil, err
	}
	e, err := s.api.AddExtraExpense(ctx, in)
	if err != nil {
		return nil, err
	}
	return e, s.apply(ctx, func(snap *Snapshot) {
		snap.ExtraExpenses = upsert(snap.ExtraExpenses, e, expenseID)
	})
}

func (s *Store) UpdateExtraExpense(ctx context.Context, id int64, in client.ExtraExpenseInput) (*personal.ExtraExpense, error) {
	if _, err := s.currentUser(); err != nil {
		return nil, err
	}
	e, err := s.api.UpdateExtraExpense(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return e, s.apply(ctx, func(snap *Snapshot) {
		snap.ExtraExpenses = upsert(snap.ExtraExpenses, e, expenseID)
	})
}

func (s *Store) DeleteExtraExpense(ctx context.Context, id int64) error {
	if _, err := s.currentUser(); err != nil {
		return err
	}
	if err := s.api.DeleteExtraExpense(ctx, id); err != nil {
		return err
	}
	return s.apply(ctx, func(snap *Snapshot) {
		snap.ExtraExpenses = remove(snap.ExtraExpenses, id, expenseID)
	})
}

func (s *Store) currentUser() (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, ErrNotSignedIn
	}
	return s.user, nil
}

// apply updates memory and persists the full snapshot. A cache write failure
// is logged; the server already holds the change.
func (s *Store) apply(ctx context.Context, fn func(*Snapshot)) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotSignedIn
	}
	fn(&s.snap)
	email, snap := s.user.Email, s.snap
	s.mu.Unlock()

	if err := s.repo.Save(ctx, email, snap); err != nil {
		s.log.WarnContext(ctx, "Failed to cache snapshot", logger.FieldError, err)
	}
	return nil
}

func savingsID(m *personal.MonthlySavings) int64 { return m.ID }
func expenseID(e *personal.ExtraExpense) int64   { return e.ID }

// upsert replaces the item with the same id, or appends it. The result is a
// new slice.
func upsert[T any](items []T, item T, id func(T) int64) []T {
	out := slices.Clone(items)
	for i := range out {
		if id(out[i]) == id(item) {
			out[i] = item
			return out
		}
	}
	return append(out, item)
}

func remove[T any](items []T, target int64, id func(T) int64) []T {
	return slices.DeleteFunc(slices.Clone(items), func(v T) bool { return id(v) == target })
}

// sortTransactions orders newest first, as the server lists them.
func sortTransactions(txs []*transaction.Transaction) {
	slices.SortStableFunc(txs, func(a, b *transaction.Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
}
