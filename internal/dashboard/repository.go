package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"nestfin/internal/domain/personal"
	"nestfin/internal/domain/transaction"
	"nestfin/internal/localstore"
	"nestfin/internal/shared/logger"
)

// User is the signed-in account, including its bearer token.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Snapshot is one user's working set.
type Snapshot struct {
	PersonalInfo   *personal.Info
	Goal           *personal.Goal
	Transactions   []*transaction.Transaction
	MonthlySavings []*personal.MonthlySavings
	ExtraExpenses  []*personal.ExtraExpense
}

// Repository is the persistence boundary of the Store. Load never fails:
// missing or unreadable entries come back as empty defaults.
type Repository interface {
	Load(ctx context.Context, email string) Snapshot
	Save(ctx context.Context, email string, snap Snapshot) error
	LoadUser(ctx context.Context) (*User, bool)
	SaveUser(ctx context.Context, u *User) error
	Clear(ctx context.Context) error
}

// LocalRepository keeps each part of a snapshot as a JSON entry under a
// per-user key.
type LocalRepository struct {
	store localstore.Storage
	log   *slog.Logger
}

func NewLocalRepository(store localstore.Storage) *LocalRepository {
	return &LocalRepository{store: store, log: logger.WithComponent("dashboard")}
}

func (r *LocalRepository) Load(ctx context.Context, email string) Snapshot {
	return Snapshot{
		PersonalInfo:   read[*personal.Info](ctx, r, localstore.UserKey(email, localstore.DataPersonalInfo)),
		Goal:           read[*personal.Goal](ctx, r, localstore.UserKey(email, localstore.DataGoal)),
		Transactions:   read[[]*transaction.Transaction](ctx, r, localstore.UserKey(email, localstore.DataTransactions)),
		MonthlySavings: read[[]*personal.MonthlySavings](ctx, r, localstore.UserKey(email, localstore.DataMonthlySavings)),
		ExtraExpenses:  read[[]*personal.ExtraExpense](ctx, r, localstore.UserKey(email, localstore.DataExtraExpenses)),
	}
}

func (r *LocalRepository) Save(ctx context.Context, email string, snap Snapshot) error {
	entries := []struct {
		typ   localstore.DataType
		value any
	}{
		{localstore.DataPersonalInfo, snap.PersonalInfo},
		{localstore.DataGoal, snap.Goal},
		{localstore.DataTransactions, snap.Transactions},
		{localstore.DataMonthlySavings, snap.MonthlySavings},
		{localstore.DataExtraExpenses, snap.ExtraExpenses},
	}
	for _, e := range entries {
		if err := r.write(ctx, localstore.UserKey(email, e.typ), e.value); err != nil {
			return err
		}
	}
	return nil
}

func (r *LocalRepository) LoadUser(ctx context.Context) (*User, bool) {
	u := read[*User](ctx, r, localstore.CurrentUserKey)
	if u == nil || u.Email == "" {
		return nil, false
	}
	return u, true
}

func (r *LocalRepository) SaveUser(ctx context.Context, u *User) error {
	return r.write(ctx, localstore.CurrentUserKey, u)
}

// Clear forgets the signed-in user. Cached data of past users is kept.
func (r *LocalRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, localstore.CurrentUserKey); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}

// read decodes the entry at key, returning the zero value when it is missing
// or malformed.
func read[T any](ctx context.Context, r *LocalRepository, key string) T {
	var zero T
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		r.log.WarnContext(ctx, "Failed to read cache entry", "key", key, logger.FieldError, err)
		return zero
	}
	if !ok {
		return zero
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		r.log.WarnContext(ctx, "Discarding malformed cache entry", "key", key, logger.FieldError, err)
		return zero
	}
	return v
}

func (r *LocalRepository) write(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
