package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"nestfin/internal/domain/transaction"
)

type TransactionRepository struct {
	mu     sync.RWMutex
	rows   map[int64]transaction.Transaction
	nextID int64
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{rows: make(map[int64]transaction.Transaction)}
}

func (r *TransactionRepository) Create(ctx context.Context, userID int64, params transaction.Params) (*transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	t := transaction.Transaction{
		ID:        r.nextID,
		UserID:    userID,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	apply(&t, params)
	r.rows[t.ID] = t
	return &t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, userID, id int64) (*transaction.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.rows[id]
	if !ok || t.UserID != userID || !t.IsActive {
		return nil, nil
	}
	return &t, nil
}

func (r *TransactionRepository) List(ctx context.Context, userID int64, filter transaction.Filter) ([]*transaction.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.match(userID, filter)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID > matched[j].ID
	})

	if filter.Limit > 0 {
		start := max(0, min(filter.Offset, len(matched)))
		end := min(start+filter.Limit, len(matched))
		matched = matched[start:end]
	}
	return matched, nil
}

func (r *TransactionRepository) Count(ctx context.Context, userID int64, filter transaction.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.match(userID, filter))), nil
}

func (r *TransactionRepository) Update(ctx context.Context, userID, id int64, params transaction.Params) (*transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.rows[id]
	if !ok || t.UserID != userID || !t.IsActive {
		return nil, transaction.ErrNotFound
	}
	apply(&t, params)
	now := time.Now().UTC()
	t.UpdatedAt = &now
	r.rows[id] = t
	return &t, nil
}

func (r *TransactionRepository) SoftDelete(ctx context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.rows[id]
	if !ok || t.UserID != userID || !t.IsActive {
		return transaction.ErrNotFound
	}
	t.IsActive = false
	now := time.Now().UTC()
	t.UpdatedAt = &now
	r.rows[id] = t
	return nil
}

// match returns copies of the caller's active rows that pass filter,
// ignoring Limit and Offset.
func (r *TransactionRepository) match(userID int64, f transaction.Filter) []*transaction.Transaction {
	var out []*transaction.Transaction
	for _, t := range r.rows {
		switch {
		case t.UserID != userID || !t.IsActive:
			continue
		case f.Type != nil && t.Type != *f.Type:
			continue
		case f.Category != nil && t.Category != *f.Category:
			continue
		case f.StartDate != nil && t.Date.Before(*f.StartDate):
			continue
		case f.EndDate != nil && !t.Date.Before(*f.EndDate):
			continue
		}
		out = append(out, &t)
	}
	return out
}

func apply(t *transaction.Transaction, p transaction.Params) {
	t.Description = p.Description
	t.Amount = p.Amount
	t.Type = p.Type
	t.Category = p.Category
	t.Date = p.Date
	t.Notes = p.Notes
	t.Location = p.Location
}
