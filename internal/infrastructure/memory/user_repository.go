// Package memory holds process-local implementations of the domain
// repositories. Data is lost when the process exits.
package memory

import (
	"context"
	"sync"
	"time"

	"nestfin/internal/domain/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	users  map[int64]user.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]user.User)}
}

func (r *UserRepository) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == params.Email {
			return nil, user.ErrEmailTaken
		}
	}

	r.nextID++
	u := user.User{
		ID:           r.nextID,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	r.users[u.ID] = u
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}
