package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// Create returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	// GetByID and GetByEmail return nil, nil when no user matches.
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
