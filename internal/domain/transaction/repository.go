package transaction

import "context"

// Repository defines the interface for transaction data access. Every
// method is scoped to one owner and ignores soft-deleted rows.
type Repository interface {
	Create(ctx context.Context, userID int64, params Params) (*Transaction, error)
	// GetByID returns nil, nil when no active row is owned by userID.
	GetByID(ctx context.Context, userID, id int64) (*Transaction, error)
	// List orders by date descending, then id descending.
	List(ctx context.Context, userID int64, filter Filter) ([]*Transaction, error)
	Count(ctx context.Context, userID int64, filter Filter) (int64, error)
	// Update overwrites every field and stamps updated_at. Returns ErrNotFound
	// when no active row is owned by userID.
	Update(ctx context.Context, userID, id int64, params Params) (*Transaction, error)
	// SoftDelete clears is_active and stamps updated_at. Returns ErrNotFound
	// when no active row is owned by userID.
	SoftDelete(ctx context.Context, userID, id int64) error
}
