package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"nestfin/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, description, amount, type, category, date, notes, location,
	is_active, created_at, updated_at`

func (r *TransactionRepository) Create(ctx context.Context, userID int64, params transaction.Params) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, description, amount, type, category, date, notes, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + transactionColumns

	t, err := scanTransaction(r.db.QueryRowContext(
		ctx, query,
		userID, params.Description, params.Amount, int(params.Type), int(params.Category),
		params.Date, params.Notes, params.Location,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, userID, id int64) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND user_id = $2 AND is_active`

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepository) List(ctx context.Context, userID int64, filter transaction.Filter) ([]*transaction.Transaction, error) {
	where, args := filterClause(userID, filter)
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + where +
		` ORDER BY date DESC, id DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

func (r *TransactionRepository) Count(ctx context.Context, userID int64, filter transaction.Filter) (int64, error) {
	where, args := filterClause(userID, filter)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

func (r *TransactionRepository) Update(ctx context.Context, userID, id int64, params transaction.Params) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET description = $3, amount = $4, type = $5, category = $6, date = $7,
		    notes = $8, location = $9, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active
		RETURNING ` + transactionColumns

	t, err := scanTransaction(r.db.QueryRowContext(
		ctx, query,
		id, userID, params.Description, params.Amount, int(params.Type), int(params.Category),
		params.Date, params.Notes, params.Location,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepository) SoftDelete(ctx context.Context, userID, id int64) error {
	query := `
		UPDATE transactions
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return expectOneRow(result, transaction.ErrNotFound)
}

// filterClause builds the WHERE clause shared by List and Count.
func filterClause(userID int64, f transaction.Filter) (string, []any) {
	conds := []string{"user_id = $1", "is_active"}
	args := []any{userID}

	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != nil {
		add("type = $%d", int(*f.Type))
	}
	if f.Category != nil {
		add("category = $%d", int(*f.Category))
	}
	if f.StartDate != nil {
		add("date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("date < $%d", *f.EndDate)
	}
	return strings.Join(conds, " AND "), args
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var typ, category int
	var notes, location sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&t.ID, &t.UserID, &t.Description, &t.Amount, &typ, &category, &t.Date,
		&notes, &location, &t.IsActive, &t.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Type = transaction.Type(typ)
	t.Category = transaction.Category(category)
	if notes.Valid {
		t.Notes = &notes.String
	}
	if location.Valid {
		t.Location = &location.String
	}
	if updatedAt.Valid {
		t.UpdatedAt = &updatedAt.Time
	}
	return &t, nil
}

// expectOneRow maps a zero-row write to notFound.
func expectOneRow(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
