package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/personal"
)

type PersonalRepository struct {
	db *DB
}

func NewPersonalRepository(db *DB) *PersonalRepository {
	return &PersonalRepository{db: db}
}

func (r *PersonalRepository) GetInfo(ctx context.Context, userID int64) (*personal.Info, error) {
	query := `
		SELECT user_id, full_name, email, phone, monthly_income, monthly_fixed_expenses,
		       monthly_variable_expenses, notes, updated_at
		FROM personal_info
		WHERE user_id = $1
	`

	var info personal.Info
	var fullName, email, phone, notes sql.NullString
	var income, fixed, variable decimal.NullDecimal

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&info.UserID, &fullName, &email, &phone, &income, &fixed, &variable, &notes, &info.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get personal info: %w", err)
	}

	info.FullName = nullString(fullName)
	info.Email = nullString(email)
	info.Phone = nullString(phone)
	info.Notes = nullString(notes)
	info.MonthlyIncome = nullDecimal(income)
	info.MonthlyFixedExpenses = nullDecimal(fixed)
	info.MonthlyVariableExpenses = nullDecimal(variable)
	return &info, nil
}

func (r *PersonalRepository) UpsertInfo(ctx context.Context, userID int64, params personal.InfoParams) error {
	query := `
		INSERT INTO personal_info (user_id, full_name, email, phone, monthly_income,
		                           monthly_fixed_expenses, monthly_variable_expenses, notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			monthly_income = EXCLUDED.monthly_income,
			monthly_fixed_expenses = EXCLUDED.monthly_fixed_expenses,
			monthly_variable_expenses = EXCLUDED.monthly_variable_expenses,
			notes = EXCLUDED.notes,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		userID, params.FullName, params.Email, params.Phone,
		decimalArg(params.MonthlyIncome), decimalArg(params.MonthlyFixedExpenses),
		decimalArg(params.MonthlyVariableExpenses), params.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to save personal info: %w", err)
	}
	return nil
}

func (r *PersonalRepository) CreateGoal(ctx context.Context, userID int64, params personal.GoalParams) (*personal.Goal, error) {
	query := `
		INSERT INTO goals (user_id, name, target_amount)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, target_amount, created_at, updated_at
	`

	g, err := scanGoal(r.db.QueryRowContext(ctx, query, userID, params.Name, params.TargetAmount))
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return g, nil
}

func (r *PersonalRepository) ListGoals(ctx context.Context, userID int64) ([]*personal.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*personal.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}

const savingsColumns = `id, user_id, month, year, amount, date, created_at, updated_at`

func (r *PersonalRepository) ListSavings(ctx context.Context, userID int64) ([]*personal.MonthlySavings, error) {
	query := `SELECT ` + savingsColumns + `
		FROM monthly_savings
		WHERE user_id = $1
		ORDER BY year, month`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly savings: %w", err)
	}
	defer rows.Close()

	var out []*personal.MonthlySavings
	for rows.Next() {
		s, err := scanSavings(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly savings: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly savings: %w", err)
	}
	return out, nil
}

func (r *PersonalRepository) AddSavings(ctx context.Context, userID int64, params personal.SavingsParams) (*personal.MonthlySavings, error) {
	query := `
		INSERT INTO monthly_savings (user_id, month, year, amount, date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT monthly_savings_user_month_key DO UPDATE SET
			amount = monthly_savings.amount + EXCLUDED.amount,
			date = EXCLUDED.date,
			updated_at = NOW()
		RETURNING ` + savingsColumns

	s, err := scanSavings(r.db.QueryRowContext(ctx, query,
		userID, params.Month, params.Year, params.Amount, params.Date,
	))
	switch {
	case isNumericOverflow(err):
		return nil, personal.ErrSavingsTotalTooLarge
	case err != nil:
		return nil, fmt.Errorf("failed to add monthly savings: %w", err)
	}
	return s, nil
}

func (r *PersonalRepository) UpdateSavings(ctx context.Context, userID, id int64, params personal.SavingsParams) (*personal.MonthlySavings, error) {
	query := `
		UPDATE monthly_savings
		SET month = $3, year = $4, amount = $5, date = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + savingsColumns

	s, err := scanSavings(r.db.QueryRowContext(ctx, query,
		id, userID, params.Month, params.Year, params.Amount, params.Date,
	))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, personal.ErrSavingsNotFound
	case isUniqueViolation(err, "monthly_savings_user_month_key"):
		return nil, personal.ErrSavingsMonthTaken
	case err != nil:
		return nil, fmt.Errorf("failed to update monthly savings: %w", err)
	}
	return s, nil
}

func (r *PersonalRepository) DeleteSavings(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM monthly_savings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete monthly savings: %w", err)
	}
	return expectOneRow(result, personal.ErrSavingsNotFound)
}

const extraExpenseColumns = `id, user_id, description, amount, date, month, year, created_at, updated_at`

func (r *PersonalRepository) ListExtraExpenses(ctx context.Context, userID int64) ([]*personal.ExtraExpense, error) {
	query := `SELECT ` + extraExpenseColumns + `
		FROM extra_expenses
		WHERE user_id = $1
		ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list extra expenses: %w", err)
	}
	defer rows.Close()

	var out []*personal.ExtraExpense
	for rows.Next() {
		e, err := scanExtraExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan extra expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating extra expenses: %w", err)
	}
	return out, nil
}

func (r *PersonalRepository) CreateExtraExpense(ctx context.Context, userID int64, params personal.ExtraExpenseParams) (*personal.ExtraExpense, error) {
	query := `
		INSERT INTO extra_expenses (user_id, description, amount, date, month, year)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + extraExpenseColumns

	e, err := scanExtraExpense(r.db.QueryRowContext(ctx, query,
		userID, params.Description, params.Amount, params.Date, params.Month, params.Year,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create extra expense: %w", err)
	}
	return e, nil
}

func (r *PersonalRepository) UpdateExtraExpense(ctx context.Context, userID, id int64, params personal.ExtraExpenseParams) (*personal.ExtraExpense, error) {
	query := `
		UPDATE extra_expenses
		SET description = $3, amount = $4, date = $5, month = $6, year = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + extraExpenseColumns

	e, err := scanExtraExpense(r.db.QueryRowContext(ctx, query,
		id, userID, params.Description, params.Amount, params.Date, params.Month, params.Year,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, personal.ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update extra expense: %w", err)
	}
	return e, nil
}

func (r *PersonalRepository) DeleteExtraExpense(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM extra_expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete extra expense: %w", err)
	}
	return expectOneRow(result, personal.ErrExpenseNotFound)
}

func scanGoal(row rowScanner) (*personal.Goal, error) {
	var g personal.Goal
	var updatedAt sql.NullTime
	if err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		g.UpdatedAt = &updatedAt.Time
	}
	return &g, nil
}

func scanSavings(row rowScanner) (*personal.MonthlySavings, error) {
	var s personal.MonthlySavings
	var updatedAt sql.NullTime
	err := row.Scan(&s.ID, &s.UserID, &s.Month, &s.Year, &s.Amount, &s.Date, &s.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		s.UpdatedAt = &updatedAt.Time
	}
	return &s, nil
}

func scanExtraExpense(row rowScanner) (*personal.ExtraExpense, error) {
	var e personal.ExtraExpense
	var updatedAt sql.NullTime
	err := row.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Date, &e.Month, &e.Year, &e.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		e.UpdatedAt = &updatedAt.Time
	}
	return &e, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}

func decimalArg(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
