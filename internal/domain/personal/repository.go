package personal

import "context"

type InfoRepository interface {
	// GetInfo returns nil, nil when the user never saved a profile.
	GetInfo(ctx context.Context, userID int64) (*Info, error)
	UpsertInfo(ctx context.Context, userID int64, params InfoParams) error
}

type GoalRepository interface {
	CreateGoal(ctx context.Context, userID int64, params GoalParams) (*Goal, error)
	// ListGoals orders by creation time, newest first.
	ListGoals(ctx context.Context, userID int64) ([]*Goal, error)
}

type SavingsRepository interface {
	// ListSavings orders by year and month.
	ListSavings(ctx context.Context, userID int64) ([]*MonthlySavings, error)
	// AddSavings adds to the entry of the same month and year when one
	// exists, replacing its date, and creates it otherwise. A merged total
	// above validation.MaxAmount fails with ErrSavingsTotalTooLarge.
	AddSavings(ctx context.Context, userID int64, params SavingsParams) (*MonthlySavings, error)
	// UpdateSavings returns ErrSavingsNotFound or ErrSavingsMonthTaken.
	UpdateSavings(ctx context.Context, userID, id int64, params SavingsParams) (*MonthlySavings, error)
	DeleteSavings(ctx context.Context, userID, id int64) error
}

type ExtraExpenseRepository interface {
	// ListExtraExpenses orders by date, newest first.
	ListExtraExpenses(ctx context.Context, userID int64) ([]*ExtraExpense, error)
	CreateExtraExpense(ctx context.Context, userID int64, params ExtraExpenseParams) (*ExtraExpense, error)
	// UpdateExtraExpense returns ErrExpenseNotFound when the user owns no such entry.
	UpdateExtraExpense(ctx context.Context, userID, id int64, params ExtraExpenseParams) (*ExtraExpense, error)
	DeleteExtraExpense(ctx context.Context, userID, id int64) error
}

// Repository defines the interface for personal data access
type Repository interface {
	InfoRepository
	GoalRepository
	SavingsRepository
	ExtraExpenseRepository
}
