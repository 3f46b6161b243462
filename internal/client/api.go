package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/personal"
	"nestfin/internal/domain/report"
	"nestfin/internal/domain/transaction"
)

type AuthResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type Me struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// TransactionInput is the body of create and update.
type TransactionInput struct {
	Description string
	Amount      decimal.Decimal
	Type        transaction.Type
	Category    transaction.Category
	Date        time.Time
	Notes       *string
	Location    *string
}

func (in TransactionInput) wire() any {
	return struct {
		Description string               `json:"description"`
		Amount      decimal.Decimal      `json:"amount"`
		Type        transaction.Type     `json:"type"`
		Category    transaction.Category `json:"category"`
		Date        string               `json:"date"`
		Notes       *string              `json:"notes,omitempty"`
		Location    *string              `json:"location,omitempty"`
	}{in.Description, in.Amount, in.Type, in.Category, formatTime(in.Date), in.Notes, in.Location}
}

// ListOptions narrows ListTransactions. EndDate is inclusive.
type ListOptions struct {
	Type      *transaction.Type
	Category  *transaction.Category
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

func (o ListOptions) query() string {
	v := url.Values{}
	if o.Type != nil {
		v.Set("type", o.Type.String())
	}
	if o.Category != nil {
		v.Set("category", o.Category.Key())
	}
	if o.StartDate != nil {
		v.Set("startDate", o.StartDate.UTC().Format(time.DateOnly))
	}
	if o.EndDate != nil {
		v.Set("endDate", o.EndDate.UTC().Format(time.DateOnly))
	}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(o.PageSize))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

type InfoInput struct {
	FullName                *string          `json:"fullName,omitempty"`
	Email                   *string          `json:"email,omitempty"`
	Phone                   *string          `json:"phone,omitempty"`
	MonthlyIncome           *decimal.Decimal `json:"monthlyIncome,omitempty"`
	MonthlyFixedExpenses    *decimal.Decimal `json:"monthlyFixedExpenses,omitempty"`
	MonthlyVariableExpenses *decimal.Decimal `json:"monthlyVariableExpenses,omitempty"`
	Notes                   *string          `json:"notes,omitempty"`
}

type GoalInput struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
}

// SavingsInput leaves the date to the server when Date is zero.
type SavingsInput struct {
	Month  int
	Year   int
	Amount decimal.Decimal
	Date   time.Time
}

func (in SavingsInput) wire() any {
	return struct {
		Month  int             `json:"month"`
		Year   int             `json:"year"`
		Amount decimal.Decimal `json:"amount"`
		Date   string          `json:"date,omitempty"`
	}{in.Month, in.Year, in.Amount, formatTime(in.Date)}
}

// ExtraExpenseInput lets the server derive month and year from Date when
// they are zero.
type ExtraExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Month       int
	Year        int
}

func (in ExtraExpenseInput) wire() any {
	return struct {
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Date        string          `json:"date,omitempty"`
		Month       int             `json:"month,omitempty"`
		Year        int             `json:"year,omitempty"`
	}{in.Description, in.Amount, formatTime(in.Date), in.Month, in.Year}
}

type EmailResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

// Register creates an account. The returned token is not installed; call
// SetToken to use it.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	in := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*Me, error) {
	var out Me
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTransaction(ctx context.Context, in TransactionInput) (*transaction.Transaction, error) {
	var out transaction.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions", in.wire(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTransactions(ctx context.Context, opts ListOptions) (*transaction.Page, error) {
	var out transaction.Page
	if err := c.do(ctx, http.MethodGet, "/api/transactions"+opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AllTransactions pages through every active transaction, newest first.
func (c *Client) AllTransactions(ctx context.Context) ([]*transaction.Transaction, error) {
	var all []*transaction.Transaction
	for page := 1; ; page++ {
		p, err := c.ListTransactions(ctx, ListOptions{Page: page, PageSize: transaction.MaxPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, p.Items...)
		if len(p.Items) == 0 || int64(len(all)) >= p.Total {
			return all, nil
		}
	}
}

func (c *Client) GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	var out transaction.Transaction
	if err := c.do(ctx, http.MethodGet, idPath("/api/transactions", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, in TransactionInput) (*transaction.Transaction, error) {
	var out transaction.Transaction
	if err := c.do(ctx, http.MethodPut, idPath("/api/transactions", id), in.wire(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/transactions", id), nil, nil)
}

func (c *Client) FinancialReport(ctx context.Context, months int) (*report.FinancialReport, error) {
	var out report.FinancialReport
	path := "/api/transactions/report?months=" + strconv.Itoa(months)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SpendingAnalysis(ctx context.Context, days int) (*report.SpendingAnalysis, error) {
	var out report.SpendingAnalysis
	path := "/api/transactions/spending-analysis?days=" + strconv.Itoa(days)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) NetWorth(ctx context.Context) (decimal.Decimal, error) {
	var out struct {
		NetWorth decimal.Decimal `json:"netWorth"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/transactions/net-worth", nil, &out); err != nil {
		return decimal.Zero, err
	}
	return out.NetWorth, nil
}

func (c *Client) ProjectedExpenses(ctx context.Context, months int) (decimal.Decimal, error) {
	var out struct {
		ProjectedExpenses decimal.Decimal `json:"projectedExpenses"`
	}
	path := "/api/transactions/projected-expenses?months=" + strconv.Itoa(months)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return decimal.Zero, err
	}
	return out.ProjectedExpenses, nil
}

// GetPersonalInfo returns nil, nil when the user never saved a profile.
func (c *Client) GetPersonalInfo(ctx context.Context) (*personal.Info, error) {
	var out personal.Info
	err := c.do(ctx, http.MethodGet, "/api/personal/info", nil, &out)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SavePersonalInfo(ctx context.Context, in InfoInput) error {
	return c.do(ctx, http.MethodPut, "/api/personal/info", in, nil)
}

func (c *Client) CreateGoal(ctx context.Context, in GoalInput) (*personal.Goal, error) {
	var out personal.Goal
	if err := c.do(ctx, http.MethodPost, "/api/personal/goals", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListGoals(ctx context.Context) ([]*personal.Goal, error) {
	var out []*personal.Goal
	if err := c.do(ctx, http.MethodGet, "/api/personal/goals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSavings(ctx context.Context) ([]*personal.MonthlySavings, error) {
	var out []*personal.MonthlySavings
	if err := c.do(ctx, http.MethodGet, "/api/personal/savings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddSavings(ctx context.Context, in SavingsInput) (*personal.MonthlySavings, error) {
	var out personal.MonthlySavings
	if err := c.do(ctx, http.MethodPost, "/api/personal/savings", in.wire(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSavings(ctx context.Context, id int64, in SavingsInput) (*personal.MonthlySavings, error) {
	var out personal.MonthlySavings
	if err := c.do(ctx, http.MethodPut, idPath("/api/personal/savings", id), in.wire(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSavings(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/personal/savings", id), nil, nil)
}

func (c *Client) ListExtraExpenses(ctx context.Context) ([]*personal.ExtraExpense, error) {
	var out []*personal.ExtraExpense
	if err := c.do(ctx, http.MethodGet, "/api/personal/extra-expenses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddExtraExpense(ctx context.Context, in ExtraExpenseInput) (*personal.ExtraExpense, error) {
	var out personal.ExtraExpense
	if err := c.do(ctx, http.MethodPost, "/api/personal/extra-expenses", in.wire(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateExtraExpense(ctx context.Context, id int64, in ExtraExpenseInput) (*personal.ExtraExpense, error) {
	var out personal.ExtraExpense
	if err := c.do(ctx, http.MethodPut, idPath("/api/personal/extra-expenses", id), in.wire(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteExtraExpense(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/personal/extra-expenses", id), nil, nil)
}

func (c *Client) SendVerificationEmail(ctx context.Context, email, name, link string) (*EmailResult, error) {
	var out EmailResult
	in := map[string]string{"email": email, "name": name, "verificationLink": link}
	if err := c.do(ctx, http.MethodPost, "/api/email/send-verification", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendPasswordResetEmail(ctx context.Context, email, link string) (*EmailResult, error) {
	var out EmailResult
	in := map[string]string{"email": email, "resetLink": link}
	if err := c.do(ctx, http.MethodPost, "/api/email/send-password-reset", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
