package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/email"
	"nestfin/internal/domain/personal"
	"nestfin/internal/domain/report"
	"nestfin/internal/domain/transaction"
	"nestfin/internal/domain/user"
	"nestfin/internal/infrastructure/mailer"
	"nestfin/internal/infrastructure/memory"
	httpapi "nestfin/internal/interfaces/http"
	"nestfin/internal/shared/auth"
	"nestfin/internal/shared/middleware"
)

const testPassword = "Sunny#Day7"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	jwt := auth.NewJWT("0123456789abcdef0123456789abcdef", "NestFin", "NestFinUsers", time.Hour)
	users := user.NewService(memory.NewUserRepository(), jwt)
	transactions := memory.NewTransactionRepository()

	handlers := &httpapi.Handlers{
		Auth:        httpapi.NewAuthHandler(users),
		User:        httpapi.NewUserHandler(users),
		Transaction: httpapi.NewTransactionHandler(transaction.NewService(transactions)),
		Report:      httpapi.NewReportHandler(report.NewService(transactions)),
		Personal:    httpapi.NewPersonalHandler(personal.NewService(memory.NewPersonalRepository())),
		Email:       httpapi.NewEmailHandler(email.NewService(mailer.NewLogSender(slog.New(slog.NewTextHandler(io.Discard, nil))), nil)),
	}
	mux := http.NewServeMux()
	handlers.Register(mux, middleware.Auth(jwt))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func loggedIn(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()

	c := New(srv.URL+"/", WithHTTPClient(srv.Client()))
	resp, err := c.Register(context.Background(), "Ana", "ana@example.com", testPassword)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	c.SetToken(resp.Token)
	return c
}

func TestClient_AuthFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := New(srv.URL, WithHTTPClient(srv.Client()))

	if _, err := c.Me(ctx); !IsUnauthorized(err) {
		t.Fatalf("Me() without token error = %v, want 401", err)
	}

	reg, err := c.Register(ctx, "Ana", "Ana@Example.com", testPassword)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.Token == "" || reg.Email != "ana@example.com" {
		t.Errorf("Register() = %+v", reg)
	}

	_, err = c.Register(ctx, "Ana", "ana@example.com", testPassword)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate Register() error = %v, want 409", err)
	}

	if _, err := c.Login(ctx, "ana@example.com", "wrong"); !IsUnauthorized(err) {
		t.Errorf("Login() with bad password error = %v, want 401", err)
	}

	login, err := c.Login(ctx, "ana@example.com", testPassword)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	c.SetToken(login.Token)

	me, err := c.Me(ctx)
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if me.ID != reg.UserID || me.Name != "Ana" {
		t.Errorf("Me() = %+v, want id %d", me, reg.UserID)
	}
}

func TestClient_Transactions(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := loggedIn(t, srv)

	now := time.Now().UTC()
	food, err := c.CreateTransaction(ctx, TransactionInput{
		Description: "Groceries",
		Amount:      decimal.RequireFromString("50"),
		Type:        transaction.TypeExpense,
		Category:    transaction.CategoryFood,
		Date:        now,
	})
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if _, err := c.CreateTransaction(ctx, TransactionInput{
		Description: "Salary",
		Amount:      decimal.RequireFromString("1000"),
		Type:        transaction.TypeIncome,
		Category:    transaction.CategorySalary,
		Date:        now,
	}); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	_, err = c.CreateTransaction(ctx, TransactionInput{
		Description: "Mismatch",
		Amount:      decimal.RequireFromString("1"),
		Type:        transaction.TypeIncome,
		Category:    transaction.CategoryFood,
		Date:        now,
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("mismatched category error = %v, want 400", err)
	}

	expense := transaction.TypeExpense
	page, err := c.ListTransactions(ctx, ListOptions{Type: &expense})
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if page.Total != 1 || page.Items[0].ID != food.ID {
		t.Errorf("ListTransactions(expense) = %+v", page)
	}

	notes := "weekly"
	updated, err := c.UpdateTransaction(ctx, food.ID, TransactionInput{
		Description: "Groceries",
		Amount:      decimal.RequireFromString("60"),
		Type:        transaction.TypeExpense,
		Category:    transaction.CategoryFood,
		Date:        now,
		Notes:       &notes,
	})
	if err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}
	if !updated.Amount.Equal(decimal.RequireFromString("60")) || updated.Notes == nil || *updated.Notes != notes {
		t.Errorf("UpdateTransaction() = %+v", updated)
	}

	netWorth, err := c.NetWorth(ctx)
	if err != nil {
		t.Fatalf("NetWorth() error = %v", err)
	}
	if !netWorth.Equal(decimal.RequireFromString("940")) {
		t.Errorf("NetWorth() = %s, want 940", netWorth)
	}

	rep, err := c.FinancialReport(ctx, 6)
	if err != nil {
		t.Fatalf("FinancialReport() error = %v", err)
	}
	if !rep.TotalExpenses.Equal(decimal.RequireFromString("60")) || !rep.TotalIncome.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("FinancialReport() totals = %s / %s", rep.TotalIncome, rep.TotalExpenses)
	}

	if _, err := c.SpendingAnalysis(ctx, 30); err != nil {
		t.Errorf("SpendingAnalysis() error = %v", err)
	}
	if _, err := c.ProjectedExpenses(ctx, 3); err != nil {
		t.Errorf("ProjectedExpenses() error = %v", err)
	}

	if err := c.DeleteTransaction(ctx, food.ID); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if _, err := c.GetTransaction(ctx, food.ID); !IsNotFound(err) {
		t.Errorf("GetTransaction() after delete error = %v, want 404", err)
	}

	all, err := c.AllTransactions(ctx)
	if err != nil {
		t.Fatalf("AllTransactions() error = %v", err)
	}
	if len(all) != 1 || all[0].Category != transaction.CategorySalary {
		t.Errorf("AllTransactions() = %d items", len(all))
	}
}

func TestClient_Personal(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := loggedIn(t, srv)

	info, err := c.GetPersonalInfo(ctx)
	if err != nil || info != nil {
		t.Fatalf("GetPersonalInfo() before save = %+v, %v; want nil, nil", info, err)
	}

	income := decimal.RequireFromString("5000")
	name := "Ana Silva"
	if err := c.SavePersonalInfo(ctx, InfoInput{FullName: &name, MonthlyIncome: &income}); err != nil {
		t.Fatalf("SavePersonalInfo() error = %v", err)
	}
	info, err = c.GetPersonalInfo(ctx)
	if err != nil {
		t.Fatalf("GetPersonalInfo() error = %v", err)
	}
	if info.FullName == nil || *info.FullName != name || info.MonthlyIncome == nil || !info.MonthlyIncome.Equal(income) {
		t.Errorf("GetPersonalInfo() = %+v", info)
	}

	if _, err := c.CreateGoal(ctx, GoalInput{Name: "House", TargetAmount: decimal.RequireFromString("100000")}); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}
	goals, err := c.ListGoals(ctx)
	if err != nil || len(goals) != 1 {
		t.Fatalf("ListGoals() = %d goals, %v", len(goals), err)
	}

	first, err := c.AddSavings(ctx, SavingsInput{Month: 3, Year: 2024, Amount: decimal.RequireFromString("100")})
	if err != nil {
		t.Fatalf("AddSavings() error = %v", err)
	}
	merged, err := c.AddSavings(ctx, SavingsInput{Month: 3, Year: 2024, Amount: decimal.RequireFromString("50")})
	if err != nil {
		t.Fatalf("AddSavings() error = %v", err)
	}
	if merged.ID != first.ID || !merged.Amount.Equal(decimal.RequireFromString("150")) {
		t.Errorf("AddSavings() merge = %+v, want id %d amount 150", merged, first.ID)
	}

	extra, err := c.AddExtraExpense(ctx, ExtraExpenseInput{
		Description: "Car repair",
		Amount:      decimal.RequireFromString("300"),
		Date:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("AddExtraExpense() error = %v", err)
	}
	if extra.Month != 5 || extra.Year != 2024 {
		t.Errorf("AddExtraExpense() month/year = %d/%d, want 5/2024", extra.Month, extra.Year)
	}

	if err := c.DeleteExtraExpense(ctx, extra.ID); err != nil {
		t.Fatalf("DeleteExtraExpense() error = %v", err)
	}
	expenses, err := c.ListExtraExpenses(ctx)
	if err != nil || len(expenses) != 0 {
		t.Errorf("ListExtraExpenses() = %d, %v; want empty", len(expenses), err)
	}

	if err := c.DeleteSavings(ctx, 9999); !IsNotFound(err) {
		t.Errorf("DeleteSavings(unknown) error = %v, want 404", err)
	}
}

func TestClient_Email(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := New(srv.URL, WithHTTPClient(srv.Client()))

	res, err := c.SendVerificationEmail(ctx, "ana@example.com", "Ana", "https://nestfin.app/verify?t=1")
	if err != nil {
		t.Fatalf("SendVerificationEmail() error = %v", err)
	}
	if !res.Success {
		t.Errorf("SendVerificationEmail() = %+v", res)
	}

	_, err = c.SendPasswordResetEmail(ctx, "ana@example.com", "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("SendPasswordResetEmail() without link error = %v, want 400", err)
	}
	if apiErr.Message == "" {
		t.Error("APIError.Message is empty, want the server message")
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"success":false,"message":"resetLink is required"}`, "resetLink is required"},
		{"Not found\n", "Not found"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := errorMessage([]byte(tt.body)); got != tt.want {
			t.Errorf("errorMessage(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}
