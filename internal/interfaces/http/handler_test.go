package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/personal"
	"nestfin/internal/domain/transaction"
	"nestfin/internal/domain/user"
	"nestfin/internal/domain/validation"
)

func decimalOf(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func jsonInt(n int64) string { return strconv.FormatInt(n, 10) }

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", validation.NewError("name", "name is required"), http.StatusBadRequest, "name is required\n"},
		{"wrapped validation", fmt.Errorf("ctx: %w", validation.NewError("x", "bad x")), http.StatusBadRequest, "bad x\n"},
		{"credentials", user.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials\n"},
		{"email taken", user.ErrEmailTaken, http.StatusConflict, "email already registered\n"},
		{"month taken", personal.ErrSavingsMonthTaken, http.StatusConflict, personal.ErrSavingsMonthTaken.Error() + "\n"},
		{"transaction missing", transaction.ErrNotFound, http.StatusNotFound, transaction.ErrNotFound.Error() + "\n"},
		{"info missing", personal.ErrInfoNotFound, http.StatusNotFound, "personal info not found\n"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, httptest.NewRequest(http.MethodGet, "/x", nil), tt.err)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if rr.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rr.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2025-03-09", want: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
		{in: " 2025-03-09 ", want: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
		{in: "2025-03-09T15:04:05-03:00", want: time.Date(2025, 3, 9, 18, 4, 5, 0, time.UTC)},
		{in: "09/03/2025", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseListQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/transactions?type=expense&category=10&startDate=2025-01-01&endDate=2025-01-31&page=3&pageSize=5", nil)

	q, err := parseListQuery(r)
	if err != nil {
		t.Fatalf("parseListQuery() error = %v", err)
	}
	if q.Filter.Type == nil || *q.Filter.Type != transaction.TypeExpense {
		t.Errorf("type = %v", q.Filter.Type)
	}
	if q.Filter.Category == nil || *q.Filter.Category != transaction.CategoryFood {
		t.Errorf("category = %v", q.Filter.Category)
	}
	if want := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC); q.Filter.EndDate == nil || !q.Filter.EndDate.Equal(want) {
		t.Errorf("endDate = %v, want exclusive %v", q.Filter.EndDate, want)
	}
	if q.Page != 3 || q.PageSize != 5 {
		t.Errorf("page = %d, pageSize = %d", q.Page, q.PageSize)
	}

	defaults, err := parseListQuery(httptest.NewRequest(http.MethodGet, "/api/transactions", nil))
	if err != nil {
		t.Fatal(err)
	}
	if defaults.Page != transaction.DefaultPage || defaults.PageSize != transaction.DefaultPageSize {
		t.Errorf("defaults = %d/%d", defaults.Page, defaults.PageSize)
	}

	for _, bad := range []string{"category=nope", "startDate=yesterday", "page=x"} {
		if _, err := parseListQuery(httptest.NewRequest(http.MethodGet, "/api/transactions?"+bad, nil)); !validation.IsValidationError(err) {
			t.Errorf("%s: error = %v, want validation error", bad, err)
		}
	}
}

func TestRequireUser_MissingContext(t *testing.T) {
	rr := httptest.NewRecorder()
	h := &TransactionHandler{}
	h.HandleListTransactions(rr, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}
