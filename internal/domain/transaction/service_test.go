package transaction

import (
	"context"
	"errors"
	"math"
	"testing"

	"nestfin/internal/domain/validation"
)

type MockRepository struct {
	CreateFunc     func(ctx context.Context, userID int64, params Params) (*Transaction, error)
	GetByIDFunc    func(ctx context.Context, userID, id int64) (*Transaction, error)
	ListFunc       func(ctx context.Context, userID int64, filter Filter) ([]*Transaction, error)
	CountFunc      func(ctx context.Context, userID int64, filter Filter) (int64, error)
	UpdateFunc     func(ctx context.Context, userID, id int64, params Params) (*Transaction, error)
	SoftDeleteFunc func(ctx context.Context, userID, id int64) error
}

func (m *MockRepository) Create(ctx context.Context, userID int64, params Params) (*Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockRepository) GetByID(ctx context.Context, userID, id int64) (*Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context, userID int64, filter Filter) ([]*Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *MockRepository) Count(ctx context.Context, userID int64, filter Filter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, userID, filter)
	}
	return 0, nil
}

func (m *MockRepository) Update(ctx context.Context, userID, id int64, params Params) (*Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockRepository) SoftDelete(ctx context.Context, userID, id int64) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, userID, id)
	}
	return nil
}

func TestService_Create(t *testing.T) {
	var gotUser int64
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, userID int64, params Params) (*Transaction, error) {
			gotUser = userID
			return &Transaction{ID: 1, UserID: userID, Description: params.Description}, nil
		},
	}
	svc := NewService(repo)

	p := validParams()
	p.Description = "  Groceries "
	tx, err := svc.Create(context.Background(), 9, p)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if gotUser != 9 || tx.UserID != 9 {
		t.Errorf("transaction not attached to caller: repo user %d, tx user %d", gotUser, tx.UserID)
	}
	if tx.Description != "Groceries" {
		t.Errorf("Description = %q, want trimmed", tx.Description)
	}
}

func TestService_Create_ValidationSkipsRepo(t *testing.T) {
	called := false
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, userID int64, params Params) (*Transaction, error) {
			called = true
			return nil, nil
		},
	}

	p := validParams()
	p.Category = CategorySalary
	_, err := NewService(repo).Create(context.Background(), 1, p)
	if !validation.IsValidationError(err) {
		t.Fatalf("Create() error = %v, want validation error", err)
	}
	if called {
		t.Error("repository called for invalid params")
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := NewService(&MockRepository{})
	if _, err := svc.Get(context.Background(), 1, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestService_List_Pagination(t *testing.T) {
	tests := []struct {
		name         string
		query        ListQuery
		wantLimit    int
		wantOffset   int
		wantPageSize int
		wantErr      bool
	}{
		{name: "defaults", query: ListQuery{}, wantLimit: 20, wantOffset: 0, wantPageSize: 20},
		{name: "third page", query: ListQuery{Page: 3, PageSize: 10}, wantLimit: 10, wantOffset: 20, wantPageSize: 10},
		{name: "page size capped", query: ListQuery{Page: 1, PageSize: 500}, wantLimit: 100, wantOffset: 0, wantPageSize: 100},
		{name: "negative page", query: ListQuery{Page: -1}, wantErr: true},
		{name: "negative page size", query: ListQuery{PageSize: -5}, wantErr: true},
		{name: "offset overflow", query: ListQuery{Page: math.MaxInt, PageSize: 100}, wantErr: true},
		{name: "last addressable page", query: ListQuery{Page: math.MaxInt/100 + 1, PageSize: 100}, wantLimit: 100, wantOffset: math.MaxInt / 100 * 100, wantPageSize: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Filter
			repo := &MockRepository{
				ListFunc: func(ctx context.Context, userID int64, filter Filter) ([]*Transaction, error) {
					got = filter
					return nil, nil
				},
				CountFunc: func(ctx context.Context, userID int64, filter Filter) (int64, error) {
					return 42, nil
				},
			}

			page, err := NewService(repo).List(context.Background(), 1, tt.query)
			if tt.wantErr {
				if !validation.IsValidationError(err) {
					t.Fatalf("List() error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("limit/offset = %d/%d, want %d/%d", got.Limit, got.Offset, tt.wantLimit, tt.wantOffset)
			}
			if page.PageSize != tt.wantPageSize || page.Total != 42 {
				t.Errorf("page = %+v", page)
			}
			if page.Items == nil {
				t.Error("Items is nil, want empty slice")
			}
		})
	}
}

func TestService_UpdateAndDelete_PropagateNotFound(t *testing.T) {
	repo := &MockRepository{
		UpdateFunc: func(ctx context.Context, userID, id int64, params Params) (*Transaction, error) {
			return nil, ErrNotFound
		},
		SoftDeleteFunc: func(ctx context.Context, userID, id int64) error {
			return ErrNotFound
		},
	}
	svc := NewService(repo)

	if _, err := svc.Update(context.Background(), 1, 5, validParams()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), 1, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
