package transaction

import (
	"context"
	"errors"
	"math"

	"nestfin/internal/domain/validation"
)

var ErrNotFound = errors.New("transaction not found")

// Service contains the business logic for transaction operations
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID int64, params Params) (*Transaction, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, userID, params)
}

// Get returns an active transaction owned by userID.
func (s *Service) Get(ctx context.Context, userID, id int64) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrNotFound
	}
	return tx, nil
}

// List returns one page of the user's active transactions.
func (s *Service) List(ctx context.Context, userID int64, q ListQuery) (*Page, error) {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if q.Page < 1 {
		return nil, validation.NewError("page", "page must be at least 1")
	}
	if q.PageSize < 1 {
		return nil, validation.NewError("pageSize", "pageSize must be at least 1")
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	if q.Page-1 > math.MaxInt/q.PageSize {
		return nil, validation.NewError("page", "page is out of range")
	}
	f := q.Filter
	if f.StartDate != nil && f.EndDate != nil && !f.StartDate.Before(*f.EndDate) {
		return nil, validation.NewError("startDate", "startDate must not be after endDate")
	}

	total, err := s.repo.Count(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	f.Limit = q.PageSize
	f.Offset = (q.Page - 1) * q.PageSize
	items, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Transaction{}
	}

	return &Page{Items: items, Page: q.Page, PageSize: q.PageSize, Total: total}, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, params Params) (*Transaction, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, userID, id, params)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.SoftDelete(ctx, userID, id)
}
