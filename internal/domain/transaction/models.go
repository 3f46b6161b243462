package transaction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/validation"
)

const (
	maxDescriptionLength = 200
	maxNotesLength       = 500
	maxLocationLength    = 100
)

var MaxAmount = validation.MaxAmount

type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        Type            `json:"type"`
	Category    Category        `json:"category"`
	Date        time.Time       `json:"date"`
	Notes       *string         `json:"notes,omitempty"`
	Location    *string         `json:"location,omitempty"`
	IsActive    bool            `json:"-"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// Params carries every writable field. Updates overwrite all of them.
type Params struct {
	Description string
	Amount      decimal.Decimal
	Type        Type
	Category    Category
	Date        time.Time
	Notes       *string
	Location    *string
}

// Normalize trims text fields, drops empty optional ones and rounds the
// amount to cents.
func (p *Params) Normalize() {
	p.Description = strings.TrimSpace(p.Description)
	p.Notes = trimOptional(p.Notes)
	p.Location = trimOptional(p.Location)
	p.Amount = p.Amount.Round(2)
}

func (p *Params) Validate() error {
	if err := validation.Required("description", p.Description); err != nil {
		return err
	}
	if err := validation.MaxLength("description", p.Description, maxDescriptionLength); err != nil {
		return err
	}
	if err := validation.Amount("amount", p.Amount); err != nil {
		return err
	}
	if !p.Type.IsValid() {
		return validation.NewError("type", "type must be income or expense")
	}
	if !p.Category.IsValid() {
		return validation.NewError("category", "unknown category")
	}
	if p.Category.Type() != p.Type {
		return validation.NewError("category", "category "+p.Category.Key()+" does not belong to type "+p.Type.String())
	}
	if p.Date.IsZero() {
		return validation.NewError("date", "date is required")
	}
	if p.Notes != nil {
		if err := validation.MaxLength("notes", *p.Notes, maxNotesLength); err != nil {
			return err
		}
	}
	if p.Location != nil {
		if err := validation.MaxLength("location", *p.Location, maxLocationLength); err != nil {
			return err
		}
	}
	return nil
}

// Filter narrows a transaction listing. StartDate is inclusive, EndDate is
// exclusive. A zero Limit returns every matching row.
type Filter struct {
	Type      *Type
	Category  *Category
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// ListQuery is a paginated listing request.
type ListQuery struct {
	Filter   Filter
	Page     int
	PageSize int
}

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is one page of a listing, newest first.
type Page struct {
	Items    []*Transaction `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int64          `json:"total"`
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
