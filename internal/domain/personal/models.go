package personal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/validation"
)

const (
	maxFullNameLength    = 200
	maxEmailLength       = 150
	maxPhoneLength       = 30
	maxNotesLength       = 1000
	maxGoalNameLength    = 150
	maxDescriptionLength = 200
	minYear              = 1900
	maxYear              = 9999
)

// Info is the self-reported financial profile of a user. Every field is optional.
type Info struct {
	UserID                  int64            `json:"-"`
	FullName                *string          `json:"fullName,omitempty"`
	Email                   *string          `json:"email,omitempty"`
	Phone                   *string          `json:"phone,omitempty"`
	MonthlyIncome           *decimal.Decimal `json:"monthlyIncome,omitempty"`
	MonthlyFixedExpenses    *decimal.Decimal `json:"monthlyFixedExpenses,omitempty"`
	MonthlyVariableExpenses *decimal.Decimal `json:"monthlyVariableExpenses,omitempty"`
	Notes                   *string          `json:"notes,omitempty"`
	UpdatedAt               time.Time        `json:"updatedAt"`
}

type InfoParams struct {
	FullName                *string
	Email                   *string
	Phone                   *string
	MonthlyIncome           *decimal.Decimal
	MonthlyFixedExpenses    *decimal.Decimal
	MonthlyVariableExpenses *decimal.Decimal
	Notes                   *string
}

func (p *InfoParams) Normalize() {
	p.FullName = trimOptional(p.FullName)
	p.Email = trimOptional(p.Email)
	p.Phone = trimOptional(p.Phone)
	p.Notes = trimOptional(p.Notes)
	for _, amount := range []*decimal.Decimal{p.MonthlyIncome, p.MonthlyFixedExpenses, p.MonthlyVariableExpenses} {
		if amount != nil {
			*amount = amount.Round(2)
		}
	}
}

func (p *InfoParams) Validate() error {
	if err := optionalMaxLength("fullName", p.FullName, maxFullNameLength); err != nil {
		return err
	}
	if err := optionalMaxLength("email", p.Email, maxEmailLength); err != nil {
		return err
	}
	if p.Email != nil {
		if ok, msg := validation.Email(*p.Email); !ok {
			return validation.NewError("email", msg)
		}
	}
	if err := optionalMaxLength("phone", p.Phone, maxPhoneLength); err != nil {
		return err
	}
	if err := optionalMaxLength("notes", p.Notes, maxNotesLength); err != nil {
		return err
	}
	if err := checkAmount("monthlyIncome", p.MonthlyIncome); err != nil {
		return err
	}
	if err := checkAmount("monthlyFixedExpenses", p.MonthlyFixedExpenses); err != nil {
		return err
	}
	return checkAmount("monthlyVariableExpenses", p.MonthlyVariableExpenses)
}

// Goal is a named savings target.
type Goal struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"-"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

type GoalParams struct {
	Name         string
	TargetAmount decimal.Decimal
}

func (p *GoalParams) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if err := validation.Required("name", p.Name); err != nil {
		return err
	}
	if err := validation.MaxLength("name", p.Name, maxGoalNameLength); err != nil {
		return err
	}
	return checkAmount("targetAmount", &p.TargetAmount)
}

// MonthlySavings is the amount put aside in one calendar month. There is at
// most one entry per user and month.
type MonthlySavings struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"-"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

// ErrSavingsTotalTooLarge is returned when merging into a month would push
// its total past validation.MaxAmount.
var ErrSavingsTotalTooLarge = validation.NewError("amount", "monthly savings total is too large")

type SavingsParams struct {
	Month  int
	Year   int
	Amount decimal.Decimal
	Date   time.Time
}

func (p *SavingsParams) Validate() error {
	if err := checkMonthYear(p.Month, p.Year); err != nil {
		return err
	}
	return checkAmount("amount", &p.Amount)
}

// ExtraExpense is a one-off expense paid from savings.
type ExtraExpense struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"-"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

type ExtraExpenseParams struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Month       int
	Year        int
}

func (p *ExtraExpenseParams) Validate() error {
	p.Description = strings.TrimSpace(p.Description)
	if err := validation.Required("description", p.Description); err != nil {
		return err
	}
	if err := validation.MaxLength("description", p.Description, maxDescriptionLength); err != nil {
		return err
	}
	if err := checkMonthYear(p.Month, p.Year); err != nil {
		return err
	}
	return checkAmount("amount", &p.Amount)
}

func checkMonthYear(month, year int) error {
	if month < 1 || month > 12 {
		return validation.NewError("month", "month must be between 1 and 12")
	}
	if year < minYear || year > maxYear {
		return validation.NewError("year", "year must be between 1900 and 9999")
	}
	return nil
}

func checkAmount(field string, v *decimal.Decimal) error {
	if v == nil {
		return nil
	}
	return validation.Amount(field, *v)
}

func optionalMaxLength(field string, v *string, max int) error {
	if v == nil {
		return nil
	}
	return validation.MaxLength(field, *v, max)
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
