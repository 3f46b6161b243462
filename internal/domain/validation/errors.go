package validation

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest value a NUMERIC(18,2) column can hold.
var MaxAmount = decimal.New(1, 16).Sub(decimal.New(1, -2))

// Error is a client-correctable input problem. Handlers answer it with 400.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// IsValidationError reports whether err wraps an *Error.
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// Required returns an error when value is empty.
func Required(field, value string) error {
	if value == "" {
		return NewError(field, fmt.Sprintf("%s is required", field))
	}
	return nil
}

// MaxLength returns an error when value has more than max characters.
func MaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return NewError(field, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return nil
}

// Amount returns an error when v is negative or does not fit MaxAmount.
func Amount(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return NewError(field, fmt.Sprintf("%s must not be negative", field))
	}
	if v.GreaterThan(MaxAmount) {
		return NewError(field, fmt.Sprintf("%s is too large", field))
	}
	return nil
}
