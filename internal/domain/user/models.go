package user

import (
	"strings"
	"time"
)

type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Token string
	User  *User
}

// NormalizeEmail trims and lowercases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
