package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nestfin/internal/domain/validation"
	"nestfin/internal/shared/auth"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID int64, email, name string) (string, error)
}

// Service registers and authenticates users.
type Service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates an account and signs the first token for it.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	name := strings.TrimSpace(params.Name)
	email := NormalizeEmail(params.Email)

	if ok, msg := validation.Name(name); !ok {
		return nil, validation.NewError("name", msg)
	}
	if ok, msg := validation.Email(email); !ok {
		return nil, validation.NewError("email", msg)
	}
	if ok, msg := validation.Password(params.Password); !ok {
		return nil, validation.NewError("password", msg)
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The unique index still guards against a concurrent registration
	u, err := s.repo.Create(ctx, CreateUserParams{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, err
	}

	return s.issue(u)
}

// Login checks the credentials. Every failure reports ErrInvalidCredentials
// so callers cannot tell which part was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if u == nil || !u.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	return s.issue(u)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) issue(u *User) (*AuthResult, error) {
	token, err := s.tokens.Generate(u.ID, u.Email, u.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}
