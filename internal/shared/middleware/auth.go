package middleware

import (
	"context"
	"net/http"
	"strings"

	"nestfin/internal/shared/auth"
)

type ContextKey string

const identityKey ContextKey = "identity"

// Identity is the authenticated caller, as carried by the bearer token.
type Identity struct {
	UserID int64
	Email  string
	Name   string
}

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	Validate(token string) (*auth.JWTClaims, error)
}

// Auth rejects requests without a valid bearer token. Cookies are ignored.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			id := Identity{UserID: claims.UserID, Email: claims.Email, Name: claims.Name}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// UserID returns the authenticated user id stored by Auth.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := IdentityFrom(ctx)
	return id.UserID, ok
}
