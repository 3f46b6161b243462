package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nestfin/internal/shared/auth"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Bearer", "", false},
		{"Bearer   ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := bearerToken(tt.header)
			if got != tt.want || ok != tt.ok {
				t.Errorf("bearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAuth(t *testing.T) {
	jwt := auth.NewJWT("0123456789abcdef0123456789abcdef", "NestFin", "NestFinUsers", time.Hour)
	token, err := jwt.Generate(1, "ana@gmail.com", "Ana")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
		cookie bool
		want   int
	}{
		{name: "valid token", header: "Bearer " + token, want: http.StatusOK},
		{name: "missing header", want: http.StatusUnauthorized},
		{name: "cookie only", cookie: true, want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer invalid", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Identity
			var seen bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, seen = IdentityFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
			}
			rr := httptest.NewRecorder()
			Auth(jwt)(next).ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want != http.StatusOK {
				if seen {
					t.Error("next handler ran for a rejected request")
				}
				return
			}
			want := Identity{UserID: 1, Email: "ana@gmail.com", Name: "Ana"}
			if !seen || got != want {
				t.Errorf("identity = %+v (%v), want %+v", got, seen, want)
			}
		})
	}
}
