package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHSTS(t *testing.T) {
	handler := HSTS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("Strict-Transport-Security"); got != "max-age=31536000; includeSubDomains" {
		t.Errorf("Strict-Transport-Security = %q", got)
	}
}

func TestHostPolicy_Allows(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		allowedHosts []string
		want         bool
	}{
		{name: "empty allowed hosts returns true", host: "example.com", allowedHosts: nil, want: true},
		{name: "exact match", host: "example.com:8080", allowedHosts: []string{"example.com:8080"}, want: true},
		{name: "host without port matches allowed with port", host: "example.com", allowedHosts: []string{"example.com:8080"}, want: true},
		{name: "host with port matches allowed without port", host: "example.com:8080", allowedHosts: []string{"example.com"}, want: true},
		{name: "IPv6 loopback with port", host: "[::1]:8080", allowedHosts: []string{"[::1]:8080"}, want: true},
		{name: "IPv6 without port matches allowed with port", host: "::1", allowedHosts: []string{"[::1]:8080"}, want: true},
		{name: "IPv6 with port matches allowed without port", host: "[::1]:8080", allowedHosts: []string{"::1"}, want: true},
		{name: "case insensitive match", host: "Example.COM:8080", allowedHosts: []string{"example.com"}, want: true},
		{name: "whitespace trimmed", host: "  example.com:8080  ", allowedHosts: []string{"  example.com  "}, want: true},
		{name: "no match returns false", host: "evil.com", allowedHosts: []string{"example.com", "app.example.com"}, want: false},
		{name: "subdomain mismatch", host: "sub.example.com", allowedHosts: []string{"example.com"}, want: false},
		{name: "IPv6 different address", host: "[::2]:8080", allowedHosts: []string{"[::1]:8080"}, want: false},
		{name: "blank entries ignored", host: "evil.com", allowedHosts: []string{" ", ""}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewHostPolicy(tt.allowedHosts).Allows(tt.host)
			if got != tt.want {
				t.Errorf("Allows(%q) with %v = %v, want %v",
					tt.host, tt.allowedHosts, got, tt.want)
			}
		})
	}
}
