package middleware

import (
	"net"
	"net/http"
	"strings"
)

const hstsValue = "max-age=31536000; includeSubDomains"

// HSTS tells browsers to use HTTPS for a year, subdomains included.
func HSTS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", hstsValue)
		next.ServeHTTP(w, r)
	})
}

// HostPolicy decides which Host values the HTTPS redirect will honor.
// Hosts compare case-insensitively, and a port on either side is ignored.
type HostPolicy struct {
	hosts map[string]struct{}
}

// NewHostPolicy builds a policy from the configured hosts. An empty list
// allows every host.
func NewHostPolicy(allowed []string) *HostPolicy {
	p := &HostPolicy{hosts: make(map[string]struct{}, len(allowed))}
	for _, h := range allowed {
		if h = hostname(h); h != "" {
			p.hosts[h] = struct{}{}
		}
	}
	return p
}

func (p *HostPolicy) Allows(host string) bool {
	if len(p.hosts) == 0 {
		return true
	}
	_, ok := p.hosts[hostname(host)]
	return ok
}

// hostname lowercases host and drops any port and IPv6 brackets.
func hostname(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
}
