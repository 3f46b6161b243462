package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"nestfin/internal/shared/config"
	"nestfin/internal/shared/logger"
	"nestfin/internal/shared/middleware"
)

const redirectAddr = ":80"

// Server runs the API listener and, behind TLS, an optional HTTP listener
// that redirects to HTTPS.
type Server struct {
	api      *http.Server
	redirect *http.Server
	certFile string
	keyFile  string
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func NewServer(handler http.Handler, cfg *config.Config) *Server {
	s := &Server{
		api: newHTTPServer(net.JoinHostPort(cfg.Server.Host, cfg.Server.Port), handler),
	}
	if cfg.TLS.Enabled {
		s.certFile, s.keyFile = cfg.TLS.CertPath, cfg.TLS.KeyPath
		if cfg.TLS.RedirectHTTP {
			s.redirect = newHTTPServer(redirectAddr, redirectHandler(cfg.Server.AllowedHosts))
		}
	}
	return s
}

// Run serves until ctx is cancelled or a listener fails, then drains every
// listener within timeout.
func (s *Server) Run(ctx context.Context, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("API server starting", "addr", s.api.Addr, "tls", s.certFile != "")
		if s.certFile != "" {
			return ignoreClosed(s.api.ListenAndServeTLS(s.certFile, s.keyFile))
		}
		return ignoreClosed(s.api.ListenAndServe())
	})
	if s.redirect != nil {
		g.Go(func() error {
			slog.Info("HTTPS redirect server starting", "addr", s.redirect.Addr)
			return ignoreClosed(s.redirect.ListenAndServe())
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var errs []error
		if s.redirect != nil {
			errs = append(errs, s.redirect.Shutdown(shutdownCtx))
		}
		errs = append(errs, s.api.Shutdown(shutdownCtx))
		if err := errors.Join(errs...); err != nil {
			slog.Error("Shutdown incomplete", logger.FieldError, err)
			return err
		}
		slog.Info("Server stopped")
		return nil
	})

	return g.Wait()
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// redirectHandler sends every request on an allowed host to its HTTPS URL.
func redirectHandler(allowedHosts []string) http.Handler {
	policy := middleware.NewHostPolicy(allowedHosts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Header.Get("X-Forwarded-Host")
		if host == "" {
			host = r.Host
		}

		if !policy.Allows(host) {
			http.Error(w, "Invalid host", http.StatusBadRequest)
			return
		}

		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		http.Redirect(w, r, "https://"+host+r.RequestURI, http.StatusMovedPermanently)
	})
}
