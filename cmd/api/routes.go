package main

import (
	"log/slog"
	"net/http"

	"nestfin/internal/shared/config"
	"nestfin/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()
	deps.Handlers.Register(mux, middleware.Auth(deps.JWT))

	handler := middleware.RequestID(middleware.Logging(middleware.Tracing(mux)))

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(handler)
		slog.Info("TLS security middleware enabled (HSTS)")
	}

	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry("nestfin-api")(handler)
	}

	return handler
}
