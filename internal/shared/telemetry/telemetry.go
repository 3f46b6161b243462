// Package telemetry wires OpenTelemetry traces and Prometheus metrics.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"nestfin/internal/shared/logger"
)

// Config controls Init. An empty OTLPEndpoint disables trace export.
type Config struct {
	ServiceName  string
	Environment  string
	OTLPEndpoint string
	MetricsPort  string
}

type shutdownChain []func(context.Context) error

// run shuts everything down in reverse start order.
func (c shutdownChain) run(ctx context.Context) error {
	var errs []error
	for i := len(c) - 1; i >= 0; i-- {
		errs = append(errs, c[i](ctx))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("telemetry shutdown: %w", err)
	}
	return nil
}

// Init installs the global meter and tracer providers and starts the
// /metrics server. The returned function must be called on exit.
func Init(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	var chain shutdownChain
	fail := func(err error) (func(context.Context) error, error) {
		return chain.run, errors.Join(err, chain.run(ctx))
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.Environment),
	))
	if err != nil {
		return fail(fmt.Errorf("failed to create resource: %w", err))
	}

	registry := newRegistry()
	meterProvider, err := newMeterProvider(res, registry)
	if err != nil {
		return fail(err)
	}
	otel.SetMeterProvider(meterProvider)
	chain = append(chain, meterProvider.Shutdown)

	if cfg.OTLPEndpoint != "" {
		tracerProvider, err := newTracerProvider(ctx, res, cfg.OTLPEndpoint)
		if err != nil {
			return fail(err)
		}
		otel.SetTracerProvider(tracerProvider)
		chain = append(chain, tracerProvider.Shutdown)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	metricsSrv := &http.Server{
		Addr:         ":" + cfg.MetricsPort,
		Handler:      metricsHandler(registry),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	chain = append(chain, metricsSrv.Shutdown)
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server error", logger.FieldError, err)
		}
	}()

	slog.Info("OpenTelemetry initialized",
		"service", cfg.ServiceName,
		"metrics_addr", metricsSrv.Addr,
		"otlp_endpoint", cfg.OTLPEndpoint,
	)
	return chain.run, nil
}

// newRegistry is a private Prometheus registry with the Go runtime and
// process collectors.
func newRegistry() *promclient.Registry {
	reg := promclient.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newMeterProvider(res *resource.Resource, reg promclient.Registerer) (*sdkmetric.MeterProvider, error) {
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	), nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, endpoint string) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	), nil
}

func metricsHandler(reg *promclient.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return mux
}
