package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "nestfin/http"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)

	requestDuration, _ = meter.Float64Histogram("nestfin.http.request.duration",
		metric.WithDescription("Time spent serving API requests"),
		metric.WithUnit("s"),
	)
	responseSize, _ = meter.Int64Histogram("nestfin.http.response.size",
		metric.WithDescription("Size of API response bodies"),
		metric.WithUnit("By"),
	)
)

// Tracing opens a server span per request and records duration and response
// size. The span is renamed to the matched route once the mux has run, so
// ids in paths never reach metric labels.
func Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, span := tracer.Start(r.Context(), r.Method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
				attribute.String("nestfin.request_id", RequestIDFromContext(r.Context())),
			),
		)
		defer span.End()

		rec := newStatusRecorder(w)
		req := r.WithContext(ctx)
		next.ServeHTTP(rec, req)

		status := rec.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := req.Pattern
		if route == "" {
			route = "unmatched"
		}

		span.SetName(route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		attrs := metric.WithAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
		)
		requestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		responseSize.Record(ctx, int64(rec.bytes), attrs)
	})
}
