package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"nestfin/internal/shared/logger"
)

// statusRecorder remembers the first status code and counts body bytes.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w}
}

// Status is the written status, 200 if the handler only wrote a body, or 0
// if it wrote nothing.
func (sr *statusRecorder) Status() int {
	if sr.status == 0 && sr.bytes > 0 {
		return http.StatusOK
	}
	return sr.status
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.status != 0 {
		return
	}
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

// Logging writes one structured line per request. Server errors are logged
// at error level, client errors at warn.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		status := rec.Status()
		if status == 0 {
			status = http.StatusOK
		}

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		slog.Default().LogAttrs(r.Context(), level, "http request",
			slog.String(logger.FieldMethod, r.Method),
			slog.String(logger.FieldPath, r.URL.Path),
			slog.Int(logger.FieldStatus, status),
			slog.Int("bytes", rec.bytes),
			slog.Duration(logger.FieldDuration, time.Since(start)),
			slog.String(logger.FieldRequestID, RequestIDFromContext(r.Context())),
		)
	})
}
