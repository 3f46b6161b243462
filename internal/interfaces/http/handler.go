// Package http exposes the NestFin REST API over net/http.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nestfin/internal/domain/personal"
	"nestfin/internal/domain/transaction"
	"nestfin/internal/domain/user"
	"nestfin/internal/domain/validation"
	"nestfin/internal/shared/logger"
	"nestfin/internal/shared/middleware"
)

const (
	maxBodyBytes = 1 << 20
	dateLayout   = "2006-01-02"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// writeError maps domain errors to status codes. Unknown errors are logged
// and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		http.Error(w, ve.Message, http.StatusBadRequest)
	case errors.Is(err, user.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, user.ErrEmailTaken), errors.Is(err, personal.ErrSavingsMonthTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, transaction.ErrNotFound),
		errors.Is(err, personal.ErrInfoNotFound),
		errors.Is(err, personal.ErrSavingsNotFound),
		errors.Is(err, personal.ErrExpenseNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		slog.ErrorContext(r.Context(), "request failed",
			logger.FieldMethod, r.Method,
			logger.FieldPath, r.URL.Path,
			logger.FieldRequestID, middleware.RequestIDFromContext(r.Context()),
			logger.FieldError, err,
		)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// requireUser reads the id stored by the auth middleware, answering 401 when
// it is missing.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}
	return userID, ok
}

// pathID parses the {id} wildcard, answering 400 when it is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// parseDate accepts YYYY-MM-DD or RFC 3339 and returns the instant in UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
}

// optionalDate parses s, returning the zero time when s is blank.
func optionalDate(field, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, validation.NewError(field, err.Error())
	}
	return t, nil
}

// queryInt reads an integer query parameter, falling back to def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, validation.NewError(name, name+" must be an integer")
	}
	return n, nil
}
