package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxStatementLength = 256

var (
	tracer = otel.Tracer("nestfin/postgres")

	stringLiteral  = regexp.MustCompile(`'(?:[^']|'')*'`)
	numericLiteral = regexp.MustCompile(`(^|[^A-Za-z0-9_$.])[0-9]+(?:\.[0-9]+)?`)
)

// Row is a *sql.Row that ends its span on Scan.
type Row struct {
	row  *sql.Row
	span trace.Span
}

func (r *Row) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if r.span != nil {
		// A missing row is an answer, not a failure.
		if errors.Is(err, sql.ErrNoRows) {
			endSpan(r.span, nil)
		} else {
			endSpan(r.span, err)
		}
		r.span = nil
	}
	return err
}

func startSpan(ctx context.Context, name, query string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", extractSQLVerb(query)),
			attribute.String("db.statement", sanitizeQuery(query)),
		),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// sanitizeQuery masks string and numeric literals so no user data reaches a
// trace. $N placeholders and digits inside identifiers are kept.
func sanitizeQuery(q string) string {
	q = stringLiteral.ReplaceAllString(q, "'?'")
	q = numericLiteral.ReplaceAllString(q, "${1}?")
	if len(q) > maxStatementLength {
		return q[:maxStatementLength] + "..."
	}
	return q
}

func extractSQLVerb(q string) string {
	verb, _, _ := strings.Cut(strings.TrimSpace(q), " ")
	return strings.ToUpper(strings.TrimSpace(verb))
}
