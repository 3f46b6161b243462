// Package mailer holds the Sender used when no message broker is configured.
package mailer

import (
	"context"
	"log/slog"

	"nestfin/internal/domain/email"
	"nestfin/internal/shared/logger"
)

// LogSender writes each message to the log instead of delivering it.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	if log == nil {
		return &LogSender{log: logger.WithComponent("mailer")}
	}
	return &LogSender{log: log.With(logger.FieldComponent, "mailer")}
}

func (s *LogSender) Send(ctx context.Context, msg email.Message) error {
	s.log.InfoContext(ctx, "email sent",
		"kind", msg.Kind,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
