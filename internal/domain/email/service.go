package email

import (
	"context"
	"fmt"
	"strings"

	"nestfin/internal/shared/messages"
)

// Service renders verification and password reset emails and passes them
// to the configured Sender.
type Service struct {
	sender   Sender
	messages *messages.Messages
}

func NewService(sender Sender, msgs *messages.Messages) *Service {
	if msgs == nil {
		msgs = messages.Default()
	}
	return &Service{sender: sender, messages: msgs}
}

func (s *Service) SendVerification(ctx context.Context, params VerificationParams) (*Message, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	name := params.Name
	if name == "" {
		name = params.Email
	}
	vars := map[string]string{
		"name":  name,
		"email": params.Email,
		"link":  params.VerificationLink,
	}
	msg := s.render(KindVerification, params.Email, params.Subject, s.messages.Verification, vars)
	if err := s.sender.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}
	return &msg, nil
}

func (s *Service) SendPasswordReset(ctx context.Context, params PasswordResetParams) (*Message, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	vars := map[string]string{
		"email": params.Email,
		"link":  params.ResetLink,
	}
	msg := s.render(KindPasswordReset, params.Email, params.Subject, s.messages.PasswordReset, vars)
	if err := s.sender.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send password reset email: %w", err)
	}
	return &msg, nil
}

// render uses subject when given, the template subject otherwise.
func (s *Service) render(kind Kind, to, subject string, tmpl messages.MessageText, vars map[string]string) Message {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = messages.Render(tmpl.Subject, vars)
	}
	return Message{
		Kind:    kind,
		To:      to,
		Subject: subject,
		Body:    messages.Render(tmpl.Body, vars),
	}
}
