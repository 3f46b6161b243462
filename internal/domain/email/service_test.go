package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nestfin/internal/domain/validation"
	"nestfin/internal/shared/messages"
)

type MockSender struct {
	SendFunc func(ctx context.Context, msg Message) error
	sent     []Message
}

func (m *MockSender) Send(ctx context.Context, msg Message) error {
	m.sent = append(m.sent, msg)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}

func TestService_SendVerification(t *testing.T) {
	sender := &MockSender{}
	svc := NewService(sender, nil)

	msg, err := svc.SendVerification(context.Background(), VerificationParams{
		Email:            " ana@example.com ",
		Name:             "Ana",
		VerificationLink: "https://nestfin.app/verify?t=abc",
	})
	if err != nil {
		t.Fatalf("SendVerification() error = %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	if msg.To != "ana@example.com" {
		t.Errorf("To = %q", msg.To)
	}
	if msg.Kind != KindVerification {
		t.Errorf("Kind = %q", msg.Kind)
	}
	if msg.Subject != messages.Default().Verification.Subject {
		t.Errorf("Subject = %q, want default", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Ana") || !strings.Contains(msg.Body, "https://nestfin.app/verify?t=abc") {
		t.Errorf("Body = %q, want name and link rendered", msg.Body)
	}
	if strings.Contains(msg.Body, "{{") {
		t.Errorf("Body = %q, has unrendered placeholder", msg.Body)
	}
}

func TestService_SendVerification_CustomSubject(t *testing.T) {
	svc := NewService(&MockSender{}, nil)

	msg, err := svc.SendVerification(context.Background(), VerificationParams{
		Email:            "ana@example.com",
		Subject:          "Welcome aboard",
		VerificationLink: "https://nestfin.app/v",
	})
	if err != nil {
		t.Fatalf("SendVerification() error = %v", err)
	}
	if msg.Subject != "Welcome aboard" {
		t.Errorf("Subject = %q, want custom subject", msg.Subject)
	}
	if !strings.Contains(msg.Body, "ana@example.com") {
		t.Errorf("Body = %q, want email used when name is blank", msg.Body)
	}
}

func TestService_Validation(t *testing.T) {
	sender := &MockSender{}
	svc := NewService(sender, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		send      func() error
		wantField string
	}{
		{
			name: "verification bad email",
			send: func() error {
				_, err := svc.SendVerification(ctx, VerificationParams{Email: "nope", VerificationLink: "x"})
				return err
			},
			wantField: "email",
		},
		{
			name: "verification disposable email",
			send: func() error {
				_, err := svc.SendVerification(ctx, VerificationParams{Email: "a@mailinator.com", VerificationLink: "x"})
				return err
			},
			wantField: "email",
		},
		{
			name: "verification missing link",
			send: func() error {
				_, err := svc.SendVerification(ctx, VerificationParams{Email: "ana@example.com"})
				return err
			},
			wantField: "verificationLink",
		},
		{
			name: "reset missing link",
			send: func() error {
				_, err := svc.SendPasswordReset(ctx, PasswordResetParams{Email: "ana@example.com", ResetLink: "  "})
				return err
			},
			wantField: "resetLink",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ve *validation.Error
			err := tt.send()
			if !errors.As(err, &ve) || ve.Field != tt.wantField {
				t.Errorf("error = %v, want validation error on %s", err, tt.wantField)
			}
		})
	}

	if len(sender.sent) != 0 {
		t.Errorf("sent %d messages for invalid input, want 0", len(sender.sent))
	}
}

func TestService_SendPasswordReset_SenderError(t *testing.T) {
	boom := errors.New("broker down")
	svc := NewService(&MockSender{SendFunc: func(ctx context.Context, msg Message) error { return boom }}, nil)

	_, err := svc.SendPasswordReset(context.Background(), PasswordResetParams{
		Email:     "ana@example.com",
		ResetLink: "https://nestfin.app/reset",
	})
	if !errors.Is(err, boom) {
		t.Errorf("SendPasswordReset() error = %v, want wrapped sender error", err)
	}
}

func TestService_CustomMessages(t *testing.T) {
	msgs := messages.Default()
	msgs.PasswordReset = messages.MessageText{Subject: "Reset", Body: "Go to {{link}}"}
	svc := NewService(&MockSender{}, msgs)

	msg, err := svc.SendPasswordReset(context.Background(), PasswordResetParams{
		Email:     "ana@example.com",
		ResetLink: "https://r",
	})
	if err != nil {
		t.Fatal(err)
	}
	if msg.Subject != "Reset" || msg.Body != "Go to https://r" {
		t.Errorf("got %q / %q", msg.Subject, msg.Body)
	}
}
