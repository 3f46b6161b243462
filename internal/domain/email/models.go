package email

import (
	"strings"

	"nestfin/internal/domain/validation"
)

// Kind identifies the template a message was rendered from.
type Kind string

const (
	KindVerification  Kind = "verification"
	KindPasswordReset Kind = "password_reset"
)

// Message is a rendered email ready to hand to a Sender.
type Message struct {
	Kind    Kind   `json:"kind"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type VerificationParams struct {
	Email            string
	Name             string
	Subject          string
	VerificationLink string
}

func (p *VerificationParams) Validate() error {
	p.Email = strings.TrimSpace(p.Email)
	p.Name = strings.TrimSpace(p.Name)
	p.VerificationLink = strings.TrimSpace(p.VerificationLink)

	if ok, msg := validation.Email(p.Email); !ok {
		return validation.NewError("email", msg)
	}
	return validation.Required("verificationLink", p.VerificationLink)
}

type PasswordResetParams struct {
	Email     string
	Subject   string
	ResetLink string
}

func (p *PasswordResetParams) Validate() error {
	p.Email = strings.TrimSpace(p.Email)
	p.ResetLink = strings.TrimSpace(p.ResetLink)

	if ok, msg := validation.Email(p.Email); !ok {
		return validation.NewError("email", msg)
	}
	return validation.Required("resetLink", p.ResetLink)
}
