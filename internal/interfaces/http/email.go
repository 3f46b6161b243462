package http

import (
	"errors"
	"log/slog"
	"net/http"

	"nestfin/internal/domain/email"
	"nestfin/internal/domain/validation"
	"nestfin/internal/shared/logger"
)

type EmailHandler struct {
	emails *email.Service
}

func NewEmailHandler(emails *email.Service) *EmailHandler {
	return &EmailHandler{emails: emails}
}

type VerificationEmailRequest struct {
	Email            string `json:"email"`
	Name             string `json:"name"`
	Subject          string `json:"subject,omitempty"`
	VerificationLink string `json:"verificationLink"`
}

type PasswordResetEmailRequest struct {
	Email     string `json:"email"`
	Subject   string `json:"subject,omitempty"`
	ResetLink string `json:"resetLink"`
}

// EmailResponse is the body of both email endpoints, success or not.
type EmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *EmailHandler) HandleSendVerification(w http.ResponseWriter, r *http.Request) {
	var req VerificationEmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, EmailResponse{Message: "Invalid request body"})
		return
	}

	_, err := h.emails.SendVerification(r.Context(), email.VerificationParams{
		Email:            req.Email,
		Name:             req.Name,
		Subject:          req.Subject,
		VerificationLink: req.VerificationLink,
	})
	h.respond(w, r, err, "Verification email sent")
}

func (h *EmailHandler) HandleSendPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req PasswordResetEmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, EmailResponse{Message: "Invalid request body"})
		return
	}

	_, err := h.emails.SendPasswordReset(r.Context(), email.PasswordResetParams{
		Email:     req.Email,
		Subject:   req.Subject,
		ResetLink: req.ResetLink,
	})
	h.respond(w, r, err, "Password reset email sent")
}

func (h *EmailHandler) respond(w http.ResponseWriter, r *http.Request, err error, okMessage string) {
	var ve *validation.Error
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, EmailResponse{Success: true, Message: okMessage})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, EmailResponse{Message: ve.Message})
	default:
		slog.ErrorContext(r.Context(), "email delivery failed", logger.FieldError, err)
		writeJSON(w, http.StatusInternalServerError, EmailResponse{Message: "Failed to send email"})
	}
}
