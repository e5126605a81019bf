// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package functions

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/xwalt19/webblog-sub001/internal/i18n"
)

// EmailSender delivers a contact form submission.
type EmailSender interface {
	Send(ctx context.Context, name, email, message string) error
}

// ResendSender sends contact emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	to     string
}

// NewResendSender creates a sender delivering to the configured inbox.
func NewResendSender(apiKey, from, to string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

// Send delivers one contact submission. The visitor's address goes in
// Reply-To so staff can answer directly.
func (s *ResendSender) Send(ctx context.Context, name, email, message string) error {
	body := fmt.Sprintf(
		"<p><strong>Nama:</strong> %s</p><p><strong>Email:</strong> %s</p><p>%s</p>",
		html.EscapeString(name),
		html.EscapeString(email),
		strings.ReplaceAll(html.EscapeString(message), "\n", "<br>"),
	)

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		ReplyTo: email,
		Subject: "Pesan baru dari formulir kontak: " + name,
		Html:    body,
	})
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("contact email sent", "category", "function", "message_id", sent.Id)
	return nil
}

// ContactRequest is the body of POST /functions/send-contact-email.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SendContactEmail returns the contact form handler. A nil sender means the
// Resend API key is not configured; submissions then fail with a
// configuration error rather than silently dropping mail.
func SendContactEmail(sender EmailSender) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if !decodeFnJSON(w, r, &req) {
			return
		}
		if req.Name == "" || req.Email == "" || req.Message == "" {
			writeFnError(w, http.StatusBadRequest, "name, email and message are required")
			return
		}

		if sender == nil {
			slog.Error("contact email requested but no API key configured", "category", "function")
			writeFnError(w, http.StatusInternalServerError, "email service is not configured")
			return
		}

		if err := sender.Send(r.Context(), req.Name, req.Email, req.Message); err != nil {
			slog.Error("failed to send contact email", "category", "function", "error", err)
			writeFnError(w, http.StatusInternalServerError, err.Error())
			return
		}

		lang := i18n.MatchLanguage(r.Header.Get("Accept-Language"))
		writeFnJSON(w, http.StatusOK, map[string]string{
			"message": i18n.T(lang, "contact.sent"),
		})
	})
}
