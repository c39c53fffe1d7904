// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

// Package mailer sends transactional plain-text email over SMTP.
// Delivery is best-effort: sends run in a goroutine and failures are
// logged, never surfaced to the request that triggered them.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends plain-text mail through a single SMTP relay.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// New creates a Mailer. Returns nil if host or from are empty, allowing
// the app to start without mail configured; callers must nil-check.
func New(host string, port int, username, password, from string) *Mailer {
	if host == "" || from == "" {
		return nil
	}
	return &Mailer{host: host, port: port, username: username, password: password, from: from}
}

// Send delivers a plain-text message synchronously.
func (m *Mailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// SendAsync delivers a message in the background, logging failures.
// Safe to call on a nil Mailer (no-op when mail is not configured).
func (m *Mailer) SendAsync(to, subject, body string) {
	if m == nil {
		return
	}
	go func() {
		if err := m.Send(to, subject, body); err != nil {
			slog.Error("mail delivery failed", "to", to, "subject", subject, "error", err)
		}
	}()
}

// SendVerificationCode emails a settings-change verification code.
func (m *Mailer) SendVerificationCode(to, code string) {
	m.SendAsync(to, "Nexus Engineering verification code",
		fmt.Sprintf("Your verification code is: %s\n\nIt expires in 15 minutes. If you did not request this change, ignore this email.", code))
}

// SendApplicationReceived notifies an applicant that their application
// was recorded.
func (m *Mailer) SendApplicationReceived(to, name, jobTitle string) {
	m.SendAsync(to, "Application received - "+jobTitle,
		fmt.Sprintf("Hi %s,\n\nWe received your application for %s. Our team will review it and get back to you.\n\nNexus Engineering", name, jobTitle))
}

// SendNewApplicationAlert tells the hiring inbox that a job received a
// new application.
func (m *Mailer) SendNewApplicationAlert(to, applicant, jobTitle string) {
	m.SendAsync(to, "New Job Application Received - "+jobTitle,
		fmt.Sprintf("%s applied for %s. Review the application in the admin dashboard.", applicant, jobTitle))
}
