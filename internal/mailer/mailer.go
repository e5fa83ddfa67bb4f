package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer is the outbound notification contract: fire-and-forget, no
// completion signal, no retry. Nothing in the core relies on a result.
type Mailer interface {
	Send(subject, htmlBody string, to []string)
}

// SMTPMailer delivers mail over plain SMTP from a background goroutine so
// the request path never waits on the mail server.
type SMTPMailer struct {
	addr     string
	host     string
	sender   string
	username string
	password string
	log      *slog.Logger
}

func NewSMTPMailer(host string, port int, username, password, sender string, logger *slog.Logger) *SMTPMailer {
	if logger == nil {
		logger = slog.Default()
	}
	if sender == "" {
		sender = "no-reply@localhost"
	}
	return &SMTPMailer{
		addr:     fmt.Sprintf("%s:%d", host, port),
		host:     host,
		sender:   sender,
		username: username,
		password: password,
		log:      logger,
	}
}

func (m *SMTPMailer) Send(subject, htmlBody string, to []string) {
	if len(to) == 0 {
		return
	}
	go func() {
		var auth smtp.Auth
		if m.username != "" && m.password != "" {
			auth = smtp.PlainAuth("", m.username, m.password, m.host)
		}
		msg := []byte(
			fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", m.sender, strings.Join(to, "; "), subject) +
				"MIME-Version: 1.0\r\n" +
				"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
				htmlBody,
		)
		if err := smtp.SendMail(m.addr, auth, m.sender, to, msg); err != nil {
			m.log.Warn("mail send failed", "to", to, "subject", subject, "error", err)
		}
	}()
}

// Noop discards every message. Used when no SMTP server is configured.
type Noop struct{}

func (Noop) Send(string, string, []string) {}
