package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/config"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"
)

// Mailer delivers a single plain-text message. Implementations must be safe
// for concurrent use by the notification dispatcher.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpMailer struct {
	cfg config.MailConfig
}

// NewMailer returns an SMTP-backed mailer, or a log-only mailer when no SMTP
// host is configured so local environments work without a mail server.
func NewMailer(cfg config.MailConfig) Mailer {
	if strings.TrimSpace(cfg.Host) == "" {
		return &logMailer{from: cfg.From}
	}
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "mail send aborted")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return errs.Wrap(err, "failed to send mail")
	}
	return nil
}

type logMailer struct {
	from string
}

func (m *logMailer) Send(_ context.Context, to, subject, _ string) error {
	slog.Info("mail delivery skipped, no SMTP host configured",
		"from", m.from, "to", to, "subject", subject)
	return nil
}
