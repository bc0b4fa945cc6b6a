package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Mailer delivers portal notifications over email. Delivery is best
// effort; callers log and continue on failure.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type smtpMailer struct {
	cfg    SMTPConfig
	logger *zap.Logger
}

func NewSMTPMailer(cfg SMTPConfig, logger ...*zap.Logger) Mailer {
	l := zap.L().Named("mailer.smtp")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mailer.smtp")
	}
	return &smtpMailer{cfg: cfg, logger: l}
}

func (m *smtpMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, to, []byte(msg)); err != nil {
		m.logger.Error("smtp send failed",
			zap.Strings("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}
	return nil
}

type logMailer struct {
	logger *zap.Logger
}

// NewLogMailer writes outgoing mail to the log instead of the wire. Used
// in local development where no SMTP relay exists.
func NewLogMailer(logger ...*zap.Logger) Mailer {
	l := zap.L().Named("mailer.log")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mailer.log")
	}
	return &logMailer{logger: l}
}

func (m *logMailer) Send(ctx context.Context, to []string, subject, body string) error {
	m.logger.Info("mail",
		zap.Strings("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
