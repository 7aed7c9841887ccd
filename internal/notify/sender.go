package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/senyabanana/rfq-service/internal/router/config"

	"github.com/rs/zerolog"
)

// Sender delivers a fully formed email message.
type Sender interface {
	Send(ctx context.Context, to []string, subject string, body []byte) error
}

// SMTPSender implements Sender over net/smtp.
type SMTPSender struct {
	cfg  config.Config
	auth smtp.Auth
	addr string
}

// NewSMTPSender creates a Sender backed by the configured SMTP relay. When no
// SMTP host is configured it falls back to a logging sender.
func NewSMTPSender(cfg config.Config, logger zerolog.Logger) Sender {
	if cfg.SmtpHost == "" {
		logger.Info().Msg("SMTP host not configured, using logging email sender")
		return &LoggingSender{logger: logger}
	}

	auth := smtp.PlainAuth("", cfg.SmtpUsername, cfg.SmtpPassword, cfg.SmtpHost)
	return &SMTPSender{
		cfg:  cfg,
		auth: auth,
		addr: fmt.Sprintf("%s:%d", cfg.SmtpHost, cfg.SmtpPort),
	}
}

// Send sends an email through the SMTP relay.
func (s *SMTPSender) Send(ctx context.Context, to []string, subject string, body []byte) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.cfg.SmtpFromAddress, to[0], subject, body)
	if err := smtp.SendMail(s.addr, s.auth, s.cfg.SmtpFromAddress, to, []byte(msg)); err != nil {
		return fmt.Errorf("smtp error: %w", err)
	}
	return nil
}

// LoggingSender logs email details instead of sending. Used in development.
type LoggingSender struct {
	logger zerolog.Logger
}

// Send logs the email instead of delivering it.
func (s *LoggingSender) Send(ctx context.Context, to []string, subject string, body []byte) error {
	s.logger.Info().
		Strs("to", to).
		Str("subject", subject).
		Str("body", string(body)).
		Msg("email (logged, not sent)")
	return nil
}
