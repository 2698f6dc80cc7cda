package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/barberops/backend/config"
	"go.uber.org/zap"
)

// EmailSender delivers outbound mail. Implementations must be safe for
// concurrent use. Callers dispatching sends on their own goroutines get no
// delivery guarantee across shutdown; a send in flight when the process
// exits is lost.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMTPEmailService sends mail over plain SMTP with optional AUTH.
type SMTPEmailService struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewSMTPEmailService creates a new SMTP-backed email service
func NewSMTPEmailService(cfg config.SMTPConfig, logger *zap.Logger) *SMTPEmailService {
	return &SMTPEmailService{cfg: cfg, logger: logger}
}

// Send delivers a single plain-text message. Returns an error when SMTP is
// not configured or delivery fails.
func (s *SMTPEmailService) Send(to, subject, body string) error {
	if !s.cfg.Enabled() {
		return NewDomainError(ErrorTypeExternal, "email delivery failed", fmt.Errorf("smtp not configured"))
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(s.cfg.Addr(), auth, s.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return NewDomainError(ErrorTypeExternal, "email delivery failed", err)
	}

	s.logger.Debug("email sent",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

// NoopEmailService discards mail. Used when SMTP is not configured so that
// registration flows keep working in development.
type NoopEmailService struct {
	logger *zap.Logger
}

// NewNoopEmailService creates an email service that logs instead of sending
func NewNoopEmailService(logger *zap.Logger) *NoopEmailService {
	return &NoopEmailService{logger: logger}
}

// Send logs the message and drops it
func (s *NoopEmailService) Send(to, subject, body string) error {
	s.logger.Info("email delivery disabled, dropping message",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}
