// Package email provides the SMTP implementation of the notification mailer.
package email

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/Experiencepwunkr/globomail/internal/config"
	"github.com/Experiencepwunkr/globomail/internal/notify"
)

// SMTPMailer delivers notifications over SMTP with text and HTML alternatives
type SMTPMailer struct {
	dialer      *gomail.Dialer
	fromAddress string
	fromName    string
	logger      *slog.Logger
}

// NewSMTPMailer creates a mailer from the SMTP configuration
func NewSMTPMailer(logger *slog.Logger, cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		logger:      logger,
	}
}

// Send delivers one message. Each call dials a fresh connection; the portal's
// notification volume does not justify connection reuse.
func (m *SMTPMailer) Send(msg notify.Message) error {
	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.fromAddress, m.fromName)
	gm.SetAddressHeader("To", msg.To, msg.ToName)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.TextBody)
	gm.AddAlternative("text/html", msg.HTMLBody)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}

	m.logger.Debug("Mail sent", "recipient", msg.To, "subject", msg.Subject)
	return nil
}
