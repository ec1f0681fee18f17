package notify

import (
	"fmt"

	"storefront/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers best-effort notifications. Callers fire it from a
// goroutine and only log failures; a lost email never fails the request
// that triggered it.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

type noopMailer struct {
	log *zap.Logger
}

// NewMailer returns an SMTP mailer, or a no-op mailer when no SMTP host is
// configured (local development).
func NewMailer(config utils.EmailConfig, log *zap.Logger) Mailer {
	if config.Host == "" {
		log.Info("SMTP not configured, email notifications disabled")
		return &noopMailer{log: log.With(zap.String("mailer", "noop"))}
	}

	return &smtpMailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   config.From,
		log:    log.With(zap.String("mailer", "smtp")),
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	return nil
}

func (m *noopMailer) Send(to, subject, body string) error {
	m.log.Debug("Email skipped",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
