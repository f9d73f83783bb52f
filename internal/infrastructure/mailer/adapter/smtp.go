package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"

	"github.com/shuerry/Connectify-sub000/internal/infrastructure/mailer/port"
)

// SMTPMailer sends mail through a plain SMTP relay using gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailerFromEnv constructs a mailer from SMTP_HOST, SMTP_PORT,
// SMTP_USER, SMTP_PASSWORD and SMTP_FROM environment variables.
func NewSMTPMailerFromEnv() (*SMTPMailer, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, errors.New("smtp: SMTP_HOST environment variable is not set")
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		return nil, errors.New("smtp: SMTP_FROM environment variable is not set")
	}

	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("smtp: parse SMTP_PORT: %w", err)
		}
		smtpPort = p
	}

	d := gomail.NewDialer(host, smtpPort, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD"))
	return &SMTPMailer{dialer: d, from: from}, nil
}

var _ port.Mailer = (*SMTPMailer)(nil)

// Send delivers one message. The context is honored only up-front; gomail
// dials synchronously, so callers should run Send off the request path.
func (m *SMTPMailer) Send(ctx context.Context, e port.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(e.To) == 0 {
		return errors.New("smtp: no recipients")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", e.To...)
	msg.SetHeader("Subject", e.Subject)
	msg.SetBody("text/plain", e.Body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp: send: %w", err)
	}
	return nil
}
