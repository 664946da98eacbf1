// Package mailer sends the final application email over SMTP.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string, attachments ...string) error
}

type SMTPSender struct {
	host     string
	port     int
	from     string
	fromName string
	passkey  string
}

func NewSMTPSender(host string, port int, from, fromName, passkey string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		from:     from,
		fromName: fromName,
		passkey:  passkey,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string, attachments ...string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, s.fromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	for _, attachment := range attachments {
		m.Attach(attachment)
	}

	d := gomail.NewDialer(s.host, s.port, s.from, s.passkey)
	d.SSL = s.port == 465

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email to %s: %w", to, err)
	}

	slog.Info("email sent", "to", to, "subject", subject, "attachments", len(attachments))
	return nil
}
