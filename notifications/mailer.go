package notifications

import (
	"gopkg.in/gomail.v2"
)

// SMTPSender delivers mail over SMTP.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(to, subject, text, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	if html != "" {
		m.AddAlternative("text/html", html)
	}
	return s.dialer.DialAndSend(m)
}

// NoopSender drops every message. Used when SMTP is not configured so the
// rest of the system behaves identically in development.
type NoopSender struct{}

func (NoopSender) Send(to, subject, text, html string) error { return nil }
