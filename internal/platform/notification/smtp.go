package notification

import (
	"context"

	"github.com/go-gomail/gomail"
)

// SMTPSender delivers email through an SMTP relay (the original setup
// targets smtp.gmail.com:587 with STARTTLS).
type SMTPSender struct {
	host string
	port int
	from string
	user string
	pass string
}

// NewSMTPSender builds an SMTPSender. Credentials come from
// configuration, never from the core's callers.
func NewSMTPSender(host string, port int, from, user, pass string) *SMTPSender {
	return &SMTPSender{host: host, port: port, from: from, user: user, pass: pass}
}

// SendEmail composes and delivers one message.
func (s *SMTPSender) SendEmail(_ context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	return d.DialAndSend(m)
}
