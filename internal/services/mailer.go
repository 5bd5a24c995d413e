package services

import (
	"strconv"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers notification mail through the configured relay.
// Credentials come from configuration only.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	p, err := strconv.Atoi(port)
	if err != nil {
		p = 587
	}
	if from == "" {
		from = username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, p, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
