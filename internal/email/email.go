package email

import (
	"fmt"
	"net/smtp"
)

// Sender delivers transactional mail.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTP sends mail through a plain SMTP relay (no auth, MailHog-style in dev).
type SMTP struct {
	Host string
	Port string
	From string
}

func NewSMTP(host, port, from string) *SMTP {
	return &SMTP{Host: host, Port: port, From: from}
}

func (s *SMTP) Send(to, subject, body string) error {
	addr := s.Host + ":" + s.Port
	msg := "From: " + s.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body
	return smtp.SendMail(addr, nil, s.From, []string{to}, []byte(msg))
}

// OTPBody renders the verification mail for a one-time code.
func OTPBody(code string) string {
	return fmt.Sprintf("Your Shynora verification code is %s.\r\n\r\nIt expires in 10 minutes. If you did not request this, ignore this email.", code)
}
