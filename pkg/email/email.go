package email

import (
	"fmt"
	"net/smtp"
)

// Sender delivers plain text mail over SMTP. The reminder digest is the only
// caller; a zero Host disables sending.
type Sender struct {
	Host     string
	Port     string
	From     string
	Password string
}

func (s Sender) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// Send sends a plain text email using SMTP.
func (s Sender) Send(to, subject, body string) error {
	if !s.Enabled() {
		return fmt.Errorf("smtp sender is not configured")
	}

	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	address := s.Host + ":" + s.Port

	if err := smtp.SendMail(address, auth, s.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
