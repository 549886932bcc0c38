package mail

import (
	"fmt"
	"net/smtp"
)

type Config struct {
	From     string
	Password string
	Host     string
	Port     string
}

type Mailer struct {
	cfg Config
}

// Default is wired up at startup. Callers that only need best-effort
// delivery go through Send, which tolerates a missing mailer.
var Default *Mailer

func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m.cfg.Host == "" || m.cfg.From == "" {
		return fmt.Errorf("smtp not configured")
	}

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.From, []string{to}, message)
	if err != nil {
		fmt.Println("❌ SMTP error:", err)
	}
	return err
}

// Send delivers through the default mailer.
func Send(to, subject, body string) error {
	if Default == nil {
		return fmt.Errorf("mailer not configured")
	}
	return Default.Send(to, subject, body)
}
