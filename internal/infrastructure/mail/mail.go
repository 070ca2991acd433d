package mail

import (
	"gopkg.in/gomail.v2"

	"tienda-api/config"
)

type GomailSender struct {
	cfg config.SMTPConfig
}

func CreateGomailSender(cfg config.SMTPConfig) *GomailSender {
	return &GomailSender{cfg: cfg}
}

// Send opens an authenticated connection to the relay and sends one HTML
// message. There is no retry; the caller decides what a failure means.
func (s *GomailSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	return d.DialAndSend(m)
}
