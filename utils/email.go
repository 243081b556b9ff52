package utils

import (
	"bytes"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/NakibIheb20/carthatamaz-platform/config"
)

type EmailData struct {
	Subject string
	Text    string
	Email   string
}

func SendEmail(data *EmailData, cfg *config.Config, logger *logrus.Logger) error {
	var body bytes.Buffer
	body.WriteString(data.Text)

	m := gomail.NewMessage()

	m.SetHeader("From", cfg.EmailFrom)
	m.SetHeader("To", data.Email)
	m.SetHeader("Subject", data.Subject)
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)

	err := d.DialAndSend(m)
	if err != nil {
		logger.WithFields(logrus.Fields{"path": "utils/email"}).Error("Could not send email: ", err)
		return err
	}
	return nil
}
