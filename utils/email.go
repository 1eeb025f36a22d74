package utils

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/jordan-wright/email"
)

// SendRegistrationMail notifies the instructor that a team registered.
// Callers treat failures as best-effort: log and move on.
func SendRegistrationMail(to string, teamNumber int, teamName string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	if host == "" || port == "" || user == "" || pass == "" || from == "" {
		return errors.New("smtp config missing")
	}
	if to == "" {
		return errors.New("no recipient configured")
	}

	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Team %d registered", teamNumber)
	body := fmt.Sprintf("Team %d registered on ClassVault", teamNumber)
	if teamName != "" {
		body += fmt.Sprintf(" as %q", teamName)
	}
	e.Text = []byte(body + ".")

	addr := host + ":" + port
	auth := smtp.PlainAuth("", user, pass, host)
	tlsConfig := &tls.Config{ServerName: host}
	useTLS := strings.EqualFold(os.Getenv("SMTP_TLS"), "true") ||
		os.Getenv("SMTP_TLS") == "1" ||
		port == "465"

	if useTLS {
		return e.SendWithTLS(addr, auth, tlsConfig)
	}
	return e.Send(addr, auth)
}
