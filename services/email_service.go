package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

type EmailServiceInterface interface {
	SendVerificationEmail(to, token string) error
	SendPasswordResetEmail(to, token string) error
}

// EmailService sends account mail over SMTP. When no SMTP host is configured
// it logs and drops the mail instead, so the API works in environments
// without an outbound mail transport.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(host string, port int, user, password, from string) *EmailService {
	svc := &EmailService{from: from}
	if host != "" {
		svc.dialer = gomail.NewDialer(host, port, user, password)
	}
	return svc
}

func (s *EmailService) SendVerificationEmail(to, token string) error {
	body := fmt.Sprintf(`
		<h3>Welcome to TaskHive</h3>
		<p>Thank you for registering. Use the following token to verify your email address:</p>
		<p><strong>%s</strong></p>
	`, token)
	return s.send(to, "Verify your email address", body)
}

func (s *EmailService) SendPasswordResetEmail(to, token string) error {
	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for your account.</p>
		<p>Use the following token to reset your password: <strong>%s</strong></p>
		<p>The token expires in 10 minutes. If you did not request this change, you can ignore this email.</p>
	`, token)
	return s.send(to, "Password reset request", body)
}

func (s *EmailService) send(to, subject, body string) error {
	if s.dialer == nil {
		log.Printf("SMTP not configured, dropping mail %q to %s", subject, to)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send %q to %s: %w", subject, to, err)
	}
	return nil
}

var EmailServiceInstance EmailServiceInterface
