package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("email service is not configured")

// Config holds SMTP settings.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
}

// Dialer abstracts gomail.Dialer so tests can capture messages.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	cfg    Config
	dialer Dialer
}

// OTPEmailData holds the data for verification code emails
type OTPEmailData struct {
	Name          string
	Code          string
	ExpiryMinutes int
}

func NewEmailService(cfg Config) *EmailService {
	return &EmailService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// NewEmailServiceWithDialer is used by tests.
func NewEmailServiceWithDialer(cfg Config, dialer Dialer) *EmailService {
	return &EmailService{cfg: cfg, dialer: dialer}
}

const otpEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Your verification code</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .code { font-size: 32px; letter-spacing: 6px; font-weight: bold; color: #0066cc; }
        .footer { padding-top: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <p>Hi {{.Name}},</p>
        <p>Use the code below to verify your account:</p>
        <p class="code">{{.Code}}</p>
        <p>The code expires in {{.ExpiryMinutes}} minutes.</p>
        <div class="footer">If you did not create an account, you can ignore this email.</div>
    </div>
</body>
</html>`

var otpTmpl = template.Must(template.New("otp").Parse(otpEmailTemplate))

// Send delivers one HTML message.
func (s *EmailService) Send(to, subject, htmlBody string) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOTP renders and sends a verification code.
func (s *EmailService) SendOTP(to, name, code string) error {
	var body bytes.Buffer
	if err := otpTmpl.Execute(&body, OTPEmailData{Name: name, Code: code, ExpiryMinutes: 10}); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}
	return s.Send(to, "Your verification code", body.String())
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.FromEmail != ""
}
