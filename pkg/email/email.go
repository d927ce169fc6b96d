package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	tmpl   *template.Template
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{
		config: config,
		send:   smtp.SendMail,
		tmpl:   template.Must(template.New("welcome").Parse(welcomeTemplate)),
	}
}

// IsConfigured reports whether an SMTP host and sender are set
func (s *EmailService) IsConfigured() bool {
	return s.config.SMTPHost != "" && s.config.FromEmail != ""
}

// SendWelcomeEmail greets an operator after their first sign-in
func (s *EmailService) SendWelcomeEmail(toEmail, name string) error {
	if !s.IsConfigured() {
		return nil
	}

	htmlContent, err := s.renderWelcomeEmail(name)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	message := s.buildHTMLEmail(toEmail, "Welcome to Yumzee", htmlContent)
	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := s.send(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func (s *EmailService) renderWelcomeEmail(name string) (string, error) {
	data := struct {
		Name     string
		StartURL string
	}{
		Name:     name,
		StartURL: s.config.FrontendURL + "/home",
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const welcomeTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Welcome to Yumzee</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2 style="color: #ff6600;">Welcome to Yumzee, {{.Name}}!</h2>
    <p>Your account is ready. You can now take table orders, settle bills by UPI or cash,
    record daily expenses and keep an eye on today's sales.</p>
    <ul>
        <li><strong>Orders and expenses</strong> in one place</li>
        <li><strong>Menu updates</strong> with a single form</li>
        <li><strong>Sales reports</strong> for today, yesterday and the month</li>
    </ul>
    <p style="text-align: center;">
        <a href="{{.StartURL}}" style="background-color: #ff6600; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 5px; font-weight: bold;">Get started</a>
    </p>
    <p>The Yumzee Team</p>
</body>
</html>
`
