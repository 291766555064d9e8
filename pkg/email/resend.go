package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

func currentYear() int {
	return time.Now().Year()
}

// Inline templates, one per canned notification.
const invitationTemplate = `
<html>
  <body>
    <h1>You are invited to {{.EventName}}</h1>
    <p>Join the guests of {{.EventName}} on Celebra.</p>
    <p><a href="{{.InvitationLink}}">Accept invitation</a></p>
    <p>&copy; {{.Year}} Celebra</p>
  </body>
</html>`

const welcomeTemplate = `
<html>
  <body>
    <h1>Welcome to Celebra, {{.Name}}!</h1>
    <p>Your account has been created successfully.</p>
    <p>&copy; {{.Year}} Celebra</p>
  </body>
</html>`

const passwordResetTemplate = `
<html>
  <body>
    <h1>Password Reset</h1>
    <p>Click the link below to reset your password:</p>
    <p><a href="{{.ResetLink}}">Reset password</a></p>
    <p>If you did not request this, you can ignore this email.</p>
    <p>&copy; {{.Year}} Celebra</p>
  </body>
</html>`

var templates = template.Must(template.New("invitation").Parse(invitationTemplate))

func init() {
	template.Must(templates.New("welcome").Parse(welcomeTemplate))
	template.Must(templates.New("password-reset").Parse(passwordResetTemplate))
}

type Config struct {
	APIKey      string
	FromAddress string
	FromName    string
}

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.SugaredLogger
}

func NewEmailService(cfg Config, logger *zap.SugaredLogger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(cfg.APIKey),
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

// Send delivers a single email through the provider and returns the
// provider's message id. Failures wrap the provider error; there is no
// retry or delivery tracking.
func (s *EmailService) Send(to, subject, html, text string) (string, error) {
	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if text != "" {
		params.Text = text
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Errorw("failed to send email", "to", to, "subject", subject, "error", err)
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infow("email sent", "to", to, "subject", subject, "id", resp.Id)
	return resp.Id, nil
}

func (s *EmailService) SendInvitationEmail(to, eventName, invitationLink string) error {
	html, err := s.render("invitation", map[string]interface{}{
		"EventName":      eventName,
		"InvitationLink": invitationLink,
		"Year":           currentYear(),
	})
	if err != nil {
		return err
	}

	_, err = s.Send(to, fmt.Sprintf("Invitation to %s", eventName), html, "")
	return err
}

func (s *EmailService) SendWelcomeEmail(to, name string) error {
	html, err := s.render("welcome", map[string]interface{}{
		"Name": name,
		"Year": currentYear(),
	})
	if err != nil {
		return err
	}

	_, err = s.Send(to, "Welcome to Celebra", html, "")
	return err
}

func (s *EmailService) SendPasswordResetEmail(to, resetLink string) error {
	html, err := s.render("password-reset", map[string]interface{}{
		"ResetLink": resetLink,
		"Year":      currentYear(),
	})
	if err != nil {
		return err
	}

	_, err = s.Send(to, "Password Reset - Celebra", html, "")
	return err
}

func (s *EmailService) render(name string, data map[string]interface{}) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		s.logger.Errorw("failed to render email template", "template", name, "error", err)
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return body.String(), nil
}
