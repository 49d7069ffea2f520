package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// sendFunc delivers a message and returns the provider's message id.
type sendFunc func(params *resend.SendEmailRequest) (string, error)

type EmailService struct {
	send     sendFunc
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	client := resend.NewClient(apiKey)
	return &EmailService{
		send: func(params *resend.SendEmailRequest) (string, error) {
			resp, err := client.Emails.Send(params)
			if err != nil {
				return "", err
			}
			return resp.Id, nil
		},
		from:     from,
		fromName: fromName,
		logger:   logger.Named("email"),
	}
}

func (s *EmailService) SendWelcomeEmail(email, firstName string) error {
	s.logger.Info("sending welcome email", zap.String("email", email))

	html, err := s.parseTemplate("welcome.html", map[string]interface{}{
		"FirstName": firstName,
		"Email":     email,
		"Year":      time.Now().Year(),
	})
	if err != nil {
		s.logger.Error("failed to render welcome template", zap.String("email", email), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to Top Funders!",
		Html:    html,
	}

	id, err := s.send(params)
	if err != nil {
		s.logger.Error("failed to send welcome email", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("send welcome email: %w", err)
	}

	s.logger.Info("sent welcome email", zap.String("email", email), zap.String("id", id))
	return nil
}

func (s *EmailService) parseTemplate(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
