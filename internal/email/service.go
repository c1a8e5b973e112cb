package email

import (
	"adcraft-server/internal/observability"
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

var (
	ErrSendingEmail  = errors.New("error sending email")
	ErrEmptyTemplate = errors.New("email template is empty")
)

// EmailService renders and sends review outcome emails
type EmailService struct {
	mailClient    mailSender
	logger        *observability.Logger
	defaultSender string
	templates     map[string]*template.Template
}

// ReviewEmailData represents the data available to review templates
type ReviewEmailData struct {
	FirstName       string
	CampaignName    string
	AdName          string
	MetaAdID        string
	Reason          string
	SuggestedAction string
	AdLink          string
}

var templateSources = map[string]string{
	"ad_approved": `
	<html>
		<body>
			<h1>Your ad is live</h1>
			<p>Hi {{.FirstName}},</p>
			<p>Meta approved <strong>{{.AdName}}</strong> in your {{.CampaignName}} campaign. It can start delivering now.</p>
			<p><a href="{{.AdLink}}" style="background-color: #2563EB; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View ad</a></p>
		</body>
	</html>
	`,
	"ad_rejected": `
	<html>
		<body>
			<h1>Meta didn't approve your ad</h1>
			<p>Hi {{.FirstName}},</p>
			<p><strong>{{.AdName}}</strong> in your {{.CampaignName}} campaign was not approved.</p>
			{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
			{{if .SuggestedAction}}<p>{{.SuggestedAction}}</p>{{end}}
			<p><a href="{{.AdLink}}">Edit your ad</a></p>
		</body>
	</html>
	`,
}

// New creates a new EmailService
func New(mailClient mailSender, defaultSender string, logger *observability.Logger) (*EmailService, error) {
	templates := make(map[string]*template.Template, len(templateSources))
	for name, src := range templateSources {
		tmpl, err := template.New(name).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &EmailService{
		mailClient:    mailClient,
		logger:        logger,
		defaultSender: defaultSender,
		templates:     templates,
	}, nil
}

// renderTemplate renders a template with the provided data
func (s *EmailService) renderTemplate(templateName string, data ReviewEmailData) (string, error) {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (s *EmailService) send(ctx context.Context, emailType, to, subject string, data ReviewEmailData) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_type", Value: emailType},
		observability.Field{Key: "recipient", Value: to},
		observability.Field{Key: "meta_ad_id", Value: data.MetaAdID},
	)

	htmlContent, err := s.renderTemplate(emailType, data)
	if err != nil {
		s.logger.Error(ctx, "failed to render email template", err)
		return fmt.Errorf("%w: %s", ErrEmptyTemplate, err.Error())
	}

	if _, err := s.mailClient.SendEmail(ctx, s.defaultSender, to, subject, htmlContent); err != nil {
		s.logger.Error(ctx, "failed to send email", err)
		return fmt.Errorf("%w: %w", ErrSendingEmail, err)
	}

	return nil
}

// SendAdApprovedEmail sends the approval notice
func (s *EmailService) SendAdApprovedEmail(ctx context.Context, to string, data ReviewEmailData) error {
	return s.send(ctx, "ad_approved", to, fmt.Sprintf("Your ad \"%s\" was approved", data.AdName), data)
}

// SendAdRejectedEmail sends the rejection notice with Meta's reason
func (s *EmailService) SendAdRejectedEmail(ctx context.Context, to string, data ReviewEmailData) error {
	return s.send(ctx, "ad_rejected", to, fmt.Sprintf("Your ad \"%s\" needs changes", data.AdName), data)
}
