package mail

import (
	"adcraft-server/internal/observability"
	"context"
	"errors"
	"fmt"

	"github.com/resendlabs/resend-go"
)

// ErrMailDisabled is returned when no Resend API key is configured
var ErrMailDisabled = errors.New("mail delivery is not configured")

type ResendClient struct {
	client *resend.Client
	logger *observability.Logger
}

// NewResendClient creates a Resend client. An empty API key yields a client
// whose SendEmail returns ErrMailDisabled.
func NewResendClient(apiKey string, logger *observability.Logger) (*ResendClient, error) {
	if apiKey == "" {
		logger.Info(context.Background(), "Resend API key not set, email delivery disabled")
		return &ResendClient{logger: logger}, nil
	}

	client := resend.NewClient(apiKey)
	if client == nil {
		return nil, fmt.Errorf("failed to create Resend client")
	}

	return &ResendClient{
		client: client,
		logger: logger,
	}, nil
}

// Enabled reports whether emails are actually delivered
func (c *ResendClient) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *ResendClient) SendEmail(ctx context.Context, from, to, subject, htmlContent string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_to", Value: to},
		observability.Field{Key: "email_subject", Value: subject},
	)

	if !c.Enabled() {
		return "", ErrMailDisabled
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlContent,
	}

	res, err := c.client.Emails.Send(params)
	if err != nil {
		c.logger.Error(ctx, "failed to send email", err)
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Info(ctx, "email sent successfully")
	return res.Id, nil
}
