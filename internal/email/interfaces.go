package email

import (
	"context"
)

// mailSender is implemented by mail.ResendClient
type mailSender interface {
	SendEmail(ctx context.Context, from, to, subject, htmlContent string) (string, error)
}

// ReviewNotifier defines the review outcome emails sent to campaign owners
type ReviewNotifier interface {
	// SendAdApprovedEmail tells the owner their ad passed Meta's review
	SendAdApprovedEmail(ctx context.Context, to string, data ReviewEmailData) error

	// SendAdRejectedEmail tells the owner Meta disapproved their ad and why
	SendAdRejectedEmail(ctx context.Context, to string, data ReviewEmailData) error
}

var _ ReviewNotifier = (*EmailService)(nil)
