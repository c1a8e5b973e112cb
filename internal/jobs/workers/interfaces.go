package workers

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=workers

import (
	"adcraft-server/internal/email"
	"adcraft-server/internal/publishing/processor"
	"adcraft-server/internal/store"
	"context"

	"github.com/google/uuid"
)

// Reconciler polls Meta for review decisions
type Reconciler interface {
	ReconcileAd(ctx context.Context, adID uuid.UUID) (store.Ad, error)
	ReconcilePending(ctx context.Context, limit int) (processor.ReconcileSummary, error)
}

// NotificationStore loads what a review email needs
type NotificationStore interface {
	GetAdByID(ctx context.Context, adID uuid.UUID) (store.Ad, error)
	GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error)
	GetCampaignOwner(ctx context.Context, campaignID uuid.UUID) (store.User, error)
}

// ReviewNotifier sends review outcome emails
type ReviewNotifier interface {
	SendAdApprovedEmail(ctx context.Context, to string, data email.ReviewEmailData) error
	SendAdRejectedEmail(ctx context.Context, to string, data email.ReviewEmailData) error
}
