package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Storer defines all public methods available on the Store
type Storer interface {
	// Ad operations
	GetAdByID(ctx context.Context, adID uuid.UUID) (Ad, error)
	GetAdByMetaAdID(ctx context.Context, metaAdID string) (Ad, error)
	BeginPublishAttempt(ctx context.Context, adID uuid.UUID) (Ad, error)
	MarkAdSubmitted(ctx context.Context, params MarkAdSubmittedParams) (Ad, error)
	MarkAdPublishFailed(ctx context.Context, params MarkAdPublishFailedParams) (Ad, error)
	ApplyAdReviewState(ctx context.Context, params ApplyAdReviewStateParams) (Ad, error)
	SetAdStatus(ctx context.Context, adID uuid.UUID, status AdStatus, entry StatusHistoryEntry) (Ad, error)
	ListAdsPendingReview(ctx context.Context, limit int) ([]Ad, error)
	ListStalledSubmissions(ctx context.Context, olderThan time.Time, limit int) ([]Ad, error)

	// Publishing metadata operations
	GetPublishingMetadata(ctx context.Context, adID uuid.UUID) (PublishingMetadata, error)
	RecordStatusCheckFailure(ctx context.Context, adID uuid.UUID, checkedAt time.Time) error

	// Meta connection operations
	GetMetaConnectionByCampaignID(ctx context.Context, campaignID uuid.UUID) (MetaConnection, error)
	UpsertMetaConnectionToken(ctx context.Context, params UpsertMetaConnectionTokenParams) (MetaConnection, error)
	UpdateMetaConnectionAssets(ctx context.Context, params UpdateMetaConnectionAssetsParams) (MetaConnection, error)
	MarkMetaPaymentConnected(ctx context.Context, campaignID uuid.UUID) error

	// Campaign operations
	GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (Campaign, error)
	GetCampaignOwner(ctx context.Context, campaignID uuid.UUID) (User, error)
}

var _ Storer = (*Store)(nil)
