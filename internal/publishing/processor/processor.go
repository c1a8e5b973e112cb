package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"adcraft-server/internal/clients/metagraph"
	redisClient "adcraft-server/internal/clients/redis"
	connectionProcessor "adcraft-server/internal/connection/processor"
	"adcraft-server/internal/events"
	"adcraft-server/internal/observability"
	"adcraft-server/internal/publisherrors"
	"adcraft-server/internal/store"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublishingStore defines the database operations required by PublishingProcessor
type PublishingStore interface {
	GetAdByID(ctx context.Context, adID uuid.UUID) (store.Ad, error)
	GetAdByMetaAdID(ctx context.Context, metaAdID string) (store.Ad, error)
	GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error)
	BeginPublishAttempt(ctx context.Context, adID uuid.UUID) (store.Ad, error)
	MarkAdSubmitted(ctx context.Context, params store.MarkAdSubmittedParams) (store.Ad, error)
	MarkAdPublishFailed(ctx context.Context, params store.MarkAdPublishFailedParams) (store.Ad, error)
	ApplyAdReviewState(ctx context.Context, params store.ApplyAdReviewStateParams) (store.Ad, error)
	GetPublishingMetadata(ctx context.Context, adID uuid.UUID) (store.PublishingMetadata, error)
	RecordStatusCheckFailure(ctx context.Context, adID uuid.UUID, checkedAt time.Time) error
	ListAdsPendingReview(ctx context.Context, limit int) ([]store.Ad, error)
	ListStalledSubmissions(ctx context.Context, olderThan time.Time, limit int) ([]store.Ad, error)
}

// GraphClient defines the Meta Graph operations used for publishing and review tracking
type GraphClient interface {
	CreateAdCreative(ctx context.Context, token string, p metagraph.CreateAdCreativeParams) (string, error)
	CreateAd(ctx context.Context, token string, p metagraph.CreateAdParams) (string, error)
	GetAd(ctx context.Context, token, adID string) (metagraph.Ad, error)
	GetAdInsights(ctx context.Context, token, adID, datePreset string) (metagraph.Insights, error)
}

// ConnectionManager resolves the campaign's Meta credentials and selected assets
type ConnectionManager interface {
	GetToken(ctx context.Context, campaignID uuid.UUID) (connectionProcessor.Token, error)
	GetConnectionStatus(ctx context.Context, campaignID uuid.UUID) (connectionProcessor.ConnectionStatus, error)
}

// Locker serializes work per key across server instances
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error
}

// JobQueue schedules follow-up background work
type JobQueue interface {
	EnqueueAdReconcile(ctx context.Context, adID uuid.UUID, delay time.Duration) error
	EnqueueReviewNotification(ctx context.Context, adID uuid.UUID, outcome string) error
}

// EventPublisher publishes ad lifecycle events
type EventPublisher interface {
	PublishAdEvent(ctx context.Context, e events.AdEvent)
}

var (
	ErrAdNotFound        = errors.New("ad not found")
	ErrNotPublished      = errors.New("ad has not been published to meta")
	ErrPublishInProgress = errors.New("a publish attempt for this ad is already in progress")
	ErrInvalidTransition = errors.New("invalid publishing state transition")
	ErrInvalidDecision   = errors.New("invalid review decision")
)

// ConflictError is returned when the ad already has a Meta ad id
type ConflictError struct {
	MetaAdID string
	Status   store.AdStatus
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("ad already published as %s", e.MetaAdID)
}

// Review outcomes carried by notification jobs
const (
	ReviewOutcomeApproved = "approved"
	ReviewOutcomeRejected = "rejected"
)

const (
	publishLockTTL        = 60 * time.Second
	defaultReconcileDelay = 2 * time.Minute
	defaultStallThreshold = 10 * time.Minute
)

// Config tunes background follow-up of published ads
type Config struct {
	// ReconcileDelay is how long after submission the first status poll runs
	ReconcileDelay time.Duration
	// StallThreshold is how long a submission may stay without a Meta ad id before it is failed
	StallThreshold time.Duration
}

type PublishingProcessor struct {
	store       PublishingStore
	graph       GraphClient
	connections ConnectionManager
	locker      Locker
	jobs        JobQueue
	events      EventPublisher
	cfg         Config
	logger      *observability.Logger
	now         func() time.Time
}

func New(
	store PublishingStore,
	graph GraphClient,
	connections ConnectionManager,
	locker Locker,
	jobs JobQueue,
	events EventPublisher,
	cfg Config,
	logger *observability.Logger,
) PublishingProcessor {
	if cfg.ReconcileDelay <= 0 {
		cfg.ReconcileDelay = defaultReconcileDelay
	}
	if cfg.StallThreshold <= 0 {
		cfg.StallThreshold = defaultStallThreshold
	}
	return PublishingProcessor{
		store:       store,
		graph:       graph,
		connections: connections,
		locker:      locker,
		jobs:        jobs,
		events:      events,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

type PublishParams struct {
	CampaignID uuid.UUID
	AdID       uuid.UUID
}

// PublishResult is the outcome of a publish attempt. Error is set when Meta
// or a publish precondition rejected the attempt.
type PublishResult struct {
	Success  bool                        `json:"success"`
	MetaAdID string                      `json:"meta_ad_id,omitempty"`
	Status   PublishState                `json:"status"`
	Error    *publisherrors.PublishError `json:"error,omitempty"`

	// Remote is set when Meta itself rejected or failed the attempt.
	Remote bool `json:"-"`
}

// Publish submits a draft ad to Meta for review.
//
// Store, lock and conflict problems are returned as errors. Failures Meta
// reports, and unmet publish preconditions, come back in PublishResult.Error.
func (p *PublishingProcessor) Publish(ctx context.Context, params PublishParams) (PublishResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: params.CampaignID.String()},
		observability.Field{Key: "ad_id", Value: params.AdID.String()},
	)

	var result PublishResult
	err := p.locker.WithLock(ctx, "ad:"+params.AdID.String(), publishLockTTL, func() error {
		var err error
		result, err = p.publish(ctx, params)
		return err
	})
	if errors.Is(err, redisClient.ErrLockNotAcquired) {
		p.logger.Warn(ctx, "publish already in progress")
		return PublishResult{}, ErrPublishInProgress
	}
	if err != nil {
		return PublishResult{}, err
	}
	return result, nil
}

func (p *PublishingProcessor) publish(ctx context.Context, params PublishParams) (PublishResult, error) {
	ad, err := p.loadAd(ctx, params.CampaignID, params.AdID)
	if err != nil {
		return PublishResult{}, err
	}
	if ad.IsPublished() {
		return PublishResult{}, &ConflictError{MetaAdID: *ad.MetaAdID, Status: ad.Status}
	}

	campaign, err := p.store.GetCampaignByID(ctx, params.CampaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return PublishResult{}, ErrAdNotFound
		}
		p.logger.Error(ctx, "failed to get campaign", err)
		return PublishResult{}, fmt.Errorf("failed to get campaign: %w", err)
	}

	token, err := p.connections.GetToken(ctx, params.CampaignID)
	if err != nil {
		return p.rejectPrecondition(ctx, ad, err)
	}

	conn, err := p.connections.GetConnectionStatus(ctx, params.CampaignID)
	if err != nil {
		return PublishResult{}, err
	}
	if perr := checkReadiness(conn); perr != nil {
		return p.rejectPrecondition(ctx, ad, perr)
	}

	creative, perr := buildCreative(ad, campaign, conn)
	if perr != nil {
		return p.rejectPrecondition(ctx, ad, perr)
	}

	// The pending record must be durable before Meta is contacted
	ad, err = p.store.BeginPublishAttempt(ctx, ad.ID)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return PublishResult{}, p.conflictFor(ctx, params.AdID)
		}
		p.logger.Error(ctx, "failed to record publish attempt", err)
		return PublishResult{}, fmt.Errorf("failed to record publish attempt: %w", err)
	}

	creativeID, err := p.graph.CreateAdCreative(ctx, token.Value, creative.creative)
	if err != nil {
		return p.failAttempt(ctx, ad, err)
	}
	if creativeID == "" {
		return p.failAttempt(ctx, ad, publisherrors.New(publisherrors.CodeAPIError, "meta returned no creative id"))
	}
	creative.ad.CreativeID = creativeID

	metaAdID, err := p.graph.CreateAd(ctx, token.Value, creative.ad)
	if err == nil && metaAdID == "" {
		err = publisherrors.New(publisherrors.CodeAPIError, "meta returned no ad id")
	}
	if err != nil {
		p.logger.Warn(ctx, "ad creation failed after creative was created",
			observability.Field{Key: "meta_creative_id", Value: creativeID})
		return p.failAttempt(ctx, ad, err)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "meta_ad_id", Value: metaAdID})
	now := p.now()

	ad, err = p.store.MarkAdSubmitted(ctx, store.MarkAdSubmittedParams{
		AdID:             ad.ID,
		MetaAdID:         metaAdID,
		MetaCreativeID:   creativeID,
		MetaReviewStatus: metagraph.EffectiveStatusPendingReview,
		PublishedAt:      now,
		HistoryEntry: store.StatusHistoryEntry{
			Status:    string(StatePendingReview),
			Timestamp: now,
			Source:    store.HistorySourcePublish,
			Note:      "submitted to meta as ad " + metaAdID,
		},
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			p.logger.Error(ctx, "meta ad created but another attempt already recorded a meta ad id", err)
			return PublishResult{}, p.conflictFor(ctx, params.AdID)
		}
		p.logger.Error(ctx, "failed to record submitted ad", err)
		return PublishResult{}, fmt.Errorf("failed to record submitted ad: %w", err)
	}

	if err := p.jobs.EnqueueAdReconcile(ctx, ad.ID, p.cfg.ReconcileDelay); err != nil {
		p.logger.Error(ctx, "failed to schedule status reconcile", err)
	}

	p.events.PublishAdEvent(ctx, events.AdEvent{
		Type:       events.TypeAdSubmitted,
		CampaignID: ad.CampaignID,
		AdID:       ad.ID,
		MetaAdID:   metaAdID,
		Status:     string(StatePendingReview),
	})

	p.logger.Info(ctx, "ad submitted to meta")

	return PublishResult{
		Success:  true,
		MetaAdID: metaAdID,
		Status:   StatePendingReview,
	}, nil
}

func (p *PublishingProcessor) loadAd(ctx context.Context, campaignID, adID uuid.UUID) (store.Ad, error) {
	ad, err := p.store.GetAdByID(ctx, adID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Ad{}, ErrAdNotFound
		}
		p.logger.Error(ctx, "failed to get ad", err)
		return store.Ad{}, fmt.Errorf("failed to get ad: %w", err)
	}
	if ad.CampaignID != campaignID {
		return store.Ad{}, ErrAdNotFound
	}
	return ad, nil
}

func (p *PublishingProcessor) conflictFor(ctx context.Context, adID uuid.UUID) error {
	ad, err := p.store.GetAdByID(ctx, adID)
	if err != nil {
		p.logger.Error(ctx, "failed to reload ad after conflict", err)
		return fmt.Errorf("failed to reload ad after conflict: %w", err)
	}
	if !ad.IsPublished() {
		// Another attempt holds the pending record without a meta ad id yet
		return ErrPublishInProgress
	}
	return &ConflictError{MetaAdID: *ad.MetaAdID, Status: ad.Status}
}

// rejectPrecondition reports a failure found before the attempt started.
// Nothing is persisted and Meta is not called.
func (p *PublishingProcessor) rejectPrecondition(ctx context.Context, ad store.Ad, cause error) (PublishResult, error) {
	if !isClassified(cause) {
		// an unclassified error here is a local failure, not a publish outcome
		return PublishResult{}, cause
	}
	pe := publisherrors.FromError(cause)
	p.logger.Warn(ctx, "publish precondition not met",
		observability.Field{Key: "error_code", Value: string(pe.Code)},
		observability.Field{Key: "error_message", Value: pe.Message},
	)
	return PublishResult{Success: false, Status: CurrentState(ad), Error: pe}, nil
}

func isClassified(err error) bool {
	var classified publisherrors.Classifier
	return errors.As(err, &classified)
}

// failAttempt persists a failed attempt. The coarse ad status is left alone.
func (p *PublishingProcessor) failAttempt(ctx context.Context, ad store.Ad, cause error) (PublishResult, error) {
	pe := publisherrors.FromError(cause)
	now := p.now()

	ctx = observability.WithFields(ctx, observability.Field{Key: "error_code", Value: string(pe.Code)})
	p.logger.Error(ctx, "publish attempt failed", cause)

	_, err := p.store.MarkAdPublishFailed(ctx, store.MarkAdPublishFailedParams{
		AdID:  ad.ID,
		Error: snapshotOf(pe, now),
		HistoryEntry: store.StatusHistoryEntry{
			Status:    string(StateFailed),
			Timestamp: now,
			Source:    store.HistorySourcePublish,
			Note:      string(pe.Code),
		},
	})
	if err != nil {
		p.logger.Error(ctx, "failed to record failed publish attempt", err)
		return PublishResult{}, fmt.Errorf("failed to record failed publish attempt: %w", err)
	}

	p.events.PublishAdEvent(ctx, events.AdEvent{
		Type:       events.TypeAdPublishFailed,
		CampaignID: ad.CampaignID,
		AdID:       ad.ID,
		Status:     string(StateFailed),
		ErrorCode:  string(pe.Code),
	})

	return PublishResult{Success: false, Status: StateFailed, Error: pe, Remote: true}, nil
}

func snapshotOf(pe *publisherrors.PublishError, at time.Time) store.ErrorSnapshot {
	return store.ErrorSnapshot{
		Code:            string(pe.Code),
		Message:         pe.Message,
		UserMessage:     pe.UserMessage,
		SuggestedAction: pe.SuggestedAction,
		HelpLink:        pe.HelpLink,
		Details:         pe.Details,
		OccurredAt:      at,
	}
}

func checkReadiness(conn connectionProcessor.ConnectionStatus) error {
	switch {
	case conn.Readiness.Has(connectionProcessor.RequirementToken):
		return connectionProcessor.ErrNotConnected
	case conn.Readiness.Has(connectionProcessor.RequirementAdAccount):
		return publisherrors.New(publisherrors.CodeValidation, "no meta ad account selected for this campaign")
	case conn.Readiness.Has(connectionProcessor.RequirementPaymentMethod):
		return publisherrors.New(publisherrors.CodePaymentRequired, "ad account has no verified payment method")
	case conn.PageID == nil || *conn.PageID == "":
		return publisherrors.New(publisherrors.CodeValidation, "no facebook page selected for this campaign")
	}
	return nil
}

type publishRequest struct {
	creative metagraph.CreateAdCreativeParams
	ad       metagraph.CreateAdParams
}

func creativeString(creative store.JSONB, keys ...string) string {
	for _, key := range keys {
		if v, ok := creative[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// buildCreative turns the stored creative into Graph parameters.
func buildCreative(ad store.Ad, campaign store.Campaign, conn connectionProcessor.ConnectionStatus) (publishRequest, error) {
	link := creativeString(ad.Creative, "link_url", "link")
	if link == "" {
		return publishRequest{}, publisherrors.New(publisherrors.CodeValidation, "ad creative has no destination link")
	}
	message := creativeString(ad.Creative, "primary_text", "message", "body")
	if message == "" {
		return publishRequest{}, publisherrors.New(publisherrors.CodeValidation, "ad creative has no primary text")
	}

	adSetID := ""
	if ad.AdSetID != nil && *ad.AdSetID != "" {
		adSetID = *ad.AdSetID
	} else if campaign.MetaAdSetID != nil {
		adSetID = *campaign.MetaAdSetID
	}
	if adSetID == "" {
		return publishRequest{}, publisherrors.New(publisherrors.CodeValidation, "no meta ad set configured for this ad")
	}

	instagramID := ""
	if conn.InstagramID != nil {
		instagramID = *conn.InstagramID
	}

	return publishRequest{
		creative: metagraph.CreateAdCreativeParams{
			AdAccountID:      *conn.AdAccountID,
			Name:             ad.Name,
			PageID:           *conn.PageID,
			InstagramActorID: instagramID,
			Message:          message,
			Headline:         creativeString(ad.Creative, "headline", "title"),
			Description:      creativeString(ad.Creative, "description"),
			Link:             link,
			ImageHash:        creativeString(ad.Creative, "image_hash"),
			ImageURL:         creativeString(ad.Creative, "image_url"),
			CallToAction:     strings.ToUpper(creativeString(ad.Creative, "call_to_action")),
		},
		ad: metagraph.CreateAdParams{
			AdAccountID: *conn.AdAccountID,
			Name:        ad.Name,
			AdSetID:     adSetID,
			Status:      metagraph.StatusActive,
		},
	}, nil
}
