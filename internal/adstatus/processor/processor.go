package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"adcraft-server/internal/clients/metagraph"
	connectionProcessor "adcraft-server/internal/connection/processor"
	"adcraft-server/internal/events"
	"adcraft-server/internal/observability"
	"adcraft-server/internal/store"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AdStore defines the database operations required by AdStatusProcessor
type AdStore interface {
	GetAdByID(ctx context.Context, adID uuid.UUID) (store.Ad, error)
	SetAdStatus(ctx context.Context, adID uuid.UUID, status store.AdStatus, entry store.StatusHistoryEntry) (store.Ad, error)
}

// GraphClient sets the configured status of a remote ad
type GraphClient interface {
	UpdateAdStatus(ctx context.Context, token, adID, status string) error
}

// TokenProvider resolves the campaign's Meta access token
type TokenProvider interface {
	GetToken(ctx context.Context, campaignID uuid.UUID) (connectionProcessor.Token, error)
}

// EventPublisher publishes ad lifecycle events
type EventPublisher interface {
	PublishAdEvent(ctx context.Context, e events.AdEvent)
}

var (
	ErrAdNotFound   = errors.New("ad not found")
	ErrNotPublished = errors.New("ad has not been published to meta")
)

type AdStatusProcessor struct {
	store  AdStore
	graph  GraphClient
	tokens TokenProvider
	events EventPublisher
	logger *observability.Logger
	now    func() time.Time
}

func New(store AdStore, graph GraphClient, tokens TokenProvider, events EventPublisher, logger *observability.Logger) AdStatusProcessor {
	return AdStatusProcessor{
		store:  store,
		graph:  graph,
		tokens: tokens,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// StatusParams identifies the ad to pause or resume. TokenOverride, when set,
// is used instead of the campaign's stored connection.
type StatusParams struct {
	CampaignID    uuid.UUID
	AdID          uuid.UUID
	TokenOverride string
}

type StatusResult struct {
	Success  bool           `json:"success"`
	Status   store.AdStatus `json:"status"`
	MetaAdID string         `json:"meta_ad_id"`
}

// PauseAd stops delivery of a published ad
func (p *AdStatusProcessor) PauseAd(ctx context.Context, params StatusParams) (StatusResult, error) {
	return p.setStatus(ctx, params, store.AdStatusPaused, metagraph.StatusPaused, events.TypeAdPaused)
}

// ResumeAd restarts delivery of a paused ad
func (p *AdStatusProcessor) ResumeAd(ctx context.Context, params StatusParams) (StatusResult, error) {
	return p.setStatus(ctx, params, store.AdStatusActive, metagraph.StatusActive, events.TypeAdResumed)
}

func (p *AdStatusProcessor) setStatus(ctx context.Context, params StatusParams, status store.AdStatus, remoteStatus, eventType string) (StatusResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: params.CampaignID.String()},
		observability.Field{Key: "ad_id", Value: params.AdID.String()},
		observability.Field{Key: "target_status", Value: string(status)},
	)

	ad, err := p.store.GetAdByID(ctx, params.AdID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return StatusResult{}, ErrAdNotFound
		}
		p.logger.Error(ctx, "failed to get ad", err)
		return StatusResult{}, fmt.Errorf("failed to get ad: %w", err)
	}
	if ad.CampaignID != params.CampaignID {
		return StatusResult{}, ErrAdNotFound
	}
	if !ad.IsPublished() {
		return StatusResult{}, ErrNotPublished
	}
	metaAdID := *ad.MetaAdID
	ctx = observability.WithFields(ctx, observability.Field{Key: "meta_ad_id", Value: metaAdID})

	token := strings.TrimSpace(params.TokenOverride)
	if token == "" {
		t, err := p.tokens.GetToken(ctx, params.CampaignID)
		if err != nil {
			return StatusResult{}, err
		}
		token = t.Value
	}

	if err := p.graph.UpdateAdStatus(ctx, token, metaAdID, remoteStatus); err != nil {
		p.logger.Error(ctx, "failed to update ad status on meta", err)
		return StatusResult{}, fmt.Errorf("failed to update ad status on meta: %w", err)
	}

	_, err = p.store.SetAdStatus(ctx, ad.ID, status, store.StatusHistoryEntry{
		Status:    string(status),
		Timestamp: p.now(),
		Source:    store.HistorySourceUser,
		Note:      string(status) + " by user",
	})
	if err != nil {
		// Meta already applied the change; the reconciler repairs the local copy
		p.logger.Error(ctx, "meta status updated but local write failed", err)
	}

	p.events.PublishAdEvent(ctx, events.AdEvent{
		Type:       eventType,
		CampaignID: ad.CampaignID,
		AdID:       ad.ID,
		MetaAdID:   metaAdID,
		Status:     string(status),
	})

	p.logger.Info(ctx, "ad status updated")

	return StatusResult{
		Success:  true,
		Status:   status,
		MetaAdID: metaAdID,
	}, nil
}
