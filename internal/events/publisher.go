package events

import (
	"adcraft-server/internal/clients/kafka"
	"adcraft-server/internal/observability"
	"context"
	"time"

	"github.com/google/uuid"
)

// Ad lifecycle event types
const (
	TypeAdSubmitted     = "ad.submitted"
	TypeAdPublishFailed = "ad.publish_failed"
	TypeAdApproved      = "ad.approved"
	TypeAdRejected      = "ad.rejected"
	TypeAdPaused        = "ad.paused"
	TypeAdResumed       = "ad.resumed"
	TypeMetaConnected   = "meta.connected"
)

type eventProducer interface {
	PublishEvent(ctx context.Context, event kafka.EventMessage) error
}

// AdEvent describes one state change of an ad
type AdEvent struct {
	Type       string
	CampaignID uuid.UUID
	AdID       uuid.UUID
	MetaAdID   string
	Status     string
	ErrorCode  string
	Note       string
}

// Publisher handles publishing domain events to Kafka
type Publisher struct {
	producer eventProducer
	logger   *observability.Logger
	now      func() time.Time
}

// NewPublisher creates a new event publisher. A nil producer turns every
// publish into a no-op, which is how deployments without Kafka run.
func NewPublisher(producer *kafka.Producer, logger *observability.Logger) *Publisher {
	p := &Publisher{logger: logger, now: time.Now}
	if producer != nil {
		p.producer = producer
	}
	return p
}

// PublishAdEvent publishes a lifecycle event. Delivery is best effort: a
// broker failure is logged and never fails the state change that caused it.
func (p *Publisher) PublishAdEvent(ctx context.Context, e AdEvent) {
	if p == nil || p.producer == nil {
		return
	}

	data := map[string]interface{}{
		"campaign_id": e.CampaignID.String(),
		"ad_id":       e.AdID.String(),
	}
	if e.MetaAdID != "" {
		data["meta_ad_id"] = e.MetaAdID
	}
	if e.Status != "" {
		data["status"] = e.Status
	}
	if e.ErrorCode != "" {
		data["error_code"] = e.ErrorCode
	}
	if e.Note != "" {
		data["note"] = e.Note
	}

	event := kafka.EventMessage{
		ID:         uuid.New().String(),
		Type:       e.Type,
		CampaignID: e.CampaignID.String(),
		AdID:       e.AdID.String(),
		Data:       data,
		Timestamp:  p.now().UTC().Format(time.RFC3339),
	}

	if err := p.producer.PublishEvent(ctx, event); err != nil {
		p.logger.Error(ctx, "failed to publish ad lifecycle event", err)
	}
}

// PublishMetaConnected publishes a meta.connected event after a successful OAuth exchange
func (p *Publisher) PublishMetaConnected(ctx context.Context, campaignID uuid.UUID, metaUserID string) {
	if p == nil || p.producer == nil {
		return
	}

	event := kafka.EventMessage{
		ID:         uuid.New().String(),
		Type:       TypeMetaConnected,
		CampaignID: campaignID.String(),
		Data: map[string]interface{}{
			"campaign_id":  campaignID.String(),
			"meta_user_id": metaUserID,
		},
		Timestamp: p.now().UTC().Format(time.RFC3339),
	}

	if err := p.producer.PublishEvent(ctx, event); err != nil {
		p.logger.Error(ctx, "failed to publish meta connected event", err)
	}
}
