package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"adcraft-server/internal/email"
	"adcraft-server/internal/jobs"
	"adcraft-server/internal/observability"
	"adcraft-server/internal/publishing/processor"
	"adcraft-server/internal/store"

	"github.com/hibiken/asynq"
)

// NotificationWorker emails campaign owners when Meta decides on their ad
type NotificationWorker struct {
	store     NotificationStore
	notifier  ReviewNotifier
	webAppURI string
	logger    *observability.Logger
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(store NotificationStore, notifier ReviewNotifier, webAppURI string, logger *observability.Logger) *NotificationWorker {
	return &NotificationWorker{
		store:     store,
		notifier:  notifier,
		webAppURI: strings.TrimRight(webAppURI, "/"),
		logger:    logger,
	}
}

// ProcessReviewNotificationTask sends the approval or rejection email
func (w *NotificationWorker) ProcessReviewNotificationTask(ctx context.Context, task *asynq.Task) error {
	var payload jobs.ReviewNotificationJobPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.logger.Error(ctx, "failed to unmarshal review notification payload", err)
		return fmt.Errorf("failed to unmarshal review notification payload: %w", asynq.SkipRetry)
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "ad_id", Value: payload.AdID.String()},
		observability.Field{Key: "outcome", Value: payload.Outcome},
	)

	if payload.Outcome != processor.ReviewOutcomeApproved && payload.Outcome != processor.ReviewOutcomeRejected {
		w.logger.Warn(ctx, "unknown review outcome")
		return fmt.Errorf("unknown review outcome %q: %w", payload.Outcome, asynq.SkipRetry)
	}

	ad, err := w.store.GetAdByID(ctx, payload.AdID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("ad not found: %w", asynq.SkipRetry)
		}
		w.logger.Error(ctx, "failed to get ad", err)
		return fmt.Errorf("failed to get ad: %w", err)
	}

	campaign, err := w.store.GetCampaignByID(ctx, ad.CampaignID)
	if err != nil {
		w.logger.Error(ctx, "failed to get campaign", err)
		return fmt.Errorf("failed to get campaign: %w", err)
	}

	owner, err := w.store.GetCampaignOwner(ctx, ad.CampaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("campaign owner not found: %w", asynq.SkipRetry)
		}
		w.logger.Error(ctx, "failed to get campaign owner", err)
		return fmt.Errorf("failed to get campaign owner: %w", err)
	}

	data := email.ReviewEmailData{
		FirstName:    owner.FirstName,
		CampaignName: campaign.Name,
		AdName:       ad.Name,
		AdLink:       fmt.Sprintf("%s/campaigns/%s/ads/%s", w.webAppURI, ad.CampaignID, ad.ID),
	}
	if ad.MetaAdID != nil {
		data.MetaAdID = *ad.MetaAdID
	}

	if payload.Outcome == processor.ReviewOutcomeApproved {
		err = w.notifier.SendAdApprovedEmail(ctx, owner.Email, data)
	} else {
		if ad.LastError != nil {
			data.Reason = ad.LastError.Message
			data.SuggestedAction = ad.LastError.SuggestedAction
		}
		err = w.notifier.SendAdRejectedEmail(ctx, owner.Email, data)
	}
	if err != nil {
		return fmt.Errorf("failed to send review email: %w", err)
	}

	w.logger.Info(ctx, "review notification sent")
	return nil
}
