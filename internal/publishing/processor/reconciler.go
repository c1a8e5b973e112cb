package processor

import (
	"adcraft-server/internal/clients/metagraph"
	"adcraft-server/internal/events"
	"adcraft-server/internal/observability"
	"adcraft-server/internal/publisherrors"
	"adcraft-server/internal/store"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Decision is a review outcome reported by Meta (poll or webhook) or entered manually.
type Decision struct {
	State PublishState
	// Source is one of the store.HistorySource values
	Source       string
	Note         string
	ReviewStatus string
	ObservedAt   time.Time
	Error        *publisherrors.PublishError
}

// RemoteUpdate is a status change pushed by Meta for one ad.
type RemoteUpdate struct {
	MetaAdID        string
	EffectiveStatus string
	Note            string
	ErrorCode       int
	ErrorMessage    string
}

// MetadataView is the publishing metadata returned to clients
type MetadataView struct {
	CurrentStatus    string                     `json:"current_status"`
	MetaReviewStatus *string                    `json:"meta_review_status,omitempty"`
	RetryCount       int                        `json:"retry_count"`
	StatusHistory    []store.StatusHistoryEntry `json:"status_history"`
	ErrorCode        *string                    `json:"error_code,omitempty"`
	ErrorMessage     *string                    `json:"error_message,omitempty"`
	ErrorUserMessage *string                    `json:"error_user_message,omitempty"`
	LastCheckedAt    *time.Time                 `json:"last_checked_at,omitempty"`
}

// StatusView is the publishing state of one ad
type StatusView struct {
	AdID             uuid.UUID                   `json:"ad_id"`
	State            PublishState                `json:"state"`
	Status           store.AdStatus              `json:"status"`
	PublishingStatus *store.PublishingStatus     `json:"publishing_status"`
	MetaAdID         *string                     `json:"meta_ad_id,omitempty"`
	LastError        *store.ErrorSnapshot        `json:"last_error,omitempty"`
	PublishedAt      *time.Time                  `json:"published_at,omitempty"`
	ApprovedAt       *time.Time                  `json:"approved_at,omitempty"`
	RejectedAt       *time.Time                  `json:"rejected_at,omitempty"`
	UpdatedAt        time.Time                   `json:"updated_at"`
	Metadata         *MetadataView               `json:"metadata,omitempty"`
	RefreshError     *publisherrors.PublishError `json:"refresh_error,omitempty"`
}

// ReconcileSummary counts the work done by one sweep
type ReconcileSummary struct {
	Checked int
	Changed int
	Failed  int
	Stalled int
}

// GetStatus returns the ad's publishing state. With refresh it first pulls the
// current review decision from Meta; a failed refresh is reported in the view.
func (p *PublishingProcessor) GetStatus(ctx context.Context, campaignID, adID uuid.UUID, refresh bool) (StatusView, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "ad_id", Value: adID.String()})

	ad, err := p.loadAd(ctx, campaignID, adID)
	if err != nil {
		return StatusView{}, err
	}

	var refreshErr *publisherrors.PublishError
	if refresh && ad.IsPublished() {
		updated, err := p.reconcileAd(ctx, ad, "")
		switch {
		case err == nil:
			ad = updated
		case isClassified(err):
			refreshErr = publisherrors.FromError(err)
		default:
			return StatusView{}, err
		}
	}

	return p.view(ctx, ad, refreshErr)
}

// RefreshStatus pulls the current review decision from Meta and applies it.
func (p *PublishingProcessor) RefreshStatus(ctx context.Context, campaignID, adID uuid.UUID) (StatusView, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "ad_id", Value: adID.String()})

	ad, err := p.loadAd(ctx, campaignID, adID)
	if err != nil {
		return StatusView{}, err
	}
	if !ad.IsPublished() {
		return StatusView{}, ErrNotPublished
	}

	ad, err = p.reconcileAd(ctx, ad, "")
	if err != nil {
		return StatusView{}, err
	}
	return p.view(ctx, ad, nil)
}

// ApplyDecision moves a published ad to the decided state. Poll, webhook and
// manual review all go through here.
func (p *PublishingProcessor) ApplyDecision(ctx context.Context, adID uuid.UUID, d Decision) (store.Ad, error) {
	ad, err := p.store.GetAdByID(ctx, adID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Ad{}, ErrAdNotFound
		}
		p.logger.Error(ctx, "failed to get ad", err)
		return store.Ad{}, fmt.Errorf("failed to get ad: %w", err)
	}
	return p.applyDecision(ctx, ad, d)
}

// ApplyManualReview records a review decision entered by an operator.
func (p *PublishingProcessor) ApplyManualReview(ctx context.Context, campaignID, adID uuid.UUID, outcome, reason string) (StatusView, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "ad_id", Value: adID.String()})

	var state PublishState
	switch outcome {
	case ReviewOutcomeApproved:
		state = StateActive
	case ReviewOutcomeRejected:
		state = StateRejected
	default:
		return StatusView{}, ErrInvalidDecision
	}

	ad, err := p.loadAd(ctx, campaignID, adID)
	if err != nil {
		return StatusView{}, err
	}

	ad, err = p.applyDecision(ctx, ad, Decision{
		State:  state,
		Source: store.HistorySourceManual,
		Note:   reason,
	})
	if err != nil {
		return StatusView{}, err
	}
	return p.view(ctx, ad, nil)
}

// ApplyRemoteUpdate applies a status change pushed by Meta. Unknown ads and
// statuses without review meaning are ignored.
func (p *PublishingProcessor) ApplyRemoteUpdate(ctx context.Context, update RemoteUpdate) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "meta_ad_id", Value: update.MetaAdID})

	state, ok := StateFromEffectiveStatus(update.EffectiveStatus)
	if !ok && update.ErrorCode == 0 && update.ErrorMessage == "" {
		p.logger.Debug(observability.WithFields(ctx,
			observability.Field{Key: "effective_status", Value: update.EffectiveStatus}),
			"ignoring remote update without review status")
		return nil
	}
	if !ok {
		state = StateFailed
	}

	ad, err := p.store.GetAdByMetaAdID(ctx, update.MetaAdID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			p.logger.Warn(ctx, "remote update for unknown ad")
			return ErrAdNotFound
		}
		p.logger.Error(ctx, "failed to get ad by meta ad id", err)
		return fmt.Errorf("failed to get ad by meta ad id: %w", err)
	}

	d := Decision{
		State:        state,
		Source:       store.HistorySourceWebhook,
		Note:         update.Note,
		ReviewStatus: update.EffectiveStatus,
	}
	if update.ErrorCode != 0 || update.ErrorMessage != "" {
		d.Error = publisherrors.New(
			publisherrors.ClassifyGraph(update.ErrorCode, 0, update.ErrorMessage),
			update.ErrorMessage,
		)
		if d.Note == "" {
			d.Note = update.ErrorMessage
		}
	}

	_, err = p.applyDecision(ctx, ad, d)
	return err
}

// ReconcileAd polls Meta for one ad still awaiting review.
func (p *PublishingProcessor) ReconcileAd(ctx context.Context, adID uuid.UUID) (store.Ad, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "ad_id", Value: adID.String()})

	ad, err := p.store.GetAdByID(ctx, adID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Ad{}, ErrAdNotFound
		}
		p.logger.Error(ctx, "failed to get ad", err)
		return store.Ad{}, fmt.Errorf("failed to get ad: %w", err)
	}
	if CurrentState(ad) != StatePendingReview {
		return ad, nil
	}
	return p.reconcileAd(ctx, ad, "")
}

// ReconcilePending polls every ad awaiting review, then fails submissions
// that never received a Meta ad id.
func (p *PublishingProcessor) ReconcilePending(ctx context.Context, limit int) (ReconcileSummary, error) {
	var summary ReconcileSummary

	ads, err := p.store.ListAdsPendingReview(ctx, limit)
	if err != nil {
		return summary, err
	}

	type tokenResult struct {
		value string
		err   error
	}
	tokens := map[uuid.UUID]tokenResult{}

	for _, ad := range ads {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Checked++

		adCtx := observability.WithFields(ctx,
			observability.Field{Key: "campaign_id", Value: ad.CampaignID.String()},
			observability.Field{Key: "ad_id", Value: ad.ID.String()},
		)

		tr, ok := tokens[ad.CampaignID]
		if !ok {
			token, err := p.connections.GetToken(adCtx, ad.CampaignID)
			tr = tokenResult{value: token.Value, err: err}
			tokens[ad.CampaignID] = tr
		}
		if tr.err != nil {
			p.logger.Warn(adCtx, "skipping reconcile, no usable meta token",
				observability.Field{Key: "reason", Value: tr.err.Error()})
			summary.Failed++
			continue
		}

		updated, err := p.reconcileAd(adCtx, ad, tr.value)
		if err != nil {
			p.logger.Error(adCtx, "failed to reconcile ad", err)
			summary.Failed++
			continue
		}
		if CurrentState(updated) != CurrentState(ad) {
			summary.Changed++
		}
	}

	stalled, err := p.FailStalledSubmissions(ctx, limit)
	summary.Stalled = stalled
	if err != nil {
		return summary, err
	}

	p.logger.Info(ctx, "reconcile sweep finished",
		observability.Field{Key: "checked", Value: summary.Checked},
		observability.Field{Key: "changed", Value: summary.Changed},
		observability.Field{Key: "failed", Value: summary.Failed},
		observability.Field{Key: "stalled", Value: summary.Stalled},
	)
	return summary, nil
}

// FailStalledSubmissions marks attempts that never recorded a Meta ad id as
// failed so the user can retry them.
func (p *PublishingProcessor) FailStalledSubmissions(ctx context.Context, limit int) (int, error) {
	now := p.now()
	ads, err := p.store.ListStalledSubmissions(ctx, now.Add(-p.cfg.StallThreshold), limit)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, ad := range ads {
		adCtx := observability.WithFields(ctx, observability.Field{Key: "ad_id", Value: ad.ID.String()})
		pe := publisherrors.New(publisherrors.CodeNetworkError, "publish attempt was interrupted before meta confirmed the ad")

		_, err := p.store.MarkAdPublishFailed(adCtx, store.MarkAdPublishFailedParams{
			AdID:  ad.ID,
			Error: snapshotOf(pe, now),
			HistoryEntry: store.StatusHistoryEntry{
				Status:    string(StateFailed),
				Timestamp: now,
				Source:    store.HistorySourcePoll,
				Note:      "stalled submission",
			},
		})
		if err != nil {
			p.logger.Error(adCtx, "failed to fail stalled submission", err)
			continue
		}
		failed++

		p.events.PublishAdEvent(adCtx, events.AdEvent{
			Type:       events.TypeAdPublishFailed,
			CampaignID: ad.CampaignID,
			AdID:       ad.ID,
			Status:     string(StateFailed),
			ErrorCode:  string(pe.Code),
			Note:       "stalled submission",
		})
	}
	return failed, nil
}

// GetInsights returns delivery metrics for a published ad
func (p *PublishingProcessor) GetInsights(ctx context.Context, campaignID, adID uuid.UUID, datePreset string) (metagraph.Insights, error) {
	ad, err := p.loadAd(ctx, campaignID, adID)
	if err != nil {
		return metagraph.Insights{}, err
	}
	if !ad.IsPublished() {
		return metagraph.Insights{}, ErrNotPublished
	}

	token, err := p.connections.GetToken(ctx, campaignID)
	if err != nil {
		return metagraph.Insights{}, err
	}

	insights, err := p.graph.GetAdInsights(ctx, token.Value, *ad.MetaAdID, datePreset)
	if err != nil {
		p.logger.Error(ctx, "failed to get ad insights", err)
		return metagraph.Insights{}, fmt.Errorf("failed to get ad insights: %w", err)
	}
	return insights, nil
}

// reconcileAd fetches the remote review state of a published ad and applies it.
// An empty token is resolved through the connection manager.
func (p *PublishingProcessor) reconcileAd(ctx context.Context, ad store.Ad, token string) (store.Ad, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "meta_ad_id", Value: *ad.MetaAdID})

	if token == "" {
		t, err := p.connections.GetToken(ctx, ad.CampaignID)
		if err != nil {
			return store.Ad{}, err
		}
		token = t.Value
	}

	remote, err := p.graph.GetAd(ctx, token, *ad.MetaAdID)
	if err != nil {
		if pe := publisherrors.FromError(err); pe.Retryable {
			if rerr := p.store.RecordStatusCheckFailure(ctx, ad.ID, p.now()); rerr != nil {
				p.logger.Error(ctx, "failed to record status check failure", rerr)
			}
		}
		return store.Ad{}, fmt.Errorf("failed to fetch ad from meta: %w", err)
	}

	state, ok := StateFromEffectiveStatus(remote.EffectiveStatus)
	if !ok {
		p.logger.Warn(ctx, "unmapped meta effective status",
			observability.Field{Key: "effective_status", Value: remote.EffectiveStatus})
		return ad, nil
	}

	updated, err := p.applyDecision(ctx, ad, Decision{
		State:        state,
		Source:       store.HistorySourcePoll,
		Note:         remote.AdReviewFeedback.Summary(),
		ReviewStatus: remote.EffectiveStatus,
	})
	if errors.Is(err, ErrInvalidTransition) {
		p.logger.Warn(ctx, "ignoring remote status that is not a valid transition",
			observability.Field{Key: "effective_status", Value: remote.EffectiveStatus})
		return ad, nil
	}
	return updated, err
}

func (p *PublishingProcessor) applyDecision(ctx context.Context, ad store.Ad, d Decision) (store.Ad, error) {
	if !ad.IsPublished() {
		return store.Ad{}, ErrNotPublished
	}
	if d.ObservedAt.IsZero() {
		d.ObservedAt = p.now()
	}

	from := CurrentState(ad)
	params, err := planDecision(ad, d)
	if err != nil {
		return store.Ad{}, err
	}

	updated, err := p.store.ApplyAdReviewState(ctx, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Ad{}, ErrAdNotFound
		}
		p.logger.Error(ctx, "failed to apply review decision", err)
		return store.Ad{}, fmt.Errorf("failed to apply review decision: %w", err)
	}

	to := CurrentState(updated)
	if from != to {
		p.logger.Info(ctx, "ad review state changed",
			observability.Field{Key: "from_state", Value: string(from)},
			observability.Field{Key: "to_state", Value: string(to)},
			observability.Field{Key: "source", Value: d.Source},
		)
		p.afterTransition(ctx, from, to, updated, params)
	}
	return updated, nil
}

// planDecision computes the stored effect of d on ad. approved_at and
// rejected_at are only set while neither is set, and never before published_at.
func planDecision(ad store.Ad, d Decision) (store.ApplyAdReviewStateParams, error) {
	current := store.PublishingStatusPendingReview
	if ad.PublishingStatus != nil {
		current = *ad.PublishingStatus
	}

	params := store.ApplyAdReviewStateParams{
		AdID:             ad.ID,
		Status:           ad.Status,
		PublishingStatus: current,
		CheckedAt:        d.ObservedAt,
	}
	if d.ReviewStatus != "" {
		review := d.ReviewStatus
		params.MetaReviewStatus = &review
	}

	from := CurrentState(ad)
	if from == d.State {
		return params, nil
	}
	if !CanTransition(from, d.State) {
		return params, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, d.State)
	}

	decidedAt := d.ObservedAt
	if ad.PublishedAt != nil && decidedAt.Before(*ad.PublishedAt) {
		decidedAt = *ad.PublishedAt
	}
	undecided := ad.ApprovedAt == nil && ad.RejectedAt == nil

	switch d.State {
	case StateActive:
		params.Status = store.AdStatusActive
		params.PublishingStatus = store.PublishingStatusActive
		if undecided {
			params.ApprovedAt = &decidedAt
		}
	case StateRejected:
		params.Status = store.AdStatusRejected
		params.PublishingStatus = store.PublishingStatusRejected
		if undecided {
			params.RejectedAt = &decidedAt
		}
		pe := d.Error
		if pe == nil {
			msg := d.Note
			if msg == "" {
				msg = "ad was disapproved during meta review"
			}
			pe = publisherrors.New(publisherrors.CodePolicyViolation, msg)
		}
		snap := snapshotOf(pe, d.ObservedAt)
		params.Error = &snap
	case StatePaused:
		params.Status = store.AdStatusPaused
	case StateFailed:
		params.PublishingStatus = store.PublishingStatusFailed
		pe := d.Error
		if pe == nil {
			msg := d.Note
			if msg == "" {
				msg = "meta reported issues with the ad"
			}
			pe = publisherrors.New(publisherrors.CodeAPIError, msg)
		}
		snap := snapshotOf(pe, d.ObservedAt)
		params.Error = &snap
	case StatePendingReview:
		params.PublishingStatus = store.PublishingStatusPendingReview
	}

	if params.Status == ad.Status && params.PublishingStatus == current {
		return params, nil
	}

	params.HistoryEntry = &store.StatusHistoryEntry{
		Status:    string(d.State),
		Timestamp: d.ObservedAt,
		Source:    d.Source,
		Note:      d.Note,
	}
	return params, nil
}

func (p *PublishingProcessor) afterTransition(ctx context.Context, from, to PublishState, ad store.Ad, params store.ApplyAdReviewStateParams) {
	event := events.AdEvent{
		CampaignID: ad.CampaignID,
		AdID:       ad.ID,
		MetaAdID:   *ad.MetaAdID,
		Status:     string(to),
	}
	if params.HistoryEntry != nil {
		event.Note = params.HistoryEntry.Note
	}

	var outcome string
	switch {
	case to == StateActive && from != StatePaused:
		event.Type = events.TypeAdApproved
		outcome = ReviewOutcomeApproved
	case to == StateRejected:
		event.Type = events.TypeAdRejected
		outcome = ReviewOutcomeRejected
	case to == StateFailed:
		event.Type = events.TypeAdPublishFailed
		if params.Error != nil {
			event.ErrorCode = params.Error.Code
		}
	default:
		return
	}

	p.events.PublishAdEvent(ctx, event)

	if outcome != "" {
		if err := p.jobs.EnqueueReviewNotification(ctx, ad.ID, outcome); err != nil {
			p.logger.Error(ctx, "failed to enqueue review notification", err)
		}
	}
}

func (p *PublishingProcessor) view(ctx context.Context, ad store.Ad, refreshErr *publisherrors.PublishError) (StatusView, error) {
	v := StatusView{
		AdID:             ad.ID,
		State:            CurrentState(ad),
		Status:           ad.Status,
		PublishingStatus: ad.PublishingStatus,
		MetaAdID:         ad.MetaAdID,
		LastError:        ad.LastError,
		PublishedAt:      ad.PublishedAt,
		ApprovedAt:       ad.ApprovedAt,
		RejectedAt:       ad.RejectedAt,
		UpdatedAt:        ad.UpdatedAt,
		RefreshError:     refreshErr,
	}

	metadata, err := p.store.GetPublishingMetadata(ctx, ad.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return v, nil
		}
		p.logger.Error(ctx, "failed to get publishing metadata", err)
		return StatusView{}, fmt.Errorf("failed to get publishing metadata: %w", err)
	}

	history := []store.StatusHistoryEntry(metadata.StatusHistory)
	if history == nil {
		history = []store.StatusHistoryEntry{}
	}
	v.Metadata = &MetadataView{
		CurrentStatus:    metadata.CurrentStatus,
		MetaReviewStatus: metadata.MetaReviewStatus,
		RetryCount:       metadata.RetryCount,
		StatusHistory:    history,
		ErrorCode:        metadata.ErrorCode,
		ErrorMessage:     metadata.ErrorMessage,
		ErrorUserMessage: metadata.ErrorUserMessage,
		LastCheckedAt:    metadata.LastCheckedAt,
	}
	return v, nil
}
