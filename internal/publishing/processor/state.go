package processor

import (
	"adcraft-server/internal/clients/metagraph"
	"adcraft-server/internal/store"
)

// PublishState is the position of an ad in the publishing lifecycle.
type PublishState string

const (
	StateDraft         PublishState = "draft"
	StateSubmitting    PublishState = "submitting"
	StatePendingReview PublishState = "pending_review"
	StateActive        PublishState = "active"
	StateRejected      PublishState = "rejected"
	StateFailed        PublishState = "failed"
	StatePaused        PublishState = "paused"
)

var transitions = map[PublishState][]PublishState{
	StateDraft:         {StateSubmitting},
	StateSubmitting:    {StatePendingReview, StateFailed},
	StatePendingReview: {StateActive, StateRejected, StateFailed, StatePaused},
	StateActive:        {StatePaused, StateRejected, StateFailed},
	StatePaused:        {StateActive, StateRejected, StateFailed},
	StateRejected:      {StateActive},
	// failed covers both an unpublished attempt (retry) and a published ad Meta flagged with issues
	StateFailed: {StateSubmitting, StatePendingReview, StateActive, StateRejected},
}

// CanTransition reports whether the lifecycle allows moving from one state to another.
// Every ad passes through submitting and pending_review before it can be active.
func CanTransition(from, to PublishState) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CurrentState derives the lifecycle state from the stored ad.
func CurrentState(ad store.Ad) PublishState {
	if ad.PublishingStatus == nil {
		return StateDraft
	}
	switch *ad.PublishingStatus {
	case store.PublishingStatusPendingReview:
		if !ad.IsPublished() {
			return StateSubmitting
		}
		return StatePendingReview
	case store.PublishingStatusActive:
		if ad.Status == store.AdStatusPaused {
			return StatePaused
		}
		return StateActive
	case store.PublishingStatusRejected:
		return StateRejected
	case store.PublishingStatusFailed:
		return StateFailed
	default:
		return StateDraft
	}
}

// StateFromEffectiveStatus maps Meta's effective_status. ok is false for
// statuses that carry no review information (archived, deleted).
func StateFromEffectiveStatus(effectiveStatus string) (PublishState, bool) {
	switch effectiveStatus {
	case metagraph.EffectiveStatusActive:
		return StateActive, true
	case metagraph.EffectiveStatusPaused, metagraph.EffectiveStatusCampaignPaused, metagraph.EffectiveStatusAdSetPaused:
		return StatePaused, true
	case metagraph.EffectiveStatusDisapproved:
		return StateRejected, true
	case metagraph.EffectiveStatusPendingReview, metagraph.EffectiveStatusInProcess,
		metagraph.EffectiveStatusPendingBillingInfo, metagraph.EffectiveStatusPreapproved:
		return StatePendingReview, true
	case metagraph.EffectiveStatusWithIssues:
		return StateFailed, true
	default:
		return "", false
	}
}
