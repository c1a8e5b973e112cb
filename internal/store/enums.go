package store

// AdStatus is the coarse status shown on the ad card.
type AdStatus string

const (
	AdStatusDraft    AdStatus = "draft"
	AdStatusActive   AdStatus = "active"
	AdStatusPaused   AdStatus = "paused"
	AdStatusRejected AdStatus = "rejected"
)

// PublishingStatus is the outcome of the latest publish attempt.
type PublishingStatus string

const (
	PublishingStatusPendingReview PublishingStatus = "pending_review"
	PublishingStatusActive        PublishingStatus = "active"
	PublishingStatusFailed        PublishingStatus = "failed"
	PublishingStatusRejected      PublishingStatus = "rejected"
)

// Status history sources
const (
	HistorySourcePublish = "publish"
	HistorySourcePoll    = "poll"
	HistorySourceWebhook = "webhook"
	HistorySourceManual  = "manual"
	HistorySourceUser    = "user"
)
