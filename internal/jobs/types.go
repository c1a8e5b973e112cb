package jobs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Job type constants
const (
	// High priority queue
	TypeAdReconcile = "ad:reconcile"

	// Medium priority queue
	TypeReviewNotification = "email:review_notification"

	// Low priority queue
	TypeReconcileSweep = "ad:reconcile_sweep"
)

// Queue names
const (
	QueueHigh   = "high"
	QueueMedium = "medium"
	QueueLow    = "low"
)

// AdReconcileJobPayload asks the worker to poll Meta for one submitted ad
type AdReconcileJobPayload struct {
	AdID uuid.UUID `json:"ad_id"`
}

// NewAdReconcileTask creates a reconcile task that runs after delay
func NewAdReconcileTask(payload AdReconcileJobPayload, delay time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAdReconcile, data,
		asynq.Queue(QueueHigh),
		asynq.MaxRetry(5),
		asynq.ProcessIn(delay),
	), nil
}

// ReviewNotificationJobPayload tells the campaign owner about a review outcome
type ReviewNotificationJobPayload struct {
	AdID    uuid.UUID `json:"ad_id"`
	Outcome string    `json:"outcome"` // approved, rejected
}

// NewReviewNotificationTask creates a new review notification task
func NewReviewNotificationTask(payload ReviewNotificationJobPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReviewNotification, data, asynq.Queue(QueueMedium), asynq.MaxRetry(5)), nil
}

// ReconcileSweepJobPayload bounds one pass over ads awaiting review
type ReconcileSweepJobPayload struct {
	Limit int `json:"limit"`
}

// NewReconcileSweepTask creates a new sweep task
func NewReconcileSweepTask(payload ReconcileSweepJobPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReconcileSweep, data, asynq.Queue(QueueLow), asynq.MaxRetry(1)), nil
}
