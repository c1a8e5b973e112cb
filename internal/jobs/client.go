package jobs

import (
	"context"
	"fmt"
	"time"

	"adcraft-server/internal/config"
	"adcraft-server/internal/observability"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client handles enqueueing background jobs
type Client struct {
	client enqueuer
	logger *observability.Logger
}

// RedisOpt builds the asynq connection options from the Redis configuration
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewClient creates a new job client
func NewClient(cfg config.RedisConfig, logger *observability.Logger) *Client {
	return &Client{
		client: asynq.NewClient(RedisOpt(cfg)),
		logger: logger,
	}
}

// NewDisabledClient returns a client that drops every job. Deployments
// without Redis rely on the in-process reconcile sweep instead.
func NewDisabledClient(logger *observability.Logger) *Client {
	return &Client{logger: logger}
}

// Close closes the client connection
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueAdReconcile schedules a status poll for a submitted ad
func (c *Client) EnqueueAdReconcile(ctx context.Context, adID uuid.UUID, delay time.Duration) error {
	task, err := NewAdReconcileTask(AdReconcileJobPayload{AdID: adID}, delay)
	if err != nil {
		c.logger.Error(ctx, "failed to create ad reconcile task", err)
		return fmt.Errorf("failed to create ad reconcile task: %w", err)
	}
	return c.enqueue(ctx, task)
}

// EnqueueReviewNotification schedules the review outcome email
func (c *Client) EnqueueReviewNotification(ctx context.Context, adID uuid.UUID, outcome string) error {
	task, err := NewReviewNotificationTask(ReviewNotificationJobPayload{AdID: adID, Outcome: outcome})
	if err != nil {
		c.logger.Error(ctx, "failed to create review notification task", err)
		return fmt.Errorf("failed to create review notification task: %w", err)
	}
	return c.enqueue(ctx, task)
}

// EnqueueReconcileSweep schedules a pass over every ad awaiting review
func (c *Client) EnqueueReconcileSweep(ctx context.Context, limit int) error {
	task, err := NewReconcileSweepTask(ReconcileSweepJobPayload{Limit: limit})
	if err != nil {
		c.logger.Error(ctx, "failed to create reconcile sweep task", err)
		return fmt.Errorf("failed to create reconcile sweep task: %w", err)
	}
	return c.enqueue(ctx, task)
}

func (c *Client) enqueue(ctx context.Context, task *asynq.Task) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "task_type", Value: task.Type()})

	if c.client == nil {
		c.logger.Debug(ctx, "job queue disabled, dropping task")
		return nil
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		c.logger.Error(ctx, "failed to enqueue task", err)
		return fmt.Errorf("failed to enqueue %s task: %w", task.Type(), err)
	}

	c.logger.Info(ctx, fmt.Sprintf("enqueued task: %s (queue: %s)", info.ID, info.Queue))
	return nil
}
