package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"adcraft-server/internal/jobs"
	"adcraft-server/internal/observability"
	"adcraft-server/internal/publisherrors"
	"adcraft-server/internal/publishing/processor"

	"github.com/hibiken/asynq"
)

// ReconcileWorker handles status reconcile jobs
type ReconcileWorker struct {
	reconciler Reconciler
	batchSize  int
	logger     *observability.Logger
}

// NewReconcileWorker creates a new reconcile worker
func NewReconcileWorker(reconciler Reconciler, batchSize int, logger *observability.Logger) *ReconcileWorker {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &ReconcileWorker{
		reconciler: reconciler,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// ProcessAdReconcileTask polls Meta for a single submitted ad
func (w *ReconcileWorker) ProcessAdReconcileTask(ctx context.Context, task *asynq.Task) error {
	var payload jobs.AdReconcileJobPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.logger.Error(ctx, "failed to unmarshal ad reconcile payload", err)
		return fmt.Errorf("failed to unmarshal ad reconcile payload: %w", asynq.SkipRetry)
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "ad_id", Value: payload.AdID.String()})

	_, err := w.reconciler.ReconcileAd(ctx, payload.AdID)
	if err == nil {
		return nil
	}
	if errors.Is(err, processor.ErrAdNotFound) {
		w.logger.Warn(ctx, "ad deleted before reconcile")
		return fmt.Errorf("ad reconcile: %v: %w", err, asynq.SkipRetry)
	}
	// Only transient Meta failures are worth retrying; the sweep picks up the rest
	if pe := publisherrors.FromError(err); !pe.Retryable {
		w.logger.InfoWithError(ctx, "ad reconcile not retryable", err)
		return fmt.Errorf("ad reconcile: %v: %w", err, asynq.SkipRetry)
	}
	return fmt.Errorf("ad reconcile: %w", err)
}

// ProcessReconcileSweepTask polls every ad awaiting review
func (w *ReconcileWorker) ProcessReconcileSweepTask(ctx context.Context, task *asynq.Task) error {
	limit := w.batchSize
	if len(task.Payload()) > 0 {
		var payload jobs.ReconcileSweepJobPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			w.logger.Error(ctx, "failed to unmarshal reconcile sweep payload", err)
			return fmt.Errorf("failed to unmarshal reconcile sweep payload: %w", asynq.SkipRetry)
		}
		if payload.Limit > 0 {
			limit = payload.Limit
		}
	}

	if _, err := w.reconciler.ReconcilePending(ctx, limit); err != nil {
		w.logger.Error(ctx, "reconcile sweep failed", err)
		return fmt.Errorf("reconcile sweep failed: %w", err)
	}
	return nil
}
