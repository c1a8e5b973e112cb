package scheduler

import (
	"adcraft-server/internal/observability"
	"adcraft-server/internal/publishing/processor"
	"context"
	"time"
)

// PendingReconciler sweeps ads awaiting Meta review
type PendingReconciler interface {
	ReconcilePending(ctx context.Context, limit int) (processor.ReconcileSummary, error)
}

// ReconcileSweepJob polls Meta for every ad still awaiting review
type ReconcileSweepJob struct {
	reconciler PendingReconciler
	batchSize  int
	interval   time.Duration
	logger     *observability.Logger
}

// NewReconcileSweepJob creates a new sweep job
func NewReconcileSweepJob(reconciler PendingReconciler, batchSize int, interval time.Duration, logger *observability.Logger) *ReconcileSweepJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &ReconcileSweepJob{
		reconciler: reconciler,
		batchSize:  batchSize,
		interval:   interval,
		logger:     logger,
	}
}

func (j *ReconcileSweepJob) Name() string {
	return "reconcile_sweep"
}

func (j *ReconcileSweepJob) Schedule() time.Duration {
	return j.interval
}

func (j *ReconcileSweepJob) Run(ctx context.Context) error {
	_, err := j.reconciler.ReconcilePending(ctx, j.batchSize)
	return err
}
