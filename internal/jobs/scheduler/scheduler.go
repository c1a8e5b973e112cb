package scheduler

import (
	"adcraft-server/internal/observability"
	"context"
	"time"
)

// Job represents a scheduled job
type Job interface {
	// Name returns the job name for logging
	Name() string
	// Run executes the job
	Run(ctx context.Context) error
	// Schedule returns the interval between runs
	Schedule() time.Duration
}

// Scheduler runs jobs on fixed intervals inside the current process. It backs
// the reconcile sweep when no Redis-based worker is deployed.
type Scheduler struct {
	jobs   []Job
	logger *observability.Logger
}

// New creates a new scheduler
func New(logger *observability.Logger) *Scheduler {
	return &Scheduler{
		jobs:   make([]Job, 0),
		logger: logger,
	}
}

// Register adds a job to the scheduler
func (s *Scheduler) Register(job Job) {
	s.jobs = append(s.jobs, job)
	s.logger.Info(context.Background(), "registered scheduled job",
		observability.Field{Key: "scheduled_job", Value: job.Name()},
		observability.Field{Key: "interval", Value: job.Schedule().String()},
	)
}

// Start runs every job until ctx is cancelled
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info(ctx, "starting scheduler", observability.Field{Key: "jobs", Value: len(s.jobs)})

	for _, job := range s.jobs {
		go s.runJob(ctx, job)
	}

	<-ctx.Done()
	s.logger.Info(ctx, "scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	jobCtx := observability.WithFields(ctx, observability.Field{Key: "scheduled_job", Value: job.Name()})

	// Run immediately on startup
	s.executeJob(jobCtx, job)

	ticker := time.NewTicker(job.Schedule())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.executeJob(jobCtx, job)
		}
	}
}

func (s *Scheduler) executeJob(ctx context.Context, job Job) {
	start := time.Now()

	err := job.Run(ctx)
	ctx = observability.WithFields(ctx, observability.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()})
	if err != nil {
		s.logger.Error(ctx, "scheduled job failed", err)
		return
	}
	s.logger.Info(ctx, "scheduled job completed")
}
