package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"adcraft-server/internal/bootstrap"
	"adcraft-server/internal/clients/kafka"
	"adcraft-server/internal/clients/mail"
	redisClient "adcraft-server/internal/clients/redis"
	connectionProcessor "adcraft-server/internal/connection/processor"
	"adcraft-server/internal/config"
	"adcraft-server/internal/email"
	"adcraft-server/internal/events"
	"adcraft-server/internal/jobs"
	"adcraft-server/internal/jobs/workers"
	"adcraft-server/internal/observability"
	publishingProcessor "adcraft-server/internal/publishing/processor"
	"adcraft-server/internal/store"

	"github.com/hibiken/asynq"
)

func main() {
	logger := observability.NewLogger()
	ctx := context.Background()

	logger.Info(ctx, "Starting background worker server...")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "failed to load configuration", err)
	}
	if !cfg.Redis.Enabled {
		logger.Fatal(ctx, "worker requires Redis", fmt.Errorf("REDIS_ENABLED is false"))
	}

	// Initialize store
	dataStore, err := store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize store", err)
	}
	defer dataStore.Close()

	// Initialize clients
	rdb, err := redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to connect to redis", err)
	}
	defer rdb.Close()
	locker := redisClient.NewLocker(rdb, "lock:", logger)

	var producer *kafka.Producer
	if cfg.Kafka.Enabled() {
		producer = kafka.NewProducer(kafka.ProducerConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic}, logger)
		defer producer.Close()
	}
	eventPublisher := events.NewPublisher(producer, logger)

	// Reconciles enqueue review notifications, so workers need a job client too
	jobClient := jobs.NewClient(cfg.Redis, logger)
	defer jobClient.Close()

	mailClient, err := mail.NewResendClient(cfg.Services.ResendAPIKey, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to create resend client", err)
	}
	emailService, err := email.New(mailClient, cfg.Services.DefaultEmailSender, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize email service", err)
	}

	graphClient := bootstrap.NewGraphClient(cfg.Meta, logger)
	connectionProc := connectionProcessor.New(&dataStore, graphClient, eventPublisher, logger)
	publishingProc := publishingProcessor.New(
		&dataStore,
		graphClient,
		&connectionProc,
		locker,
		jobClient,
		eventPublisher,
		publishingProcessor.Config{ReconcileDelay: cfg.Reconcile.InitialDelay},
		logger,
	)

	// Initialize workers
	reconcileWorker := workers.NewReconcileWorker(&publishingProc, cfg.Reconcile.BatchSize, logger)
	notificationWorker := workers.NewNotificationWorker(&dataStore, emailService, cfg.Services.WebAppURI, logger)

	redisOpt := jobs.RedisOpt(cfg.Redis)

	// Create Asynq server with queue configuration
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				jobs.QueueHigh:   6, // per-ad status polls
				jobs.QueueMedium: 3, // review notification emails
				jobs.QueueLow:    1, // periodic sweep
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				ctx = observability.WithFields(ctx, observability.Field{Key: "task_type", Value: task.Type()})
				logger.Error(ctx, "task failed", err)
			}),
			RetryDelayFunc: asynq.DefaultRetryDelayFunc,
			Logger:         &asynqLogger{logger: logger},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TypeAdReconcile, reconcileWorker.ProcessAdReconcileTask)
	mux.HandleFunc(jobs.TypeReconcileSweep, reconcileWorker.ProcessReconcileSweepTask)
	mux.HandleFunc(jobs.TypeReviewNotification, notificationWorker.ProcessReviewNotificationTask)

	// Periodic sweep over every ad still awaiting review
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger: &asynqLogger{logger: logger},
	})
	sweepTask, err := jobs.NewReconcileSweepTask(jobs.ReconcileSweepJobPayload{Limit: cfg.Reconcile.BatchSize})
	if err != nil {
		logger.Fatal(ctx, "failed to build reconcile sweep task", err)
	}
	if _, err := scheduler.Register(cfg.Reconcile.Interval, sweepTask); err != nil {
		logger.Fatal(ctx, "failed to register reconcile sweep", err)
	}
	if err := scheduler.Start(); err != nil {
		logger.Fatal(ctx, "failed to start scheduler", err)
	}
	defer scheduler.Shutdown()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info(ctx, "worker server started", observability.Field{Key: "redis_addr", Value: cfg.Redis.Addr()})
		if err := srv.Run(mux); err != nil {
			logger.Fatal(ctx, "failed to run worker server", err)
		}
	}()

	<-sigChan
	logger.Info(ctx, "Shutting down worker server...")
	srv.Shutdown()
	logger.Info(ctx, "Worker server stopped")
}

// asynqLogger adapts observability.Logger to asynq.Logger interface
type asynqLogger struct {
	logger *observability.Logger
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(context.Background(), fmt.Sprint(args...), nil)
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Fatal(context.Background(), fmt.Sprint(args...), nil)
}
