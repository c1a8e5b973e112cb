package bootstrap

import (
	"adcraft-server/internal/config"
	"adcraft-server/internal/observability"
	"adcraft-server/internal/store"
	"context"
	"fmt"

	adStatusHandler "adcraft-server/internal/adstatus/handler"
	adStatusProcessor "adcraft-server/internal/adstatus/processor"
	"adcraft-server/internal/auth/handler"
	"adcraft-server/internal/auth/processor"
	kafkaClient "adcraft-server/internal/clients/kafka"
	"adcraft-server/internal/clients/metagraph"
	redisClient "adcraft-server/internal/clients/redis"
	connectionHandler "adcraft-server/internal/connection/handler"
	connectionProcessor "adcraft-server/internal/connection/processor"
	"adcraft-server/internal/events"
	"adcraft-server/internal/jobs"
	"adcraft-server/internal/jobs/scheduler"
	publishingHandler "adcraft-server/internal/publishing/handler"
	publishingProcessor "adcraft-server/internal/publishing/processor"
	"adcraft-server/internal/ratelimit"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Handlers
	AuthHandler       handler.Handler
	ConnectionHandler connectionHandler.Handler
	PublishingHandler publishingHandler.Handler
	AdStatusHandler   adStatusHandler.Handler
	WebhookHandler    publishingHandler.WebhookHandler

	// RateLimiter guards endpoints that call the Graph API
	RateLimiter *ratelimit.Service

	// Scheduler runs the reconcile sweep in-process when Redis is disabled;
	// otherwise the worker binary owns it and this is nil.
	Scheduler *scheduler.Scheduler

	// Clients (for cleanup)
	RedisClient   *redisClient.Client
	KafkaProducer *kafkaClient.Producer
	JobClient     *jobs.Client
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if _, err := deps.Store.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize clients
	deps.RedisClient, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	locker := redisClient.NewLocker(deps.RedisClient, "lock:", logger)
	deps.RateLimiter = ratelimit.NewService(deps.RedisClient, logger)

	if cfg.Kafka.Enabled() {
		deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, logger)
	} else {
		logger.Info(ctx, "Kafka is disabled, lifecycle events will not be published")
	}
	eventPublisher := events.NewPublisher(deps.KafkaProducer, logger)

	if cfg.Redis.Enabled {
		deps.JobClient = jobs.NewClient(cfg.Redis, logger)
	} else {
		deps.JobClient = jobs.NewDisabledClient(logger)
	}

	graphClient := NewGraphClient(cfg.Meta, logger)

	// Initialize auth processor and handler
	authProc := processor.New(&deps.Store, cfg.Auth.JWTSecret, logger)
	deps.AuthHandler = handler.New(authProc, logger)

	// Initialize connection manager and handler
	connectionProc := connectionProcessor.New(&deps.Store, graphClient, eventPublisher, logger)
	deps.ConnectionHandler = connectionHandler.New(connectionProc, logger)

	// Initialize publishing orchestrator, reconciler and handlers
	publishingProc := publishingProcessor.New(
		&deps.Store,
		graphClient,
		&connectionProc,
		locker,
		deps.JobClient,
		eventPublisher,
		publishingProcessor.Config{ReconcileDelay: cfg.Reconcile.InitialDelay},
		logger,
	)
	deps.PublishingHandler = publishingHandler.New(publishingProc, logger)
	deps.WebhookHandler = publishingHandler.NewWebhookHandler(&publishingProc, cfg.Meta.AppSecret, cfg.Meta.WebhookVerifyToken, logger)

	// Initialize ad status operations and handler
	adStatusProc := adStatusProcessor.New(&deps.Store, graphClient, &connectionProc, eventPublisher, logger)
	deps.AdStatusHandler = adStatusHandler.New(adStatusProc, logger)

	if !cfg.Redis.Enabled {
		deps.Scheduler = scheduler.New(logger)
		deps.Scheduler.Register(scheduler.NewReconcileSweepJob(&publishingProc, cfg.Reconcile.BatchSize, cfg.Reconcile.Every(), logger))
	}

	return deps, nil
}

// NewGraphClient builds the Meta Graph API client from configuration
func NewGraphClient(cfg config.MetaConfig, logger *observability.Logger) *metagraph.Client {
	return metagraph.NewClient(metagraph.Config{
		AppID:       cfg.AppID,
		AppSecret:   cfg.AppSecret,
		RedirectURI: cfg.RedirectURI,
		BaseURL:     cfg.GraphBaseURL,
		Version:     cfg.GraphVersion,
		Timeout:     cfg.RequestTimeout,
	}, logger)
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	ctx := context.Background()
	if d.JobClient != nil {
		if err := d.JobClient.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close job client", err)
		}
	}
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close kafka producer", err)
		}
	}
	if err := d.RedisClient.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close redis client", err)
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close database", err)
	}
}
