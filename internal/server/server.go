package server

import (
	apisetup "adcraft-server/internal/api"
	authHandler "adcraft-server/internal/auth/handler"
	"adcraft-server/internal/bootstrap"
	"adcraft-server/internal/config"
	"adcraft-server/internal/observability"
	"adcraft-server/internal/ratelimit"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Server owns the HTTP listener and, without Redis, the reconcile scheduler
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	deps       *bootstrap.Dependencies
	config     *config.Config
	logger     *observability.Logger

	stopScheduler context.CancelFunc
}

// New creates a new Server instance
func New(cfg *config.Config, deps *bootstrap.Dependencies, logger *observability.Logger) *Server {
	return &Server{
		config: cfg,
		deps:   deps,
		logger: logger,
	}
}

// Setup builds the router: recovery, CORS for the web app, request logging, routes
func (s *Server) Setup() {
	s.router = gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowOrigins = []string{s.config.Services.WebAppURI}
	if os.Getenv("GO_ENV") != "production" {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}

	s.router.Use(gin.Recovery())
	s.router.Use(cors.New(corsConfig))
	s.router.Use(observability.Middleware(s.logger))

	readiness := map[string]apisetup.Pinger{"database": &s.deps.Store}
	if s.deps.RedisClient != nil {
		readiness["redis"] = s.deps.RedisClient
	}

	api := apisetup.New(
		s.router.Group("/"),
		s.deps.AuthHandler,
		s.deps.ConnectionHandler,
		s.deps.PublishingHandler,
		s.deps.AdStatusHandler,
		s.deps.WebhookHandler,
		ratelimit.Middleware(s.deps.RateLimiter, s.config.RateLimit.PerMinute, userKey, s.logger),
		readiness,
	)
	api.RegisterRoutes()
}

// Start serves HTTP in the background and starts the in-process scheduler when configured
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("server is not set up")
	}

	if s.deps.Scheduler != nil {
		schedulerCtx, cancel := context.WithCancel(ctx)
		s.stopScheduler = cancel
		go func() {
			if err := s.deps.Scheduler.Start(schedulerCtx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error(ctx, "scheduler stopped with error", err)
			}
		}()
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Info(ctx, "server listening", observability.Field{Key: "port", Value: s.config.Server.Port})
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Fatal(ctx, "server failed to start", err)
		}
	}()

	return nil
}

// WaitForShutdown blocks until SIGINT or SIGTERM, then drains in-flight
// requests, stops the scheduler and releases dependencies.
func (s *Server) WaitForShutdown(ctx context.Context) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.logger.Info(ctx, "shutting down server")

	if s.stopScheduler != nil {
		s.stopScheduler()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.deps.Cleanup()
	s.logger.Info(ctx, "server exited gracefully")
	return nil
}

// userKey rate limits per authenticated user
func userKey(c *gin.Context) (string, bool) {
	userID, ok := authHandler.UserID(c)
	if !ok {
		return "", false
	}
	return userID.String(), true
}
