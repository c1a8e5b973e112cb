package api

import (
	adStatusHandler "adcraft-server/internal/adstatus/handler"
	authHandler "adcraft-server/internal/auth/handler"
	connectionHandler "adcraft-server/internal/connection/handler"
	publishingHandler "adcraft-server/internal/publishing/handler"
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency the readiness probe checks
type Pinger interface {
	Ping(ctx context.Context) error
}

type API struct {
	router            *gin.RouterGroup
	authHandler       authHandler.Handler
	connectionHandler connectionHandler.Handler
	publishingHandler publishingHandler.Handler
	adStatusHandler   adStatusHandler.Handler
	webhookHandler    publishingHandler.WebhookHandler
	graphRateLimit    gin.HandlerFunc
	readiness         map[string]Pinger
}

func New(
	router *gin.RouterGroup,
	authHandler authHandler.Handler,
	connectionHandler connectionHandler.Handler,
	publishingHandler publishingHandler.Handler,
	adStatusHandler adStatusHandler.Handler,
	webhookHandler publishingHandler.WebhookHandler,
	graphRateLimit gin.HandlerFunc,
	readiness map[string]Pinger,
) API {
	return API{
		router:            router,
		authHandler:       authHandler,
		connectionHandler: connectionHandler,
		publishingHandler: publishingHandler,
		adStatusHandler:   adStatusHandler,
		webhookHandler:    webhookHandler,
		graphRateLimit:    graphRateLimit,
		readiness:         readiness,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")

	webhookGroup := apiGroup.Group("/webhooks")
	{
		webhookGroup.GET("/meta", a.webhookHandler.HandleVerify)
		webhookGroup.POST("/meta", a.webhookHandler.HandleEvent)
	}

	protectedGroup := apiGroup.Group("/protected", a.authHandler.HandleJWTMiddleware)
	campaignGroup := protectedGroup.Group("/campaigns/:campaign_id", a.authHandler.HandleCampaignAccess)
	{
		campaignGroup.GET("/meta/connection", a.connectionHandler.HandleGetConnection)
		campaignGroup.POST("/meta/connection/oauth", a.connectionHandler.HandleCompleteOAuth)
		campaignGroup.POST("/meta/connection/assets", a.connectionHandler.HandleSelectAssets)
		campaignGroup.POST("/meta/connection/payment/verify", a.connectionHandler.HandleVerifyPayment)

		adGroup := campaignGroup.Group("/ads/:ad_id")
		adGroup.POST("/publish", a.graphRateLimit, a.publishingHandler.HandlePublishAd)
		adGroup.GET("/publish/status", a.publishingHandler.HandleGetPublishStatus)
		adGroup.POST("/publish/refresh", a.graphRateLimit, a.publishingHandler.HandleRefreshStatus)
		adGroup.POST("/review", a.publishingHandler.HandleReviewAd)
		adGroup.GET("/insights", a.graphRateLimit, a.publishingHandler.HandleGetInsights)
		adGroup.POST("/pause", a.graphRateLimit, a.adStatusHandler.HandlePauseAd)
		adGroup.POST("/resume", a.graphRateLimit, a.adStatusHandler.HandleResumeAd)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	a.router.GET("/health/ready", a.handleReady)
}

func (a *API) handleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(a.readiness))
	for name := range a.readiness {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := gin.H{}
	for _, name := range names {
		if err := a.readiness[name].Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	if status != http.StatusOK {
		c.JSON(status, gin.H{"message": "unavailable", "checks": checks})
		return
	}
	c.JSON(status, gin.H{"message": "ok", "checks": checks})
}
