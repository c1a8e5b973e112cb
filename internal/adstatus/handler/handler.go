package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"adcraft-server/internal/adstatus/processor"
	"adcraft-server/internal/apierrors"
	"adcraft-server/internal/observability"
	"adcraft-server/internal/publisherrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.AdStatusProcessor
	logger    *observability.Logger
}

func New(processor processor.AdStatusProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// StatusRequest optionally carries a token to use instead of the stored connection
type StatusRequest struct {
	AccessToken string `json:"access_token" binding:"omitempty,min=10"`
}

// HandlePauseAd pauses delivery of a published ad
func (h *Handler) HandlePauseAd(c *gin.Context) {
	h.handleStatusChange(c, h.processor.PauseAd)
}

// HandleResumeAd resumes delivery of a paused ad
func (h *Handler) HandleResumeAd(c *gin.Context) {
	h.handleStatusChange(c, h.processor.ResumeAd)
}

type statusChangeFunc func(ctx context.Context, params processor.StatusParams) (processor.StatusResult, error)

func (h *Handler) handleStatusChange(c *gin.Context, change statusChangeFunc) {
	params, ok := h.parseParams(c)
	if !ok {
		return
	}
	ctx := observability.WithFields(c.Request.Context(),
		observability.Field{Key: "campaign_id", Value: params.CampaignID.String()},
		observability.Field{Key: "ad_id", Value: params.AdID.String()},
	)

	result, err := change(ctx, params)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) parseParams(c *gin.Context) (processor.StatusParams, bool) {
	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid campaign ID format")
		return processor.StatusParams{}, false
	}
	adID, err := uuid.Parse(c.Param("ad_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid ad ID format")
		return processor.StatusParams{}, false
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.ValidationError(c, err)
		return processor.StatusParams{}, false
	}

	return processor.StatusParams{
		CampaignID:    campaignID,
		AdID:          adID,
		TokenOverride: req.AccessToken,
	}, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrAdNotFound):
		apierrors.NotFound(c, "Ad not found")
	case errors.Is(err, processor.ErrNotPublished):
		apierrors.BadRequest(c, "NOT_PUBLISHED", "Ad has not been published to Meta")
	default:
		var classified publisherrors.Classifier
		if errors.As(err, &classified) {
			apierrors.PublishFailure(c, err)
			return
		}
		apierrors.InternalError(c, err)
	}
}
