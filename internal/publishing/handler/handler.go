package handler

import (
	"errors"
	"net/http"

	"adcraft-server/internal/apierrors"
	"adcraft-server/internal/observability"
	"adcraft-server/internal/publisherrors"
	"adcraft-server/internal/publishing/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.PublishingProcessor
	logger    *observability.Logger
}

func New(processor processor.PublishingProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// PublishResponse is returned by the publish endpoint
type PublishResponse struct {
	Success  bool                        `json:"success"`
	MetaAdID string                      `json:"meta_ad_id,omitempty"`
	Status   processor.PublishState      `json:"status,omitempty"`
	Error    *apierrors.PublishErrorBody `json:"error,omitempty"`
}

// ReviewRequest records a review decision made outside Meta
type ReviewRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Reason   string `json:"reason" binding:"max=1000"`
}

var datePresets = map[string]bool{
	"today":      true,
	"yesterday":  true,
	"last_7d":    true,
	"last_14d":   true,
	"last_30d":   true,
	"this_month": true,
	"last_month": true,
	"lifetime":   true,
}

// HandlePublishAd submits a draft ad to Meta
func (h *Handler) HandlePublishAd(c *gin.Context) {
	campaignID, adID, ok := h.getIDs(c)
	if !ok {
		return
	}
	ctx := observability.WithFields(c.Request.Context(),
		observability.Field{Key: "campaign_id", Value: campaignID.String()},
		observability.Field{Key: "ad_id", Value: adID.String()},
	)

	result, err := h.processor.Publish(ctx, processor.PublishParams{CampaignID: campaignID, AdID: adID})
	if err != nil {
		h.handleError(c, err)
		return
	}

	status, body := publishResponse(result)
	c.JSON(status, body)
}

// HandleGetPublishStatus returns the ad's publishing state, optionally refreshed from Meta
func (h *Handler) HandleGetPublishStatus(c *gin.Context) {
	campaignID, adID, ok := h.getIDs(c)
	if !ok {
		return
	}
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "ad_id", Value: adID.String()})

	refresh := c.Query("refresh") == "true"

	view, err := h.processor.GetStatus(ctx, campaignID, adID, refresh)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// HandleRefreshStatus pulls the review decision from Meta now
func (h *Handler) HandleRefreshStatus(c *gin.Context) {
	campaignID, adID, ok := h.getIDs(c)
	if !ok {
		return
	}
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "ad_id", Value: adID.String()})

	view, err := h.processor.RefreshStatus(ctx, campaignID, adID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// HandleReviewAd applies a manual review decision
func (h *Handler) HandleReviewAd(c *gin.Context) {
	campaignID, adID, ok := h.getIDs(c)
	if !ok {
		return
	}
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "ad_id", Value: adID.String()})

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	view, err := h.processor.ApplyManualReview(ctx, campaignID, adID, req.Decision, req.Reason)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// HandleGetInsights returns delivery metrics for a published ad
func (h *Handler) HandleGetInsights(c *gin.Context) {
	campaignID, adID, ok := h.getIDs(c)
	if !ok {
		return
	}
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "ad_id", Value: adID.String()})

	datePreset := c.DefaultQuery("date_preset", "lifetime")
	if !datePresets[datePreset] {
		apierrors.BadRequest(c, "INVALID_INPUT", "Unsupported date_preset")
		return
	}

	insights, err := h.processor.GetInsights(ctx, campaignID, adID, datePreset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}

func publishResponse(result processor.PublishResult) (int, PublishResponse) {
	resp := PublishResponse{
		Success:  result.Success,
		MetaAdID: result.MetaAdID,
		Status:   result.Status,
	}
	if result.Error == nil {
		return http.StatusOK, resp
	}
	body := apierrors.NewPublishErrorBody(result.Error)
	resp.Error = &body
	status := apierrors.PublishStatusCode(result.Error.Code)
	if result.Remote && result.Error.Code != publisherrors.CodeTokenExpired {
		// only pre-flight rejections are the caller's fault
		status = http.StatusInternalServerError
	}
	return status, resp
}

func (h *Handler) getIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid campaign ID format")
		return uuid.UUID{}, uuid.UUID{}, false
	}
	adID, err := uuid.Parse(c.Param("ad_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid ad ID format")
		return uuid.UUID{}, uuid.UUID{}, false
	}
	return campaignID, adID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var conflict *processor.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "already_published",
				"message": "This ad has already been published to Meta",
			},
			"meta_ad_id": conflict.MetaAdID,
		})
	case errors.Is(err, processor.ErrPublishInProgress):
		apierrors.Conflict(c, "PUBLISH_IN_PROGRESS", "A publish attempt for this ad is already running")
	case errors.Is(err, processor.ErrAdNotFound):
		apierrors.NotFound(c, "Ad not found")
	case errors.Is(err, processor.ErrNotPublished):
		apierrors.BadRequest(c, "NOT_PUBLISHED", "Ad has not been published to Meta")
	case errors.Is(err, processor.ErrInvalidDecision):
		apierrors.BadRequest(c, "INVALID_INPUT", "Decision must be approved or rejected")
	case errors.Is(err, processor.ErrInvalidTransition):
		apierrors.Conflict(c, "INVALID_TRANSITION", "The ad cannot move to that state from its current state")
	default:
		var classified publisherrors.Classifier
		if errors.As(err, &classified) {
			apierrors.PublishFailure(c, err)
			return
		}
		apierrors.InternalError(c, err)
	}
}
