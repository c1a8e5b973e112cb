package handler

import (
	"errors"
	"net/http"

	"adcraft-server/internal/apierrors"
	"adcraft-server/internal/connection/processor"
	"adcraft-server/internal/observability"
	"adcraft-server/internal/publisherrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.ConnectionProcessor
	logger    *observability.Logger
}

func New(processor processor.ConnectionProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CompleteOAuthRequest carries the code Meta redirected back with
type CompleteOAuthRequest struct {
	Code string `json:"code" binding:"required,min=1"`
}

// SelectAssetsRequest represents the assets picked after connecting
type SelectAssetsRequest struct {
	BusinessID  *string `json:"business_id,omitempty" binding:"omitempty,min=1"`
	PageID      *string `json:"page_id,omitempty" binding:"omitempty,min=1"`
	AdAccountID *string `json:"ad_account_id,omitempty" binding:"omitempty,min=1"`
	InstagramID *string `json:"instagram_id,omitempty" binding:"omitempty,min=1"`
}

// HandleGetConnection returns the campaign's Meta connection without token material
func (h *Handler) HandleGetConnection(c *gin.Context) {
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "campaign_id", Value: campaignID.String()})

	status, err := h.processor.GetConnectionStatus(ctx, campaignID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// HandleCompleteOAuth exchanges the OAuth code and stores the resulting token
func (h *Handler) HandleCompleteOAuth(c *gin.Context) {
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "campaign_id", Value: campaignID.String()})

	var req CompleteOAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	status, err := h.processor.CompleteOAuth(ctx, campaignID, req.Code)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// HandleSelectAssets stores the selected business, page, ad account and Instagram account
func (h *Handler) HandleSelectAssets(c *gin.Context) {
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "campaign_id", Value: campaignID.String()})

	var req SelectAssetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	status, err := h.processor.SelectAssets(ctx, campaignID, processor.AssetSelection{
		BusinessID:  req.BusinessID,
		PageID:      req.PageID,
		AdAccountID: req.AdAccountID,
		InstagramID: req.InstagramID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// HandleVerifyPayment checks the selected ad account for a payment method
func (h *Handler) HandleVerifyPayment(c *gin.Context) {
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "campaign_id", Value: campaignID.String()})

	readiness, err := h.processor.VerifyPayment(ctx, campaignID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment_connected": !readiness.Has(processor.RequirementPaymentMethod),
		"readiness":         readiness,
	})
}

func (h *Handler) getCampaignID(c *gin.Context) (uuid.UUID, bool) {
	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid campaign ID format")
		return uuid.UUID{}, false
	}
	return campaignID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrInvalidOAuthCode):
		apierrors.BadRequest(c, "INVALID_INPUT", "OAuth code is required")
	case errors.Is(err, processor.ErrNoAssetsSelected):
		apierrors.BadRequest(c, "INVALID_INPUT", "Select at least one asset")
	case errors.Is(err, processor.ErrAdAccountNotSelected):
		apierrors.BadRequest(c, "AD_ACCOUNT_REQUIRED", "Select an ad account before verifying payment")
	case errors.Is(err, processor.ErrConnectionNotFound):
		apierrors.NotFound(c, "Meta connection not found")
	case errors.Is(err, processor.ErrNotConnected):
		apierrors.PublishFailure(c, err)
	default:
		// Graph failures carry a taxonomy kind; anything else is internal
		var classified publisherrors.Classifier
		if errors.As(err, &classified) {
			apierrors.PublishFailure(c, err)
			return
		}
		apierrors.InternalError(c, err)
	}
}
