package handler

import (
	"errors"
	"strings"

	"adcraft-server/internal/apierrors"
	"adcraft-server/internal/auth/processor"
	"adcraft-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// UserIDKey holds the authenticated user's id in the gin context
	UserIDKey = "User-ID"
	// CampaignKey holds the authorized store.Campaign in the gin context
	CampaignKey = "Campaign"
)

type Handler struct {
	authProcessor processor.AuthProcessor
	logger        *observability.Logger
}

func New(authProcessor processor.AuthProcessor, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, logger: logger}
}

// HandleJWTMiddleware rejects requests without a valid bearer token
func (h *Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		return
	}

	claims, err := h.authProcessor.ValidateJWTToken(ctx, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		apierrors.Unauthorized(c, err.Error())
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		return
	}

	c.Set(UserIDKey, userID)
	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: userID})
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// HandleCampaignAccess requires the :campaign_id path parameter to name a
// campaign owned by the authenticated user. Runs after HandleJWTMiddleware.
func (h *Handler) HandleCampaignAccess(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := UserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		return
	}
	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid campaign ID format")
		return
	}

	campaign, err := h.authProcessor.AuthorizeCampaign(ctx, userID, campaignID)
	if err != nil {
		switch {
		case errors.Is(err, processor.ErrCampaignNotFound):
			apierrors.NotFound(c, "Campaign not found")
		case errors.Is(err, processor.ErrCampaignAccessDenied):
			apierrors.Forbidden(c, "FORBIDDEN", "You do not have access to this campaign")
		default:
			apierrors.InternalError(c, err)
		}
		return
	}

	c.Set(CampaignKey, campaign)
	c.Next()
}

// UserID returns the user set by HandleJWTMiddleware
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
