package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"adcraft-server/internal/apierrors"
	"adcraft-server/internal/clients/metagraph"
	"adcraft-server/internal/observability"
	"adcraft-server/internal/publishing/processor"

	"github.com/gin-gonic/gin"
)

const (
	maxWebhookBody  = 1 << 20
	signatureHeader = "X-Hub-Signature-256"
)

// RemoteUpdateApplier applies a status change pushed by Meta
type RemoteUpdateApplier interface {
	ApplyRemoteUpdate(ctx context.Context, update processor.RemoteUpdate) error
}

// WebhookHandler receives Meta ad account webhooks
type WebhookHandler struct {
	updates     RemoteUpdateApplier
	appSecret   string
	verifyToken string
	logger      *observability.Logger
}

func NewWebhookHandler(updates RemoteUpdateApplier, appSecret, verifyToken string, logger *observability.Logger) WebhookHandler {
	return WebhookHandler{
		updates:     updates,
		appSecret:   appSecret,
		verifyToken: verifyToken,
		logger:      logger,
	}
}

type webhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Time    int64  `json:"time"`
		Changes []struct {
			Field string          `json:"field"`
			Value json.RawMessage `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type adObjectChange struct {
	ID           string `json:"id"`
	Level        string `json:"level"`
	StatusName   string `json:"status_name"`
	ErrorCode    int    `json:"error_code"`
	ErrorSummary string `json:"error_summary"`
	ErrorMessage string `json:"error_message"`
}

// HandleVerify answers the subscription challenge Meta sends when the webhook is registered
func (h *WebhookHandler) HandleVerify(c *gin.Context) {
	if h.verifyToken == "" {
		apierrors.NotFound(c, "Webhook not configured")
		return
	}
	if c.Query("hub.mode") != "subscribe" ||
		!hmac.Equal([]byte(c.Query("hub.verify_token")), []byte(h.verifyToken)) {
		h.logger.Warn(c.Request.Context(), "meta webhook verification rejected")
		apierrors.Forbidden(c, "INVALID_VERIFY_TOKEN", "Verification token mismatch")
		return
	}
	c.String(http.StatusOK, c.Query("hub.challenge"))
}

// HandleEvent applies the ad status changes in a signed Meta webhook delivery
func (h *WebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Could not read request body")
		return
	}

	if !validSignature(h.appSecret, body, c.GetHeader(signatureHeader)) {
		h.logger.Warn(ctx, "meta webhook signature mismatch")
		apierrors.Unauthorized(c, "Invalid signature")
		return
	}

	updates, err := parseWebhook(body)
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Malformed webhook payload")
		return
	}

	applied := 0
	for _, update := range updates {
		err := h.updates.ApplyRemoteUpdate(ctx, update)
		switch {
		case err == nil:
			applied++
		case errors.Is(err, processor.ErrAdNotFound), errors.Is(err, processor.ErrInvalidTransition):
			// ads created outside this service, or stale deliveries
		default:
			h.logger.Error(observability.WithFields(ctx,
				observability.Field{Key: "meta_ad_id", Value: update.MetaAdID}),
				"failed to apply meta webhook update", err)
		}
	}

	h.logger.Info(ctx, "meta webhook processed",
		observability.Field{Key: "updates", Value: len(updates)},
		observability.Field{Key: "applied", Value: applied},
	)

	// Meta retries non-2xx deliveries, so per-ad failures still acknowledge
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// validSignature checks the sha256=<hex> HMAC of body under the app secret.
func validSignature(appSecret string, body []byte, header string) bool {
	if appSecret == "" {
		return false
	}
	sig, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}
	got, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}

// parseWebhook extracts ad-level status changes from an ad_account delivery.
func parseWebhook(body []byte) ([]processor.RemoteUpdate, error) {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.Object != "ad_account" {
		return nil, nil
	}

	var updates []processor.RemoteUpdate
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			var obj adObjectChange
			if err := json.Unmarshal(change.Value, &obj); err != nil {
				continue
			}
			if obj.ID == "" || (obj.Level != "" && !strings.EqualFold(obj.Level, "AD")) {
				continue
			}

			switch change.Field {
			case "with_issues_ad_objects":
				msg := obj.ErrorMessage
				if msg == "" {
					msg = obj.ErrorSummary
				}
				updates = append(updates, processor.RemoteUpdate{
					MetaAdID:        obj.ID,
					EffectiveStatus: metagraph.EffectiveStatusWithIssues,
					Note:            obj.ErrorSummary,
					ErrorCode:       obj.ErrorCode,
					ErrorMessage:    msg,
				})
			case "in_process_ad_objects", "ad_review":
				if obj.StatusName == "" {
					continue
				}
				updates = append(updates, processor.RemoteUpdate{
					MetaAdID:        obj.ID,
					EffectiveStatus: strings.ToUpper(obj.StatusName),
				})
			}
		}
	}
	return updates, nil
}
