package apierrors

import (
	"net/http"

	"adcraft-server/internal/observability"
	"adcraft-server/internal/publisherrors"

	"github.com/gin-gonic/gin"
)

var logger = observability.NewLogger()

// ErrorResponse is the JSON structure returned to API clients
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// PublishErrorBody is the taxonomy payload returned for failed Meta operations
type PublishErrorBody struct {
	Code            publisherrors.Code `json:"code"`
	Message         string             `json:"message"`
	UserMessage     string             `json:"user_message"`
	SuggestedAction string             `json:"suggested_action"`
	HelpLink        string             `json:"help_link,omitempty"`
	Retryable       bool               `json:"retryable"`
}

// PublishErrorResponse wraps PublishErrorBody under the "error" key
type PublishErrorResponse struct {
	Error PublishErrorBody `json:"error"`
}

// respond writes the error response and logs correlation info
func respond(c *gin.Context, statusCode int, code, message string) {
	ctx := c.Request.Context()
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status_code", Value: statusCode},
		observability.Field{Key: "error_code", Value: code},
		observability.Field{Key: "error_message", Value: message},
	)
	logger.Info(ctx, "API error response")

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, "NOT_FOUND", message)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, code, message string) {
	respond(c, http.StatusBadRequest, code, message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, code, message string) {
	respond(c, http.StatusForbidden, code, message)
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, code, message string) {
	respond(c, http.StatusConflict, code, message)
}

// ServiceUnavailable sends a 503 response and logs the internal error
func ServiceUnavailable(c *gin.Context, code, message string, internalErr error) {
	logger.Error(c.Request.Context(), "service unavailable", internalErr)
	respond(c, http.StatusServiceUnavailable, code, message)
}

// InternalError sends a sanitized 500 response - never exposes internal details
func InternalError(c *gin.Context, internalErr error) {
	logger.Error(c.Request.Context(), "internal error", internalErr)
	respond(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred. Please try again later.")
}

// PublishStatusCode maps a taxonomy kind to the HTTP status of a failed Meta operation
func PublishStatusCode(code publisherrors.Code) int {
	switch code {
	case publisherrors.CodeTokenExpired:
		return http.StatusUnauthorized
	case publisherrors.CodeValidation, publisherrors.CodePolicyViolation, publisherrors.CodePaymentRequired:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewPublishErrorBody copies the client-safe fields of pe
func NewPublishErrorBody(pe *publisherrors.PublishError) PublishErrorBody {
	return PublishErrorBody{
		Code:            pe.Code,
		Message:         pe.Message,
		UserMessage:     pe.UserMessage,
		SuggestedAction: pe.SuggestedAction,
		HelpLink:        pe.HelpLink,
		Retryable:       pe.Retryable,
	}
}

// PublishFailure classifies err and sends the taxonomy payload
func PublishFailure(c *gin.Context, err error) {
	pe := publisherrors.FromError(err)
	if pe == nil {
		return
	}
	status := PublishStatusCode(pe.Code)

	ctx := observability.WithFields(c.Request.Context(),
		observability.Field{Key: "status_code", Value: status},
		observability.Field{Key: "error_code", Value: string(pe.Code)},
	)
	logger.Error(ctx, "meta operation failed", err)

	c.AbortWithStatusJSON(status, PublishErrorResponse{Error: NewPublishErrorBody(pe)})
}
