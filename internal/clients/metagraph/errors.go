package metagraph

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"adcraft-server/internal/publisherrors"
)

// GraphError is the single failure shape returned by Client. It covers both
// transport failures and Graph API error envelopes.
type GraphError struct {
	HTTPStatus  int
	Code        int
	Subcode     int
	Type        string
	Message     string
	UserTitle   string
	UserMessage string
	FBTraceID   string
	Transport   bool
	Timeout     bool

	// Malformed marks a 2xx response whose body could not be used.
	Malformed bool

	cause error
}

func (e *GraphError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("meta graph: request timed out: %s", e.Message)
	case e.Transport:
		return fmt.Sprintf("meta graph: transport error: %s", e.Message)
	case e.Code != 0:
		return fmt.Sprintf("meta graph: (#%d/%d) %s", e.Code, e.Subcode, e.Message)
	default:
		return fmt.Sprintf("meta graph: status %d: %s", e.HTTPStatus, e.Message)
	}
}

func (e *GraphError) Unwrap() error {
	return e.cause
}

// Kind classifies the error for the publish taxonomy.
func (e *GraphError) Kind() publisherrors.Code {
	if e.Timeout || e.Transport {
		return publisherrors.CodeNetworkError
	}
	if e.Malformed {
		return publisherrors.CodeAPIError
	}
	if e.Code == 0 && (e.HTTPStatus == http.StatusUnauthorized || e.HTTPStatus == http.StatusForbidden) {
		return publisherrors.CodeTokenExpired
	}
	msg := e.Message
	if e.UserMessage != "" {
		msg = msg + " " + e.UserMessage
	}
	code := publisherrors.ClassifyGraph(e.Code, e.Subcode, msg)
	if code == publisherrors.CodeUnknown && e.HTTPStatus >= 500 {
		return publisherrors.CodeAPIError
	}
	return code
}

// Details exposes the envelope fields for persistence alongside the classified error.
func (e *GraphError) Details() map[string]interface{} {
	details := map[string]interface{}{}
	if e.HTTPStatus != 0 {
		details["http_status"] = e.HTTPStatus
	}
	if e.Code != 0 {
		details["graph_code"] = e.Code
	}
	if e.Subcode != 0 {
		details["graph_subcode"] = e.Subcode
	}
	if e.Type != "" {
		details["graph_type"] = e.Type
	}
	if e.UserTitle != "" {
		details["user_title"] = e.UserTitle
	}
	if e.UserMessage != "" {
		details["user_message"] = e.UserMessage
	}
	if e.FBTraceID != "" {
		details["fbtrace_id"] = e.FBTraceID
	}
	return details
}

var _ publisherrors.Classifier = (*GraphError)(nil)

func transportError(err error) *GraphError {
	return &GraphError{
		Message:   err.Error(),
		Transport: true,
		Timeout:   isTimeout(err),
		cause:     err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func missingIDError(object string) *GraphError {
	return &GraphError{
		HTTPStatus: http.StatusOK,
		Message:    fmt.Sprintf("%s response missing id", object),
		Malformed:  true,
	}
}
