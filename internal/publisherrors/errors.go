package publisherrors

import (
	"context"
	"errors"
	"net"
)

// Classifier is implemented by errors that already know their kind.
type Classifier interface {
	error
	Kind() Code
}

// PublishError is a classified failure with user guidance attached.
type PublishError struct {
	Code            Code                   `json:"code"`
	Message         string                 `json:"message"`
	UserMessage     string                 `json:"user_message"`
	SuggestedAction string                 `json:"suggested_action"`
	HelpLink        string                 `json:"help_link,omitempty"`
	Retryable       bool                   `json:"retryable"`
	Details         map[string]interface{} `json:"details,omitempty"`
}

func (e *PublishError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *PublishError) Kind() Code {
	return e.Code
}

// New builds a PublishError for code with the technical message.
func New(code Code, message string) *PublishError {
	d := Describe(code)
	if !code.Valid() {
		code = CodeUnknown
	}
	return &PublishError{
		Code:            code,
		Message:         message,
		UserMessage:     d.UserMessage,
		SuggestedAction: d.SuggestedAction,
		HelpLink:        d.HelpLink,
		Retryable:       d.Retryable,
	}
}

type sentinel struct {
	code Code
	msg  string
}

func (s *sentinel) Error() string { return s.msg }
func (s *sentinel) Kind() Code    { return s.code }

// NewSentinel returns a comparable error value that classifies as code.
func NewSentinel(code Code, msg string) error {
	return &sentinel{code: code, msg: msg}
}

// FromError classifies any error. A nil error yields nil.
func FromError(err error) *PublishError {
	if err == nil {
		return nil
	}

	var pe *PublishError
	if errors.As(err, &pe) {
		return pe
	}

	var classified Classifier
	if errors.As(err, &classified) {
		out := New(classified.Kind(), err.Error())
		if d, ok := classified.(interface{ Details() map[string]interface{} }); ok {
			out.Details = d.Details()
		}
		return out
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return New(CodeNetworkError, err.Error())
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return New(CodeNetworkError, err.Error())
	}

	return New(Classify("", err.Error()), err.Error())
}
