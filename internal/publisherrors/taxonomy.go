// Package publisherrors maps low-level publish failures to a fixed set of
// error kinds with user-facing guidance.
package publisherrors

import (
	"strconv"
	"strings"
)

// Code is a publish error kind.
type Code string

const (
	CodeValidation      Code = "validation_error"
	CodePolicyViolation Code = "policy_violation"
	CodePaymentRequired Code = "payment_required"
	CodeTokenExpired    Code = "token_expired"
	CodeAPIError        Code = "api_error"
	CodeNetworkError    Code = "network_error"
	CodeUnknown         Code = "unknown_error"
)

// Codes lists every kind Classify can return.
var Codes = []Code{
	CodeValidation,
	CodePolicyViolation,
	CodePaymentRequired,
	CodeTokenExpired,
	CodeAPIError,
	CodeNetworkError,
	CodeUnknown,
}

// Valid reports whether c is one of the defined kinds.
func (c Code) Valid() bool {
	for _, known := range Codes {
		if c == known {
			return true
		}
	}
	return false
}

// Description is the user-facing guidance for a kind.
type Description struct {
	Title           string
	UserMessage     string
	SuggestedAction string
	HelpLink        string
	Retryable       bool
}

var descriptions = map[Code]Description{
	CodeValidation: {
		Title:           "Ad details need attention",
		UserMessage:     "Meta rejected some of the ad's details before review.",
		SuggestedAction: "Check the headline, text, link and image, then publish again.",
	},
	CodePolicyViolation: {
		Title:           "Ad doesn't meet Meta's advertising policies",
		UserMessage:     "Meta's review found content that isn't allowed in ads.",
		SuggestedAction: "Edit the creative to follow Meta's advertising standards and submit it again.",
		HelpLink:        "https://transparency.meta.com/policies/ad-standards/",
	},
	CodePaymentRequired: {
		Title:           "Payment method required",
		UserMessage:     "Your Meta ad account doesn't have a valid payment method.",
		SuggestedAction: "Add a payment method in Meta Billing, then verify payment here.",
		HelpLink:        "https://business.facebook.com/billing_hub",
	},
	CodeTokenExpired: {
		Title:           "Meta connection expired",
		UserMessage:     "We lost permission to manage ads on your Meta account.",
		SuggestedAction: "Reconnect your Meta account and try again.",
	},
	CodeAPIError: {
		Title:           "Meta couldn't process the request",
		UserMessage:     "Meta returned an error while handling your ad.",
		SuggestedAction: "Wait a few minutes and try again.",
		Retryable:       true,
	},
	CodeNetworkError: {
		Title:           "Couldn't reach Meta",
		UserMessage:     "The connection to Meta failed or timed out.",
		SuggestedAction: "Try again now.",
		Retryable:       true,
	},
	CodeUnknown: {
		Title:           "Something went wrong",
		UserMessage:     "An unexpected error occurred while publishing your ad.",
		SuggestedAction: "Contact support if this keeps happening.",
	},
}

// Describe returns the guidance for code. Unknown codes get the unknown_error text.
func Describe(code Code) Description {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return descriptions[CodeUnknown]
}

// Graph API error codes and subcodes
var (
	tokenCodes   = map[int]bool{102: true, 190: true, 463: true, 467: true}
	apiCodes     = map[int]bool{1: true, 2: true, 4: true, 17: true, 32: true, 613: true, 80004: true}
	paymentCodes = map[int]bool{1359188: true}
	policyCodes  = map[int]bool{368: true}
)

var networkCodes = map[string]bool{
	"etimedout":    true,
	"econnreset":   true,
	"econnrefused": true,
	"enotfound":    true,
	"timeout":      true,
	"network":      true,
}

// Classify maps a raw code and message to a kind. It is total: any input,
// including empty strings, yields one of Codes.
func Classify(rawCode, rawMessage string) Code {
	code := strings.TrimSpace(rawCode)

	if c := Code(strings.ToLower(code)); c.Valid() {
		return c
	}
	if networkCodes[strings.ToLower(code)] {
		return CodeNetworkError
	}
	if n, err := strconv.Atoi(code); err == nil {
		if c, ok := classifyNumeric(n); ok {
			return c
		}
	}
	return classifyMessage(rawMessage)
}

// ClassifyGraph classifies a Graph API error envelope. The subcode is more
// specific than the code, so it wins when it is recognized.
func ClassifyGraph(code, subcode int, message string) Code {
	if subcode != 0 {
		if c, ok := classifyNumeric(subcode); ok {
			return c
		}
	}
	if code != 0 {
		if c, ok := classifyNumeric(code); ok {
			// Code 100 is a generic parameter error; the message often says more.
			if c == CodeValidation {
				if m := classifyMessage(message); m == CodePolicyViolation || m == CodePaymentRequired {
					return m
				}
			}
			return c
		}
	}
	return classifyMessage(message)
}

func classifyNumeric(n int) (Code, bool) {
	switch {
	case tokenCodes[n]:
		return CodeTokenExpired, true
	case paymentCodes[n]:
		return CodePaymentRequired, true
	case policyCodes[n], n >= 1815000 && n <= 1815999:
		return CodePolicyViolation, true
	case n == 100, n >= 1487000 && n <= 1487999:
		return CodeValidation, true
	case apiCodes[n]:
		return CodeAPIError, true
	}
	return "", false
}

var messageRules = []struct {
	code     Code
	keywords []string
}{
	{CodeTokenExpired, []string{"access token", "session has expired", "oauth", "token has expired", "not authorized"}},
	{CodePaymentRequired, []string{"payment", "funding", "billing"}},
	{CodePolicyViolation, []string{"policy", "policies", "disapproved", "prohibited"}},
	{CodeNetworkError, []string{"timeout", "timed out", "deadline exceeded", "connection refused", "connection reset", "no such host", "network"}},
	{CodeValidation, []string{"invalid parameter", "is required", "must be", "invalid"}},
	{CodeAPIError, []string{"rate limit", "too many calls", "temporarily unavailable", "unexpected error"}},
}

func classifyMessage(message string) Code {
	msg := strings.ToLower(message)
	if strings.TrimSpace(msg) == "" {
		return CodeUnknown
	}
	for _, rule := range messageRules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.code
			}
		}
	}
	return CodeUnknown
}
