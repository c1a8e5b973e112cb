package metagraph

import (
	"sort"
	"strings"
	"time"
)

// Ad statuses accepted by UpdateAdStatus and CreateAd
const (
	StatusActive   = "ACTIVE"
	StatusPaused   = "PAUSED"
	StatusArchived = "ARCHIVED"
)

// Effective statuses reported by GetAd
const (
	EffectiveStatusActive             = "ACTIVE"
	EffectiveStatusPaused             = "PAUSED"
	EffectiveStatusCampaignPaused     = "CAMPAIGN_PAUSED"
	EffectiveStatusAdSetPaused        = "ADSET_PAUSED"
	EffectiveStatusDisapproved        = "DISAPPROVED"
	EffectiveStatusPendingReview      = "PENDING_REVIEW"
	EffectiveStatusInProcess          = "IN_PROCESS"
	EffectiveStatusPendingBillingInfo = "PENDING_BILLING_INFO"
	EffectiveStatusWithIssues         = "WITH_ISSUES"
	EffectiveStatusPreapproved        = "PREAPPROVED"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExpiresAt returns the absolute expiry, or nil for tokens without one.
func (t TokenResponse) ExpiresAt(now time.Time) *time.Time {
	if t.ExpiresIn <= 0 {
		return nil
	}
	at := now.Add(time.Duration(t.ExpiresIn) * time.Second)
	return &at
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FundingSource struct {
	ID            string `json:"id"`
	DisplayString string `json:"display_string"`
	Type          int    `json:"type"`
}

type AdAccount struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	AccountStatus        int            `json:"account_status"`
	Currency             string         `json:"currency"`
	FundingSourceDetails *FundingSource `json:"funding_source_details"`
}

// HasFundingSource reports whether Meta has a payment method on file for the account.
func (a AdAccount) HasFundingSource() bool {
	return a.FundingSourceDetails != nil && a.FundingSourceDetails.ID != ""
}

type CreateAdCreativeParams struct {
	AdAccountID      string
	Name             string
	PageID           string
	InstagramActorID string
	Message          string
	Headline         string
	Description      string
	Link             string
	ImageHash        string
	ImageURL         string
	CallToAction     string
}

type CreateAdParams struct {
	AdAccountID string
	Name        string
	AdSetID     string
	CreativeID  string
	Status      string
}

type AdReviewFeedback struct {
	Global            map[string]string      `json:"global,omitempty"`
	PlacementSpecific map[string]interface{} `json:"placement_specific,omitempty"`
}

// Summary joins the global review reasons into a single sorted line.
func (f *AdReviewFeedback) Summary() string {
	if f == nil || len(f.Global) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f.Global))
	for policy, reason := range f.Global {
		if reason == "" {
			parts = append(parts, policy)
			continue
		}
		parts = append(parts, policy+": "+reason)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

type Ad struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Status           string            `json:"status"`
	EffectiveStatus  string            `json:"effective_status"`
	AdReviewFeedback *AdReviewFeedback `json:"ad_review_feedback,omitempty"`
}

type Insights struct {
	Impressions string `json:"impressions"`
	Reach       string `json:"reach"`
	Clicks      string `json:"clicks"`
	Spend       string `json:"spend"`
	CTR         string `json:"ctr"`
	CPC         string `json:"cpc"`
	DateStart   string `json:"date_start"`
	DateStop    string `json:"date_stop"`
}

type idResponse struct {
	ID string `json:"id"`
}

type successResponse struct {
	Success bool `json:"success"`
}
