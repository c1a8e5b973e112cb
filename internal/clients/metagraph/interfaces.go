package metagraph

import (
	"context"
)

// GraphClient defines the Meta Graph API operations used by the publishing core
type GraphClient interface {
	// ExchangeCode exchanges an OAuth authorization code for a short-lived user token
	ExchangeCode(ctx context.Context, code string) (TokenResponse, error)

	// ExchangeLongLivedToken upgrades a short-lived token via fb_exchange_token
	ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (TokenResponse, error)

	// GetMe returns the Meta user the token belongs to
	GetMe(ctx context.Context, token string) (User, error)

	// GetAdAccount returns the ad account including its funding source
	GetAdAccount(ctx context.Context, token, adAccountID string) (AdAccount, error)

	CreateAdCreative(ctx context.Context, token string, params CreateAdCreativeParams) (string, error)
	CreateAd(ctx context.Context, token string, params CreateAdParams) (string, error)
	UpdateAdStatus(ctx context.Context, token, adID, status string) error
	GetAd(ctx context.Context, token, adID string) (Ad, error)
	GetAdInsights(ctx context.Context, token, adID, datePreset string) (Insights, error)
}

var _ GraphClient = (*Client)(nil)
