//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor
package processor

import (
	"adcraft-server/internal/observability"
	"adcraft-server/internal/store"
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenAudience = "adcraft-server"

var (
	ErrInvalidJWTToken      = errors.New("invalid jwt token")
	ErrParseJWTToken        = errors.New("failed to parse jwt token")
	ErrExpiredToken         = errors.New("token expired")
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrCampaignAccessDenied = errors.New("campaign belongs to another user")
)

// CampaignStore resolves campaign ownership
type CampaignStore interface {
	GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error)
}

// BaseClaims are the claims carried by tokens issued to the web app
type BaseClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// UserID parses the subject claim
func (b BaseClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(b.Subject)
}

type AuthProcessor struct {
	store     CampaignStore
	jwtSecret []byte
	logger    *observability.Logger
}

func New(store CampaignStore, jwtSecret string, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

// ValidateJWTToken checks the HS256 signature, expiry and audience of a token
func (p *AuthProcessor) ValidateJWTToken(ctx context.Context, token string) (BaseClaims, error) {
	var claims BaseClaims
	t, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.jwtSecret, nil
	}, jwt.WithAudience(tokenAudience), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			p.logger.InfoWithError(ctx, "token expired", err)
			return BaseClaims{}, ErrExpiredToken
		}
		p.logger.InfoWithError(ctx, "failed to parse token", err)
		return BaseClaims{}, ErrParseJWTToken
	}
	if !t.Valid {
		return BaseClaims{}, ErrInvalidJWTToken
	}
	if _, err := claims.UserID(); err != nil {
		return BaseClaims{}, ErrInvalidJWTToken
	}
	return claims, nil
}

// AuthorizeCampaign returns the campaign when userID owns it
func (p *AuthProcessor) AuthorizeCampaign(ctx context.Context, userID, campaignID uuid.UUID) (store.Campaign, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID},
		observability.Field{Key: "campaign_id", Value: campaignID},
	)

	campaign, err := p.store.GetCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		p.logger.Error(ctx, "failed to load campaign for authorization", err)
		return store.Campaign{}, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign.UserID != userID {
		p.logger.Warn(ctx, "campaign access denied")
		return store.Campaign{}, ErrCampaignAccessDenied
	}
	return campaign, nil
}

// IssueToken signs a token for userID. Used by tooling and tests; the web app
// issues tokens with the same secret and audience.
func IssueToken(secret string, userID uuid.UUID, email string, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = userID.String()
	if len(claims.Audience) == 0 {
		claims.Audience = jwt.ClaimStrings{tokenAudience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, BaseClaims{RegisteredClaims: claims, Email: email})
	return token.SignedString([]byte(secret))
}
