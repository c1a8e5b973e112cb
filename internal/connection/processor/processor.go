package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"adcraft-server/internal/clients/metagraph"
	"adcraft-server/internal/observability"
	"adcraft-server/internal/publisherrors"
	"adcraft-server/internal/store"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ConnectionStore defines the database operations required by ConnectionProcessor
type ConnectionStore interface {
	GetMetaConnectionByCampaignID(ctx context.Context, campaignID uuid.UUID) (store.MetaConnection, error)
	UpsertMetaConnectionToken(ctx context.Context, params store.UpsertMetaConnectionTokenParams) (store.MetaConnection, error)
	UpdateMetaConnectionAssets(ctx context.Context, params store.UpdateMetaConnectionAssetsParams) (store.MetaConnection, error)
	MarkMetaPaymentConnected(ctx context.Context, campaignID uuid.UUID) error
}

// GraphClient defines the Meta Graph operations used during connection setup
type GraphClient interface {
	ExchangeCode(ctx context.Context, code string) (metagraph.TokenResponse, error)
	ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (metagraph.TokenResponse, error)
	GetMe(ctx context.Context, token string) (metagraph.User, error)
	GetAdAccount(ctx context.Context, token, adAccountID string) (metagraph.AdAccount, error)
}

// EventPublisher publishes connection lifecycle events
type EventPublisher interface {
	PublishMetaConnected(ctx context.Context, campaignID uuid.UUID, metaUserID string)
}

var (
	// ErrNotConnected means no usable token exists; the user has to reconnect.
	ErrNotConnected = publisherrors.NewSentinel(publisherrors.CodeTokenExpired, "meta connection missing or expired")

	ErrConnectionNotFound   = errors.New("meta connection not found")
	ErrAdAccountNotSelected = errors.New("no ad account selected")
	ErrInvalidOAuthCode     = errors.New("oauth code is required")
	ErrNoAssetsSelected     = errors.New("at least one asset must be selected")
)

type TokenSource string

const (
	TokenSourceUserApp TokenSource = "user_app"
	TokenSourceSystem  TokenSource = "system"
)

// Token is a usable access token for a campaign
type Token struct {
	Value     string
	Source    TokenSource
	ExpiresAt *time.Time
}

// Requirement is one publish prerequisite
type Requirement string

const (
	RequirementToken         Requirement = "token"
	RequirementAdAccount     Requirement = "ad_account"
	RequirementPaymentMethod Requirement = "payment_method"
)

// Readiness lists the prerequisites that are still missing
type Readiness struct {
	Ready   bool          `json:"ready"`
	Missing []Requirement `json:"missing"`
}

// Has reports whether r is missing
func (r Readiness) Has(req Requirement) bool {
	for _, m := range r.Missing {
		if m == req {
			return true
		}
	}
	return false
}

// AssetSelection carries the assets chosen after OAuth. Nil fields are left unchanged.
type AssetSelection struct {
	BusinessID  *string
	PageID      *string
	AdAccountID *string
	InstagramID *string
}

// ConnectionStatus is a token-free view of a campaign's connection
type ConnectionStatus struct {
	Connected        bool        `json:"connected"`
	TokenSource      TokenSource `json:"token_source,omitempty"`
	TokenExpiresAt   *time.Time  `json:"token_expires_at,omitempty"`
	MetaUserID       *string     `json:"meta_user_id,omitempty"`
	BusinessID       *string     `json:"business_id,omitempty"`
	PageID           *string     `json:"page_id,omitempty"`
	AdAccountID      *string     `json:"ad_account_id,omitempty"`
	InstagramID      *string     `json:"instagram_id,omitempty"`
	PaymentConnected bool        `json:"payment_connected"`
	AdminConnected   bool        `json:"admin_connected"`
	Readiness        Readiness   `json:"readiness"`
}

type ConnectionProcessor struct {
	store  ConnectionStore
	graph  GraphClient
	events EventPublisher
	logger *observability.Logger
	now    func() time.Time
}

func New(store ConnectionStore, graph GraphClient, events EventPublisher, logger *observability.Logger) ConnectionProcessor {
	return ConnectionProcessor{
		store:  store,
		graph:  graph,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

func usable(token *string, expiresAt *time.Time, now time.Time) bool {
	if token == nil || *token == "" {
		return false
	}
	// Meta issues some tokens without an expiry (system users, never-expiring page tokens)
	return expiresAt == nil || expiresAt.After(now)
}

// bestToken prefers the user-app token over the system token.
func bestToken(conn store.MetaConnection, now time.Time) (Token, bool) {
	if usable(conn.UserAppToken, conn.UserAppTokenExpiresAt, now) {
		return Token{Value: *conn.UserAppToken, Source: TokenSourceUserApp, ExpiresAt: conn.UserAppTokenExpiresAt}, true
	}
	if usable(conn.SystemToken, conn.SystemTokenExpiresAt, now) {
		return Token{Value: *conn.SystemToken, Source: TokenSourceSystem, ExpiresAt: conn.SystemTokenExpiresAt}, true
	}
	return Token{}, false
}

func readinessFor(conn store.MetaConnection, now time.Time) Readiness {
	missing := []Requirement{}
	if _, ok := bestToken(conn, now); !ok {
		missing = append(missing, RequirementToken)
	}
	if conn.SelectedAdAccountID == nil || *conn.SelectedAdAccountID == "" {
		missing = append(missing, RequirementAdAccount)
	}
	if !conn.AdAccountPaymentConnected {
		missing = append(missing, RequirementPaymentMethod)
	}
	return Readiness{Ready: len(missing) == 0, Missing: missing}
}

func notConnectedReadiness() Readiness {
	return Readiness{
		Ready:   false,
		Missing: []Requirement{RequirementToken, RequirementAdAccount, RequirementPaymentMethod},
	}
}

// GetToken returns the best non-expired token for the campaign or ErrNotConnected
func (p *ConnectionProcessor) GetToken(ctx context.Context, campaignID uuid.UUID) (Token, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID.String()})

	conn, err := p.store.GetMetaConnectionByCampaignID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Token{}, ErrNotConnected
		}
		p.logger.Error(ctx, "failed to load meta connection", err)
		return Token{}, fmt.Errorf("failed to load meta connection: %w", err)
	}

	token, ok := bestToken(conn, p.now())
	if !ok {
		p.logger.Warn(ctx, "meta connection has no usable token")
		return Token{}, ErrNotConnected
	}
	return token, nil
}

// IsPublishReady reports which publish prerequisites are missing
func (p *ConnectionProcessor) IsPublishReady(ctx context.Context, campaignID uuid.UUID) (Readiness, error) {
	conn, err := p.store.GetMetaConnectionByCampaignID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notConnectedReadiness(), nil
		}
		p.logger.Error(ctx, "failed to load meta connection", err)
		return Readiness{}, fmt.Errorf("failed to load meta connection: %w", err)
	}
	return readinessFor(conn, p.now()), nil
}

// MarkPaymentConnected records that the ad account has a verified payment method
func (p *ConnectionProcessor) MarkPaymentConnected(ctx context.Context, campaignID uuid.UUID) error {
	if err := p.store.MarkMetaPaymentConnected(ctx, campaignID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrConnectionNotFound
		}
		p.logger.Error(ctx, "failed to mark payment connected", err)
		return fmt.Errorf("failed to mark payment connected: %w", err)
	}
	return nil
}

// CompleteOAuth exchanges the authorization code for a long-lived token and
// stores it, replacing any previous token for the campaign.
func (p *ConnectionProcessor) CompleteOAuth(ctx context.Context, campaignID uuid.UUID, code string) (ConnectionStatus, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID.String()})

	if strings.TrimSpace(code) == "" {
		return ConnectionStatus{}, ErrInvalidOAuthCode
	}

	short, err := p.graph.ExchangeCode(ctx, code)
	if err != nil {
		p.logger.Error(ctx, "failed to exchange oauth code", err)
		return ConnectionStatus{}, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	long, err := p.graph.ExchangeLongLivedToken(ctx, short.AccessToken)
	if err != nil {
		p.logger.Error(ctx, "failed to exchange long-lived token", err)
		return ConnectionStatus{}, fmt.Errorf("failed to exchange long-lived token: %w", err)
	}

	me, err := p.graph.GetMe(ctx, long.AccessToken)
	if err != nil {
		p.logger.Error(ctx, "failed to fetch meta user", err)
		return ConnectionStatus{}, fmt.Errorf("failed to fetch meta user: %w", err)
	}

	conn, err := p.store.UpsertMetaConnectionToken(ctx, store.UpsertMetaConnectionTokenParams{
		CampaignID:     campaignID,
		UserAppToken:   long.AccessToken,
		ExpiresAt:      long.ExpiresAt(p.now()),
		MetaUserID:     me.ID,
		AdminConnected: true,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to store meta connection", err)
		return ConnectionStatus{}, fmt.Errorf("failed to store meta connection: %w", err)
	}

	p.events.PublishMetaConnected(ctx, campaignID, me.ID)
	p.logger.Info(ctx, "meta account connected", observability.Field{Key: "meta_user_id", Value: me.ID})

	return p.statusFor(conn), nil
}

// SelectAssets stores the business, page, ad account and Instagram account to publish with
func (p *ConnectionProcessor) SelectAssets(ctx context.Context, campaignID uuid.UUID, selection AssetSelection) (ConnectionStatus, error) {
	if selection.BusinessID == nil && selection.PageID == nil && selection.AdAccountID == nil && selection.InstagramID == nil {
		return ConnectionStatus{}, ErrNoAssetsSelected
	}

	if selection.AdAccountID != nil {
		normalized := metagraph.NormalizeAdAccountID(*selection.AdAccountID)
		selection.AdAccountID = &normalized
	}

	conn, err := p.store.UpdateMetaConnectionAssets(ctx, store.UpdateMetaConnectionAssetsParams{
		CampaignID:  campaignID,
		BusinessID:  selection.BusinessID,
		PageID:      selection.PageID,
		AdAccountID: selection.AdAccountID,
		InstagramID: selection.InstagramID,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ConnectionStatus{}, ErrConnectionNotFound
		}
		p.logger.Error(ctx, "failed to update meta connection assets", err)
		return ConnectionStatus{}, fmt.Errorf("failed to update meta connection assets: %w", err)
	}

	return p.statusFor(conn), nil
}

// VerifyPayment checks the selected ad account for a funding source and
// records it when present. A missing funding source never clears the flag.
func (p *ConnectionProcessor) VerifyPayment(ctx context.Context, campaignID uuid.UUID) (Readiness, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID.String()})

	conn, err := p.store.GetMetaConnectionByCampaignID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Readiness{}, ErrNotConnected
		}
		p.logger.Error(ctx, "failed to load meta connection", err)
		return Readiness{}, fmt.Errorf("failed to load meta connection: %w", err)
	}

	now := p.now()
	token, ok := bestToken(conn, now)
	if !ok {
		return Readiness{}, ErrNotConnected
	}
	if conn.SelectedAdAccountID == nil || *conn.SelectedAdAccountID == "" {
		return Readiness{}, ErrAdAccountNotSelected
	}

	account, err := p.graph.GetAdAccount(ctx, token.Value, *conn.SelectedAdAccountID)
	if err != nil {
		p.logger.Error(ctx, "failed to fetch ad account", err)
		return Readiness{}, fmt.Errorf("failed to fetch ad account: %w", err)
	}

	if !account.HasFundingSource() {
		p.logger.Info(ctx, "ad account has no funding source")
		return readinessFor(conn, now), nil
	}

	if err := p.MarkPaymentConnected(ctx, campaignID); err != nil {
		return Readiness{}, err
	}
	conn.AdAccountPaymentConnected = true
	return readinessFor(conn, now), nil
}

// GetConnectionStatus returns the connection without any token material
func (p *ConnectionProcessor) GetConnectionStatus(ctx context.Context, campaignID uuid.UUID) (ConnectionStatus, error) {
	conn, err := p.store.GetMetaConnectionByCampaignID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ConnectionStatus{Readiness: notConnectedReadiness()}, nil
		}
		p.logger.Error(ctx, "failed to load meta connection", err)
		return ConnectionStatus{}, fmt.Errorf("failed to load meta connection: %w", err)
	}
	return p.statusFor(conn), nil
}

func (p *ConnectionProcessor) statusFor(conn store.MetaConnection) ConnectionStatus {
	now := p.now()
	status := ConnectionStatus{
		MetaUserID:       conn.MetaUserID,
		BusinessID:       conn.SelectedBusinessID,
		PageID:           conn.SelectedPageID,
		AdAccountID:      conn.SelectedAdAccountID,
		InstagramID:      conn.SelectedInstagramID,
		PaymentConnected: conn.AdAccountPaymentConnected,
		AdminConnected:   conn.AdminConnected,
		Readiness:        readinessFor(conn, now),
	}
	if token, ok := bestToken(conn, now); ok {
		status.Connected = true
		status.TokenSource = token.Source
		status.TokenExpiresAt = token.ExpiresAt
	}
	return status
}
