package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const metaConnectionColumns = `
    id, campaign_id, user_app_token, user_app_token_expires_at, system_token,
    system_token_expires_at, meta_user_id, selected_business_id, selected_page_id,
    selected_ad_account_id, selected_instagram_id, ad_account_payment_connected,
    admin_connected, created_at, updated_at`

// UpsertMetaConnectionTokenParams stores the result of an OAuth exchange
type UpsertMetaConnectionTokenParams struct {
	CampaignID     uuid.UUID
	UserAppToken   string
	ExpiresAt      *time.Time
	MetaUserID     string
	AdminConnected bool
}

// UpdateMetaConnectionAssetsParams stores the assets chosen after OAuth
type UpdateMetaConnectionAssetsParams struct {
	CampaignID  uuid.UUID
	BusinessID  *string
	PageID      *string
	AdAccountID *string
	InstagramID *string
}

const sqlGetMetaConnectionByCampaignID = `
SELECT` + metaConnectionColumns + `
FROM meta_connections
WHERE campaign_id = $1
`

// GetMetaConnectionByCampaignID retrieves the Meta connection of a campaign
func (s *Store) GetMetaConnectionByCampaignID(ctx context.Context, campaignID uuid.UUID) (MetaConnection, error) {
	var conn MetaConnection
	err := s.db.GetContext(ctx, &conn, sqlGetMetaConnectionByCampaignID, campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MetaConnection{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get meta connection", err)
		return MetaConnection{}, fmt.Errorf("failed to get meta connection: %w", err)
	}
	return conn, nil
}

const sqlUpsertMetaConnectionToken = `
INSERT INTO meta_connections (campaign_id, user_app_token, user_app_token_expires_at, meta_user_id, admin_connected)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (campaign_id) DO UPDATE
SET user_app_token = EXCLUDED.user_app_token,
    user_app_token_expires_at = EXCLUDED.user_app_token_expires_at,
    meta_user_id = EXCLUDED.meta_user_id,
    admin_connected = meta_connections.admin_connected OR EXCLUDED.admin_connected,
    updated_at = NOW()
RETURNING` + metaConnectionColumns

// UpsertMetaConnectionToken creates or replaces the user token of a campaign's connection
func (s *Store) UpsertMetaConnectionToken(ctx context.Context, params UpsertMetaConnectionTokenParams) (MetaConnection, error) {
	var conn MetaConnection
	err := s.db.GetContext(ctx, &conn, sqlUpsertMetaConnectionToken,
		params.CampaignID,
		params.UserAppToken,
		params.ExpiresAt,
		params.MetaUserID,
		params.AdminConnected)
	if err != nil {
		s.logger.Error(ctx, "failed to upsert meta connection", err)
		return MetaConnection{}, fmt.Errorf("failed to upsert meta connection: %w", err)
	}
	return conn, nil
}

// Payment verification belongs to an ad account, so choosing a different
// account starts it unverified.
const sqlUpdateMetaConnectionAssets = `
UPDATE meta_connections
SET selected_business_id = COALESCE($2, selected_business_id),
    selected_page_id = COALESCE($3, selected_page_id),
    ad_account_payment_connected = CASE
        WHEN $4::text IS NOT NULL AND selected_ad_account_id IS DISTINCT FROM $4::text THEN FALSE
        ELSE ad_account_payment_connected
    END,
    selected_ad_account_id = COALESCE($4::text, selected_ad_account_id),
    selected_instagram_id = COALESCE($5, selected_instagram_id),
    updated_at = NOW()
WHERE campaign_id = $1
RETURNING` + metaConnectionColumns

// UpdateMetaConnectionAssets stores the selected business, page, ad account and Instagram account
func (s *Store) UpdateMetaConnectionAssets(ctx context.Context, params UpdateMetaConnectionAssetsParams) (MetaConnection, error) {
	var conn MetaConnection
	err := s.db.GetContext(ctx, &conn, sqlUpdateMetaConnectionAssets,
		params.CampaignID,
		params.BusinessID,
		params.PageID,
		params.AdAccountID,
		params.InstagramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MetaConnection{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to update meta connection assets", err)
		return MetaConnection{}, fmt.Errorf("failed to update meta connection assets: %w", err)
	}
	return conn, nil
}

const sqlMarkMetaPaymentConnected = `
UPDATE meta_connections
SET ad_account_payment_connected = TRUE,
    updated_at = NOW()
WHERE campaign_id = $1
`

// MarkMetaPaymentConnected sets the payment flag. There is no way to clear it.
func (s *Store) MarkMetaPaymentConnected(ctx context.Context, campaignID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlMarkMetaPaymentConnected, campaignID)
	if err != nil {
		s.logger.Error(ctx, "failed to mark payment connected", err)
		return fmt.Errorf("failed to mark payment connected: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
