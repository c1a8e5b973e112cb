package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const adColumns = `
    id, campaign_id, name, creative, adset_id, status, publishing_status,
    meta_ad_id, meta_creative_id, last_error, published_at, approved_at,
    rejected_at, created_at, updated_at`

// MarkAdSubmittedParams records a successful remote creation.
type MarkAdSubmittedParams struct {
	AdID             uuid.UUID
	MetaAdID         string
	MetaCreativeID   string
	MetaReviewStatus string
	PublishedAt      time.Time
	HistoryEntry     StatusHistoryEntry
}

// MarkAdPublishFailedParams records a failed publish attempt.
type MarkAdPublishFailedParams struct {
	AdID         uuid.UUID
	Error        ErrorSnapshot
	HistoryEntry StatusHistoryEntry
}

// ApplyAdReviewStateParams mirrors a review decision into the ad and its metadata.
// Nil pointers leave the stored value untouched.
type ApplyAdReviewStateParams struct {
	AdID             uuid.UUID
	Status           AdStatus
	PublishingStatus PublishingStatus
	ApprovedAt       *time.Time
	RejectedAt       *time.Time
	MetaReviewStatus *string
	CheckedAt        time.Time
	Error            *ErrorSnapshot
	HistoryEntry     *StatusHistoryEntry
}

const sqlGetAdByID = `
SELECT` + adColumns + `
FROM ads
WHERE id = $1
`

// GetAdByID retrieves an ad by its ID
func (s *Store) GetAdByID(ctx context.Context, adID uuid.UUID) (Ad, error) {
	var ad Ad
	err := s.db.GetContext(ctx, &ad, sqlGetAdByID, adID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Ad{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get ad by id", err)
		return Ad{}, fmt.Errorf("failed to get ad by id: %w", err)
	}
	return ad, nil
}

const sqlGetAdByMetaAdID = `
SELECT` + adColumns + `
FROM ads
WHERE meta_ad_id = $1
`

// GetAdByMetaAdID retrieves an ad by the identifier Meta assigned to it
func (s *Store) GetAdByMetaAdID(ctx context.Context, metaAdID string) (Ad, error) {
	var ad Ad
	err := s.db.GetContext(ctx, &ad, sqlGetAdByMetaAdID, metaAdID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Ad{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get ad by meta ad id", err)
		return Ad{}, fmt.Errorf("failed to get ad by meta ad id: %w", err)
	}
	return ad, nil
}

const sqlMarkAdPendingReview = `
UPDATE ads
SET publishing_status = 'pending_review',
    last_error = NULL,
    updated_at = NOW()
WHERE id = $1 AND meta_ad_id IS NULL
RETURNING` + adColumns

// A brand new row starts with an empty history. A retry on a failed, unpublished
// ad resets retry_count and error context but keeps the history it already has.
const sqlBeginPublishingMetadata = `
INSERT INTO ad_publishing_metadata (ad_id, current_status, retry_count, status_history)
VALUES ($1, 'pending_review', 0, '[]'::jsonb)
ON CONFLICT (ad_id) DO UPDATE
SET current_status = 'pending_review',
    retry_count = 0,
    error_code = NULL,
    error_message = NULL,
    error_user_message = NULL,
    error_details = NULL,
    updated_at = NOW()
`

// BeginPublishAttempt durably records that a publish attempt is in flight.
// It returns ErrConflict when the ad already carries a meta_ad_id.
func (s *Store) BeginPublishAttempt(ctx context.Context, adID uuid.UUID) (Ad, error) {
	var ad Ad
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &ad, sqlMarkAdPendingReview, adID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrConflict
			}
			s.logger.Error(ctx, "failed to mark ad pending review", err)
			return fmt.Errorf("failed to mark ad pending review: %w", err)
		}
		if _, err := tx.ExecContext(ctx, sqlBeginPublishingMetadata, adID); err != nil {
			s.logger.Error(ctx, "failed to upsert publishing metadata", err)
			return fmt.Errorf("failed to upsert publishing metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return Ad{}, err
	}
	return ad, nil
}

const sqlMarkAdSubmitted = `
UPDATE ads
SET meta_ad_id = $2,
    meta_creative_id = $3,
    publishing_status = 'pending_review',
    published_at = COALESCE(published_at, $4),
    last_error = NULL,
    updated_at = NOW()
WHERE id = $1 AND meta_ad_id IS NULL
RETURNING` + adColumns

const sqlMetadataSubmitted = `
INSERT INTO ad_publishing_metadata (ad_id, current_status, meta_review_status, retry_count, status_history, last_checked_at)
VALUES ($1, 'pending_review', $2, 0, $3::jsonb, $4)
ON CONFLICT (ad_id) DO UPDATE
SET current_status = 'pending_review',
    meta_review_status = EXCLUDED.meta_review_status,
    status_history = ad_publishing_metadata.status_history || EXCLUDED.status_history,
    error_code = NULL,
    error_message = NULL,
    error_user_message = NULL,
    error_details = NULL,
    last_checked_at = EXCLUDED.last_checked_at,
    updated_at = NOW()
`

// MarkAdSubmitted stores the remote identifiers of a freshly created ad.
// The conditional update and the unique meta_ad_id constraint make this the
// serialization point for concurrent publishes: losing either yields ErrConflict.
func (s *Store) MarkAdSubmitted(ctx context.Context, params MarkAdSubmittedParams) (Ad, error) {
	history, err := appendValue(params.HistoryEntry)
	if err != nil {
		return Ad{}, err
	}

	var ad Ad
	err = s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &ad, sqlMarkAdSubmitted,
			params.AdID,
			params.MetaAdID,
			params.MetaCreativeID,
			params.PublishedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
				return ErrConflict
			}
			s.logger.Error(ctx, "failed to mark ad submitted", err)
			return fmt.Errorf("failed to mark ad submitted: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sqlMetadataSubmitted,
			params.AdID,
			params.MetaReviewStatus,
			history,
			params.PublishedAt); err != nil {
			s.logger.Error(ctx, "failed to update publishing metadata", err)
			return fmt.Errorf("failed to update publishing metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return Ad{}, err
	}
	return ad, nil
}

const sqlMarkAdPublishFailed = `
UPDATE ads
SET publishing_status = 'failed',
    last_error = $2,
    updated_at = NOW()
WHERE id = $1
RETURNING` + adColumns

const sqlMetadataFailed = `
INSERT INTO ad_publishing_metadata (
    ad_id, current_status, retry_count, status_history,
    error_code, error_message, error_user_message, error_details
)
VALUES ($1, 'failed', 0, $2::jsonb, $3, $4, $5, $6)
ON CONFLICT (ad_id) DO UPDATE
SET current_status = 'failed',
    status_history = ad_publishing_metadata.status_history || EXCLUDED.status_history,
    error_code = EXCLUDED.error_code,
    error_message = EXCLUDED.error_message,
    error_user_message = EXCLUDED.error_user_message,
    error_details = EXCLUDED.error_details,
    updated_at = NOW()
`

// MarkAdPublishFailed records a failed attempt on both the ad and its metadata.
// The coarse ad status is left untouched.
func (s *Store) MarkAdPublishFailed(ctx context.Context, params MarkAdPublishFailedParams) (Ad, error) {
	history, err := appendValue(params.HistoryEntry)
	if err != nil {
		return Ad{}, err
	}

	var ad Ad
	err = s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &ad, sqlMarkAdPublishFailed, params.AdID, &params.Error); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			s.logger.Error(ctx, "failed to mark ad publish failed", err)
			return fmt.Errorf("failed to mark ad publish failed: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sqlMetadataFailed,
			params.AdID,
			history,
			params.Error.Code,
			params.Error.Message,
			params.Error.UserMessage,
			JSONB(params.Error.Details)); err != nil {
			s.logger.Error(ctx, "failed to update publishing metadata", err)
			return fmt.Errorf("failed to update publishing metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return Ad{}, err
	}
	return ad, nil
}

const sqlApplyAdReviewState = `
UPDATE ads
SET status = $2,
    publishing_status = $3,
    approved_at = COALESCE(approved_at, $4),
    rejected_at = COALESCE(rejected_at, $5),
    last_error = COALESCE($6, last_error),
    updated_at = CASE
        WHEN status IS DISTINCT FROM $2
          OR publishing_status IS DISTINCT FROM $3
          OR (approved_at IS NULL AND $4 IS NOT NULL)
          OR (rejected_at IS NULL AND $5 IS NOT NULL)
          OR $6 IS NOT NULL
        THEN NOW()
        ELSE updated_at
    END
WHERE id = $1
RETURNING` + adColumns

const sqlMetadataReviewState = `
INSERT INTO ad_publishing_metadata (
    ad_id, current_status, meta_review_status, retry_count, status_history, last_checked_at,
    error_code, error_message, error_user_message
)
VALUES ($1, $2, $3, 0, COALESCE($4::jsonb, '[]'::jsonb), $5, $6, $7, $8)
ON CONFLICT (ad_id) DO UPDATE
SET current_status = EXCLUDED.current_status,
    meta_review_status = COALESCE(EXCLUDED.meta_review_status, ad_publishing_metadata.meta_review_status),
    status_history = CASE WHEN $4::jsonb IS NULL THEN ad_publishing_metadata.status_history
                          ELSE ad_publishing_metadata.status_history || $4::jsonb END,
    last_checked_at = EXCLUDED.last_checked_at,
    error_code = COALESCE(EXCLUDED.error_code, ad_publishing_metadata.error_code),
    error_message = COALESCE(EXCLUDED.error_message, ad_publishing_metadata.error_message),
    error_user_message = COALESCE(EXCLUDED.error_user_message, ad_publishing_metadata.error_user_message),
    updated_at = NOW()
`

// ApplyAdReviewState writes a reconciled review state. approved_at and
// rejected_at are only ever filled once, and ads.updated_at only moves when
// the ad row actually changes.
func (s *Store) ApplyAdReviewState(ctx context.Context, params ApplyAdReviewStateParams) (Ad, error) {
	var history interface{}
	if params.HistoryEntry != nil {
		var err error
		if history, err = appendValue(*params.HistoryEntry); err != nil {
			return Ad{}, err
		}
	}

	var errCode, errMessage, errUserMessage *string
	if params.Error != nil {
		errCode = &params.Error.Code
		errMessage = &params.Error.Message
		errUserMessage = &params.Error.UserMessage
	}

	var ad Ad
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &ad, sqlApplyAdReviewState,
			params.AdID,
			params.Status,
			params.PublishingStatus,
			params.ApprovedAt,
			params.RejectedAt,
			params.Error)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			s.logger.Error(ctx, "failed to apply ad review state", err)
			return fmt.Errorf("failed to apply ad review state: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sqlMetadataReviewState,
			params.AdID,
			params.PublishingStatus,
			params.MetaReviewStatus,
			history,
			params.CheckedAt,
			errCode,
			errMessage,
			errUserMessage); err != nil {
			s.logger.Error(ctx, "failed to update publishing metadata", err)
			return fmt.Errorf("failed to update publishing metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return Ad{}, err
	}
	return ad, nil
}

const sqlSetAdStatus = `
UPDATE ads
SET status = $2,
    updated_at = NOW()
WHERE id = $1
RETURNING` + adColumns

const sqlMetadataAppendHistory = `
INSERT INTO ad_publishing_metadata (ad_id, current_status, retry_count, status_history)
SELECT id, COALESCE(publishing_status, 'pending_review'), 0, $2::jsonb FROM ads WHERE id = $1
ON CONFLICT (ad_id) DO UPDATE
SET status_history = ad_publishing_metadata.status_history || EXCLUDED.status_history,
    updated_at = NOW()
`

// SetAdStatus mirrors a remote pause/resume into the coarse status and appends
// to the history. Publishing error fields are left alone.
func (s *Store) SetAdStatus(ctx context.Context, adID uuid.UUID, status AdStatus, entry StatusHistoryEntry) (Ad, error) {
	history, err := appendValue(entry)
	if err != nil {
		return Ad{}, err
	}

	var ad Ad
	err = s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &ad, sqlSetAdStatus, adID, status); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			s.logger.Error(ctx, "failed to set ad status", err)
			return fmt.Errorf("failed to set ad status: %w", err)
		}
		if _, err := tx.ExecContext(ctx, sqlMetadataAppendHistory, adID, history); err != nil {
			s.logger.Error(ctx, "failed to append status history", err)
			return fmt.Errorf("failed to append status history: %w", err)
		}
		return nil
	})
	if err != nil {
		return Ad{}, err
	}
	return ad, nil
}

const sqlListAdsPendingReview = `
SELECT` + adColumns + `
FROM ads
WHERE publishing_status = 'pending_review' AND meta_ad_id IS NOT NULL
ORDER BY updated_at ASC
LIMIT $1
`

// ListAdsPendingReview returns submitted ads still awaiting Meta's decision, oldest first
func (s *Store) ListAdsPendingReview(ctx context.Context, limit int) ([]Ad, error) {
	ads := []Ad{}
	if err := s.db.SelectContext(ctx, &ads, sqlListAdsPendingReview, limit); err != nil {
		s.logger.Error(ctx, "failed to list ads pending review", err)
		return nil, fmt.Errorf("failed to list ads pending review: %w", err)
	}
	return ads, nil
}

const sqlListStalledSubmissions = `
SELECT` + adColumns + `
FROM ads
WHERE publishing_status = 'pending_review' AND meta_ad_id IS NULL AND updated_at < $1
ORDER BY updated_at ASC
LIMIT $2
`

// ListStalledSubmissions returns ads whose publish attempt never recorded a
// remote identifier, typically because the process died mid-call.
func (s *Store) ListStalledSubmissions(ctx context.Context, olderThan time.Time, limit int) ([]Ad, error) {
	ads := []Ad{}
	if err := s.db.SelectContext(ctx, &ads, sqlListStalledSubmissions, olderThan, limit); err != nil {
		s.logger.Error(ctx, "failed to list stalled submissions", err)
		return nil, fmt.Errorf("failed to list stalled submissions: %w", err)
	}
	return ads, nil
}
