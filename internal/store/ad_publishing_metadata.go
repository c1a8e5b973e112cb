package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const sqlGetPublishingMetadata = `
SELECT
    ad_id, current_status, meta_review_status, retry_count, status_history,
    error_code, error_message, error_user_message, error_details,
    last_checked_at, created_at, updated_at
FROM ad_publishing_metadata
WHERE ad_id = $1
`

// GetPublishingMetadata retrieves the publishing metadata of an ad
func (s *Store) GetPublishingMetadata(ctx context.Context, adID uuid.UUID) (PublishingMetadata, error) {
	var metadata PublishingMetadata
	err := s.db.GetContext(ctx, &metadata, sqlGetPublishingMetadata, adID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PublishingMetadata{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get publishing metadata", err)
		return PublishingMetadata{}, fmt.Errorf("failed to get publishing metadata: %w", err)
	}
	return metadata, nil
}

const sqlRecordStatusCheckFailure = `
UPDATE ad_publishing_metadata
SET retry_count = retry_count + 1,
    last_checked_at = $2,
    updated_at = NOW()
WHERE ad_id = $1
`

// RecordStatusCheckFailure bumps retry_count after a status poll could not reach Meta
func (s *Store) RecordStatusCheckFailure(ctx context.Context, adID uuid.UUID, checkedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, sqlRecordStatusCheckFailure, adID, checkedAt)
	if err != nil {
		s.logger.Error(ctx, "failed to record status check failure", err)
		return fmt.Errorf("failed to record status check failure: %w", err)
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
