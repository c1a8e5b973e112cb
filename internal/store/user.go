package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const sqlGetCampaignOwner = `
SELECT u.id, u.email, u.first_name
FROM users u
JOIN campaigns c ON c.user_id = u.id
WHERE c.id = $1
`

// GetCampaignOwner returns the user who owns the campaign
func (s *Store) GetCampaignOwner(ctx context.Context, campaignID uuid.UUID) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlGetCampaignOwner, campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get campaign owner", err)
		return User{}, fmt.Errorf("failed to get campaign owner: %w", err)
	}
	return user, nil
}
