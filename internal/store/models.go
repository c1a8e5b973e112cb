package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JSONB is a custom type for JSONB fields
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface for JSONB
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for JSONB
func (j *JSONB) Scan(value interface{}) error {
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if bytes == nil {
		*j = nil
		return nil
	}

	// Handle empty or null JSON
	if len(bytes) == 0 || string(bytes) == "null" {
		*j = make(JSONB)
		return nil
	}

	result := make(JSONB)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("incompatible type for JSONB")
	}
}

// ErrorSnapshot is the structured error persisted in ads.last_error.
type ErrorSnapshot struct {
	Code            string                 `json:"code"`
	Message         string                 `json:"message"`
	UserMessage     string                 `json:"user_message"`
	SuggestedAction string                 `json:"suggested_action"`
	HelpLink        string                 `json:"help_link,omitempty"`
	Details         map[string]interface{} `json:"details,omitempty"`
	OccurredAt      time.Time              `json:"occurred_at"`
}

// Value implements the driver.Valuer interface for ErrorSnapshot
func (e *ErrorSnapshot) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for ErrorSnapshot
func (e *ErrorSnapshot) Scan(value interface{}) error {
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		*e = ErrorSnapshot{}
		return nil
	}
	return json.Unmarshal(bytes, e)
}

// StatusHistoryEntry is one element of the append-only publishing timeline.
type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// StatusHistory is the JSONB array stored in ad_publishing_metadata.status_history.
type StatusHistory []StatusHistoryEntry

// Value implements the driver.Valuer interface for StatusHistory
func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for StatusHistory
func (h *StatusHistory) Scan(value interface{}) error {
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		*h = StatusHistory{}
		return nil
	}
	result := StatusHistory{}
	if err := json.Unmarshal(bytes, &result); err != nil {
		return fmt.Errorf("failed to decode status history: %w", err)
	}
	*h = result
	return nil
}

// appendValue encodes entries as a JSON array suitable for `status_history || $n::jsonb`.
func appendValue(entries ...StatusHistoryEntry) (interface{}, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode status history entry: %w", err)
	}
	return string(b), nil
}

// Ad is a single creative unit published to Meta.
type Ad struct {
	ID               uuid.UUID         `db:"id"`
	CampaignID       uuid.UUID         `db:"campaign_id"`
	Name             string            `db:"name"`
	Creative         JSONB             `db:"creative"`
	AdSetID          *string           `db:"adset_id"`
	Status           AdStatus          `db:"status"`
	PublishingStatus *PublishingStatus `db:"publishing_status"`
	MetaAdID         *string           `db:"meta_ad_id"`
	MetaCreativeID   *string           `db:"meta_creative_id"`
	LastError        *ErrorSnapshot    `db:"last_error"`
	PublishedAt      *time.Time        `db:"published_at"`
	ApprovedAt       *time.Time        `db:"approved_at"`
	RejectedAt       *time.Time        `db:"rejected_at"`
	CreatedAt        time.Time         `db:"created_at"`
	UpdatedAt        time.Time         `db:"updated_at"`
}

// IsPublished reports whether Meta has ever accepted the ad.
func (a Ad) IsPublished() bool {
	return a.MetaAdID != nil && *a.MetaAdID != ""
}

// PublishingMetadata tracks publish attempts for a single ad.
type PublishingMetadata struct {
	AdID             uuid.UUID     `db:"ad_id"`
	CurrentStatus    string        `db:"current_status"`
	MetaReviewStatus *string       `db:"meta_review_status"`
	RetryCount       int           `db:"retry_count"`
	StatusHistory    StatusHistory `db:"status_history"`
	ErrorCode        *string       `db:"error_code"`
	ErrorMessage     *string       `db:"error_message"`
	ErrorUserMessage *string       `db:"error_user_message"`
	ErrorDetails     JSONB         `db:"error_details"`
	LastCheckedAt    *time.Time    `db:"last_checked_at"`
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

// MetaConnection holds the OAuth credential and selected assets for a campaign.
type MetaConnection struct {
	ID                        uuid.UUID  `db:"id"`
	CampaignID                uuid.UUID  `db:"campaign_id"`
	UserAppToken              *string    `db:"user_app_token"`
	UserAppTokenExpiresAt     *time.Time `db:"user_app_token_expires_at"`
	SystemToken               *string    `db:"system_token"`
	SystemTokenExpiresAt      *time.Time `db:"system_token_expires_at"`
	MetaUserID                *string    `db:"meta_user_id"`
	SelectedBusinessID        *string    `db:"selected_business_id"`
	SelectedPageID            *string    `db:"selected_page_id"`
	SelectedAdAccountID       *string    `db:"selected_ad_account_id"`
	SelectedInstagramID       *string    `db:"selected_instagram_id"`
	AdAccountPaymentConnected bool       `db:"ad_account_payment_connected"`
	AdminConnected            bool       `db:"admin_connected"`
	CreatedAt                 time.Time  `db:"created_at"`
	UpdatedAt                 time.Time  `db:"updated_at"`
}

// Campaign is the owning grouping of ads.
type Campaign struct {
	ID             uuid.UUID `db:"id"`
	UserID         uuid.UUID `db:"user_id"`
	Name           string    `db:"name"`
	MetaCampaignID *string   `db:"meta_campaign_id"`
	MetaAdSetID    *string   `db:"meta_adset_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// User is the campaign owner.
type User struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	FirstName string    `db:"first_name"`
}
