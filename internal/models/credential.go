package models

import "time"

const ProviderGoogle = "google"

// Credential holds the OAuth token material for one (user, provider) pair.
// The access token rotates on refresh; the refresh token only changes when
// the provider issues a new one on consent.
type Credential struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;uniqueIndex:idx_user_provider" json:"user_id"`
	Provider          string    `gorm:"size:32;not null;uniqueIndex:idx_user_provider" json:"provider"`
	ProviderAccountID string    `gorm:"size:255;not null;index" json:"provider_account_id"`
	AccessToken       string    `gorm:"size:2048" json:"-"`
	RefreshToken      string    `gorm:"size:512" json:"-"`
	Expiry            time.Time `json:"expiry"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
