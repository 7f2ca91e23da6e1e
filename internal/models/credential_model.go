package models

import "time"

const (
	ServiceGoogle    = "google"
	ServiceMeta      = "meta"
	ServiceLinkedIn  = "linkedin"
	ServiceWordPress = "wordpress"
)

const (
	CredentialTypeOAuth2              = "oauth2"
	CredentialTypeApplicationPassword = "application_password"
)

// UserCredential tokens and client secret are stored encrypted.
type UserCredential struct {
	ID             string     `db:"id" json:"id"`
	UserID         string     `db:"user_id" json:"user_id"`
	Service        string     `db:"service" json:"service"`
	CredentialType string     `db:"credential_type" json:"credential_type"`
	AccessToken    *string    `db:"access_token" json:"-"`
	RefreshToken   *string    `db:"refresh_token" json:"-"`
	ClientID       *string    `db:"client_id" json:"client_id,omitempty"`
	ClientSecret   *string    `db:"client_secret" json:"-"`
	ExpiresAt      *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Expired is never enforced by the store, only reported.
func (c *UserCredential) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}
