package transfer

import (
	"time"

	v "github.com/go-ozzo/ozzo-validation/v4"
)

type CredentialView struct {
	Service        string     `json:"service"`
	CredentialType string     `json:"credential_type"`
	ClientID       string     `json:"client_id,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	Expired        bool       `json:"expired"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// WordPressCredentialRequest holds a WordPress username and application password.
type WordPressCredentialRequest struct {
	ClientID            string `json:"client_id"`
	ApplicationPassword string `json:"application_password"`
}

func (r WordPressCredentialRequest) Validate() error {
	return v.ValidateStruct(&r,
		v.Field(&r.ClientID, v.Required),
		v.Field(&r.ApplicationPassword, v.Required, v.Length(8, 0)),
	)
}
