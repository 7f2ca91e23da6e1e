package models

import "time"

type BrandGuidelines struct {
	Colors      []string `json:"colors"`
	Description string   `json:"description"`
}

type PostingGuidelines struct {
	Tone           string `json:"tone"`
	Language       string `json:"language"`
	TargetAudience string `json:"targetAudience"`
	Notes          string `json:"notes"`
}

type Profile struct {
	ID                string            `db:"id" json:"id"`
	Email             string            `db:"email" json:"email"`
	BrandGuidelines   BrandGuidelines   `db:"brand_guidelines" json:"brand_guidelines"`
	PostingGuidelines PostingGuidelines `db:"posting_guidelines" json:"posting_guidelines"`
	SelectedPlatforms []Platform        `db:"selected_platforms" json:"selected_platforms"`
	WebhookURL        string            `db:"webhook_url" json:"webhook_url"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
}
