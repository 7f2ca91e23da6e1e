package models

import "time"

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformWordPress Platform = "wordpress"
	PlatformTwitter   Platform = "twitter"
)

// Platforms is the order cards are shown in.
var Platforms = []Platform{PlatformInstagram, PlatformLinkedIn, PlatformWordPress, PlatformTwitter}

func (p Platform) Valid() bool {
	switch p {
	case PlatformInstagram, PlatformLinkedIn, PlatformWordPress, PlatformTwitter:
		return true
	}
	return false
}

const (
	ContentTypeSimplePost = "SimplePost"
	ContentTypeSlidePost  = "SlidePost"
)

const (
	StatusPending   = "pending"
	StatusGenerated = "generated"
	StatusEdited    = "edited"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
	StatusError     = "error"
)

type ContentEntry struct {
	ID          string    `db:"id" json:"id"`
	Topic       string    `db:"topic" json:"topic"`
	Description string    `db:"description" json:"description"`
	Type        string    `db:"type" json:"type"`
	CreatedDate time.Time `db:"created_date" json:"created_date"`
	UserID      string    `db:"user_id" json:"user_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type PlatformRendering struct {
	ID           string     `db:"id" json:"id"`
	EntryID      string     `db:"content_entry_id" json:"content_entry_id"`
	Platform     Platform   `db:"platform" json:"platform"`
	Text         string     `db:"text" json:"text"`
	ImageURL     *string    `db:"image_url" json:"image_url,omitempty"`
	SlidesURL    *string    `db:"slides_url" json:"slides_url,omitempty"`
	ScheduledAt  *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
	PublishedAt  *time.Time `db:"published_at" json:"published_at,omitempty"`
	PublishedURL *string    `db:"published_url" json:"published_url,omitempty"`
	Status       string     `db:"status" json:"status"`
	ContentType  string     `db:"content_type" json:"content_type"`
	GeneratedAt  *time.Time `db:"generated_at" json:"generated_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

type SlideImage struct {
	ID         string    `db:"id" json:"id"`
	PlatformID string    `db:"content_platform_id" json:"content_platform_id"`
	ImageURL   string    `db:"image_url" json:"image_url"`
	Position   int       `db:"position" json:"position"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type UploadedImage struct {
	ID         string    `db:"id" json:"id"`
	PlatformID string    `db:"content_platform_id" json:"content_platform_id"`
	ImageURL   string    `db:"image_url" json:"image_url"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}

type WordPressPost struct {
	ID          string    `db:"id" json:"id"`
	PlatformID  string    `db:"content_platform_id" json:"content_platform_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Slug        string    `db:"slug" json:"slug"`
	Content     string    `db:"content" json:"content"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
