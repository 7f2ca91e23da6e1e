package transfer

import (
	"time"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/maheshrc27/contentflow/internal/models"
)

const ActionDownloadSlides = "download_slides"

// PublishStatusCallback is sent by the automation once a queued publication
// settles.
type PublishStatusCallback struct {
	PlatformID   string     `json:"platform_id"`
	Status       string     `json:"status"`
	PublishedURL *string    `json:"published_url"`
	PublishedAt  *time.Time `json:"published_at"`
}

func (c PublishStatusCallback) Validate() error {
	return v.ValidateStruct(&c,
		v.Field(&c.PlatformID, v.Required, is.UUID),
		v.Field(&c.Status, v.Required, v.In(models.StatusPublished, models.StatusError)),
		v.Field(&c.PublishedURL, v.NilOrNotEmpty, is.URL),
	)
}

type SlidesCallback struct {
	Action      string   `json:"action"`
	SlidesURL   string   `json:"slidesURL"`
	SlideImages []string `json:"slideImages"`
	Topic       string   `json:"topic"`
}

func (c SlidesCallback) Validate() error {
	return v.ValidateStruct(&c,
		v.Field(&c.Action, v.Required, v.In(ActionDownloadSlides)),
		v.Field(&c.SlidesURL, v.Required),
		v.Field(&c.SlideImages, v.Required, v.Each(v.Required, is.URL)),
	)
}

type CallbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
