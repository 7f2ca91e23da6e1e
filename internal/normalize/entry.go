// Package normalize turns the stored and client-supplied shapes of a content
// entry into the single Entry record the rest of the service works with.
package normalize

import (
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
)

type WordPressFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	Content     string `json:"content"`
}

type RenderingView struct {
	ID             string                 `json:"id,omitempty"`
	Platform       models.Platform        `json:"platform"`
	Text           string                 `json:"text"`
	ImageURL       string                 `json:"imageUrl,omitempty"`
	SlidesURL      string                 `json:"slidesUrl,omitempty"`
	SlideRows      []models.SlideImage    `json:"slide_images,omitempty"`
	SlideImages    []string               `json:"slideImages,omitempty"`
	UploadedImages []models.UploadedImage `json:"uploadedImages,omitempty"`
	WordPress      *WordPressFields       `json:"wordpress,omitempty"`
	ScheduledAt    *time.Time             `json:"scheduledAt,omitempty"`
	PublishedAt    *time.Time             `json:"publishedAt,omitempty"`
	PublishedURL   string                 `json:"publishedUrl,omitempty"`
	Status         string                 `json:"status"`
	ContentType    string                 `json:"contentType,omitempty"`
}

type Entry struct {
	ID              string                             `json:"id"`
	Topic           string                             `json:"topic"`
	Description     string                             `json:"description"`
	Type            string                             `json:"type"`
	CreatedDate     time.Time                          `json:"createdDate"`
	Platforms       []models.Platform                  `json:"platforms"`
	Status          map[models.Platform]string         `json:"status"`
	PlatformContent map[models.Platform]*RenderingView `json:"platformContent"`
	ImageURL        string                             `json:"imageUrl,omitempty"`
	SlideImages     []string                           `json:"slideImages"`
}

func (e *Entry) Rendering(p models.Platform) (*RenderingView, bool) {
	r, ok := e.PlatformContent[p]
	return r, ok
}
