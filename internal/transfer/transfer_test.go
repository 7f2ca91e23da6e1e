package transfer

import (
	"testing"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRequestValidate(t *testing.T) {
	assert.NoError(t, EntryRequest{Topic: "Launch", Type: models.ContentTypeSlidePost}.Validate())
	assert.Error(t, EntryRequest{Type: models.ContentTypeSimplePost}.Validate())
	assert.Error(t, EntryRequest{Topic: "Launch", Type: "Video"}.Validate())
}

func TestContentRequestValidate(t *testing.T) {
	assert.NoError(t, ContentRequest{Text: "hello"}.Validate(models.PlatformLinkedIn))
	assert.Error(t, ContentRequest{}.Validate(models.PlatformTwitter))

	assert.NoError(t, ContentRequest{Title: "T", Content: "<p>c</p>", Slug: "a-b-1"}.Validate(models.PlatformWordPress))
	assert.NoError(t, ContentRequest{Title: "T", Content: "<p>c</p>"}.Validate(models.PlatformWordPress))
	assert.Error(t, ContentRequest{Title: "T", Content: "<p>c</p>", Slug: "A B"}.Validate(models.PlatformWordPress))
	assert.Error(t, ContentRequest{Text: "only text"}.Validate(models.PlatformWordPress))
}

func TestScheduleInstant(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	at, err := ScheduleRequest{}.Instant(bogota)
	require.NoError(t, err)
	assert.Nil(t, at)

	at, err = ScheduleRequest{ScheduledAt: "2025-03-10T09:30"}.Instant(bogota)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), *at)

	at, err = ScheduleRequest{ScheduledAt: "2025-03-10T09:30:00+01:00"}.Instant(bogota)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC), *at)

	_, err = ScheduleRequest{ScheduledAt: "10/03/2025"}.Instant(bogota)
	assert.Error(t, err)
}

func TestCallbackValidate(t *testing.T) {
	id := "0b7e6a52-6f1e-4f43-9a7a-6c2b0f5f9d01"
	assert.NoError(t, PublishStatusCallback{PlatformID: id, Status: models.StatusPublished}.Validate())
	assert.NoError(t, PublishStatusCallback{PlatformID: id, Status: models.StatusError}.Validate())
	assert.Error(t, PublishStatusCallback{PlatformID: id, Status: models.StatusPending}.Validate())
	assert.Error(t, PublishStatusCallback{PlatformID: "42", Status: models.StatusPublished}.Validate())

	slides := SlidesCallback{Action: ActionDownloadSlides, SlidesURL: "s", SlideImages: []string{"https://a.example.com/1.png"}}
	assert.NoError(t, slides.Validate())
	slides.SlideImages = append(slides.SlideImages, "not a url")
	assert.Error(t, slides.Validate())
}

func TestProfileRequestValidate(t *testing.T) {
	assert.NoError(t, ProfileRequest{
		SelectedPlatforms: []models.Platform{models.PlatformTwitter},
		WebhookURL:        "https://hooks.example.com/x",
		BrandGuidelines:   models.BrandGuidelines{Colors: []string{"#fff", "#A1B2C3"}},
	}.Validate())
	assert.NoError(t, ProfileRequest{}.Validate())
	assert.Error(t, ProfileRequest{SelectedPlatforms: []models.Platform{"tiktok"}}.Validate())
}
