package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testEntry() models.ContentEntry {
	return models.ContentEntry{
		ID:          "0b9f5a4e-2c1d-4e8f-9a7b-6c5d4e3f2a1b",
		Topic:       "Coffee",
		Description: "Morning routines",
		Type:        models.ContentTypeSimplePost,
		CreatedDate: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeCurrentShape(t *testing.T) {
	src := Source{Entry: testEntry(), Shapes: []Shape{CurrentShape{
		{ID: "r1", Platform: models.PlatformLinkedIn, Text: "li", Status: models.StatusGenerated},
		{ID: "r2", Platform: models.PlatformInstagram, Text: "ig", ImageURL: strPtr("http://img/ig"), Status: models.StatusEdited},
		{ID: "r3", Platform: models.PlatformTwitter, Text: "tw", ImageURL: strPtr("http://img/tw")},
	}}}

	e := Normalize(src)
	assert.Equal(t, []models.Platform{models.PlatformLinkedIn, models.PlatformInstagram, models.PlatformTwitter}, e.Platforms)
	assert.Equal(t, "http://img/ig", e.ImageURL)
	assert.Equal(t, models.StatusEdited, e.Status[models.PlatformInstagram])
	assert.Equal(t, "li", e.PlatformContent[models.PlatformLinkedIn].Text)
	_, ok := e.Rendering(models.PlatformWordPress)
	assert.False(t, ok)
}

func TestNormalizeArrayWinsOverLegacy(t *testing.T) {
	payload := `{
		"platformContent": {
			"instagram": {"text": "old ig", "imageUrl": "http://img/old", "status": "pending"},
			"linkedin": {"text": "legacy only", "status": "generated"}
		},
		"platforms": [
			{"id": "r1", "platform": "instagram", "text": "new ig", "status": "edited"},
			{"id": "r9", "platform": "instagram", "text": "newest ig", "status": "edited"}
		]
	}`
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(payload), &p))

	e := Normalize(p.Source(testEntry()))
	require.Len(t, e.PlatformContent, 2)
	assert.Equal(t, "newest ig", e.PlatformContent[models.PlatformInstagram].Text)
	assert.Equal(t, "r9", e.PlatformContent[models.PlatformInstagram].ID)
	assert.Equal(t, "legacy only", e.PlatformContent[models.PlatformLinkedIn].Text)
	assert.Equal(t, []models.Platform{models.PlatformInstagram, models.PlatformLinkedIn}, e.Platforms)
	// the replaced legacy instagram image is gone with it
	assert.Equal(t, "", e.ImageURL)
}

func TestNormalizeWordPressPostPreferred(t *testing.T) {
	withPost := Normalize(Source{Entry: testEntry(), Shapes: []Shape{CurrentShape{{
		Platform:       models.PlatformWordPress,
		Text:           "rendering text",
		WordPressPosts: []models.WordPressPost{{Title: "T", Description: "D", Slug: "s", Content: "post body"}},
	}}}})
	wp := withPost.PlatformContent[models.PlatformWordPress]
	assert.Equal(t, "post body", wp.Text)
	require.NotNil(t, wp.WordPress)
	assert.Equal(t, "T", wp.WordPress.Title)

	withoutPost := Normalize(Source{Entry: testEntry(), Shapes: []Shape{CurrentShape{{
		Platform: models.PlatformWordPress,
		Text:     "rendering text",
	}}}})
	assert.Equal(t, "rendering text", withoutPost.PlatformContent[models.PlatformWordPress].Text)
	assert.Nil(t, withoutPost.PlatformContent[models.PlatformWordPress].WordPress)
}

func TestNormalizeDropsUnknownPlatforms(t *testing.T) {
	e := Normalize(Source{Entry: testEntry(), Shapes: []Shape{
		LegacyShape{"tiktok": {Text: "x"}},
		CurrentShape{{Platform: "myspace", Text: "y"}, {Platform: "Twitter", Text: "z"}},
	}})
	assert.Equal(t, []models.Platform{models.PlatformTwitter}, e.Platforms)
}

func TestNormalizeEntrySlideImages(t *testing.T) {
	e := Normalize(Source{Entry: testEntry(), Shapes: []Shape{CurrentShape{
		{Platform: models.PlatformLinkedIn},
		{Platform: models.PlatformInstagram, SlideImages: []models.SlideImage{
			{ImageURL: "C", Position: 2}, {ImageURL: "A", Position: 0}, {ImageURL: "B", Position: 1},
		}},
	}}})
	assert.Equal(t, []string{"A", "B", "C"}, e.SlideImages)
}

func TestSlideURLs(t *testing.T) {
	v := &RenderingView{SlideRows: []models.SlideImage{
		{ImageURL: "C", Position: 2},
		{ImageURL: "A", Position: 0},
		{ImageURL: "B", Position: 1},
	}}
	assert.Equal(t, []string{"A", "B", "C"}, SlideURLs(v))

	ties := &RenderingView{SlideRows: []models.SlideImage{
		{ImageURL: "x1", Position: 1},
		{ImageURL: "y0", Position: 0},
		{ImageURL: "x2", Position: 1},
		{ImageURL: "z5", Position: 5},
	}}
	assert.Equal(t, []string{"y0", "x1", "x2", "z5"}, SlideURLs(ties))

	flat := &RenderingView{SlideImages: []string{"f1", "f2"}}
	assert.Equal(t, []string{"f1", "f2"}, SlideURLs(flat))
	assert.Nil(t, SlideURLs(nil))
}
