package normalize

import (
	"strings"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
)

// Shape is one of the two record layouts an entry's platform data can arrive in.
type Shape interface {
	shape()
}

// LegacyShape is the flattened platformContent map keyed by platform.
type LegacyShape map[models.Platform]LegacyContent

// CurrentShape is the platforms array, one row per rendering.
type CurrentShape []PlatformRow

func (LegacyShape) shape()  {}
func (CurrentShape) shape() {}

type LegacyContent struct {
	Text         string     `json:"text"`
	ImageURL     string     `json:"imageUrl"`
	SlidesURL    string     `json:"slidesUrl"`
	SlideImages  []string   `json:"slideImages"`
	ScheduledAt  *time.Time `json:"scheduledAt"`
	PublishedURL string     `json:"publishedUrl"`
	Status       string     `json:"status"`
	ContentType  string     `json:"contentType"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Slug         string     `json:"slug"`
	Content      string     `json:"content"`
}

type PlatformRow struct {
	ID             string                 `json:"id"`
	Platform       models.Platform        `json:"platform"`
	Text           string                 `json:"text"`
	ImageURL       *string                `json:"image_url"`
	SlidesURL      *string                `json:"slides_url"`
	ScheduledAt    *time.Time             `json:"scheduled_at"`
	PublishedAt    *time.Time             `json:"published_at"`
	PublishedURL   *string                `json:"published_url"`
	Status         string                 `json:"status"`
	ContentType    string                 `json:"content_type"`
	SlideImages    []models.SlideImage    `json:"slide_images"`
	FlatSlides     []string               `json:"slideImages"`
	UploadedImages []models.UploadedImage `json:"uploaded_images"`
	WordPressPosts []models.WordPressPost `json:"wordpress_posts"`
}

// RowFromRendering builds a current-shape row from stored records.
func RowFromRendering(r *models.PlatformRendering, slides []models.SlideImage, uploads []models.UploadedImage, wp *models.WordPressPost) PlatformRow {
	row := PlatformRow{
		ID:             r.ID,
		Platform:       r.Platform,
		Text:           r.Text,
		ImageURL:       r.ImageURL,
		SlidesURL:      r.SlidesURL,
		ScheduledAt:    r.ScheduledAt,
		PublishedAt:    r.PublishedAt,
		PublishedURL:   r.PublishedURL,
		Status:         r.Status,
		ContentType:    r.ContentType,
		SlideImages:    slides,
		UploadedImages: uploads,
	}
	if wp != nil {
		row.WordPressPosts = []models.WordPressPost{*wp}
	}
	return row
}

// Source is an entry together with every shape its platform data was found in,
// in source order.
type Source struct {
	Entry  models.ContentEntry
	Shapes []Shape
}

// Normalize applies legacy data first and array data last, so the array wins
// for a platform both describe. Unknown platforms are dropped.
func Normalize(src Source) Entry {
	e := Entry{
		ID:              src.Entry.ID,
		Topic:           src.Entry.Topic,
		Description:     src.Entry.Description,
		Type:            src.Entry.Type,
		CreatedDate:     src.Entry.CreatedDate,
		Status:          make(map[models.Platform]string),
		PlatformContent: make(map[models.Platform]*RenderingView),
		SlideImages:     []string{},
	}

	put := func(v *RenderingView) {
		if !v.Platform.Valid() {
			return
		}
		if _, seen := e.PlatformContent[v.Platform]; !seen {
			e.Platforms = append(e.Platforms, v.Platform)
		}
		e.PlatformContent[v.Platform] = v
		e.Status[v.Platform] = v.Status
	}

	for _, s := range src.Shapes {
		legacy, ok := s.(LegacyShape)
		if !ok {
			continue
		}
		for _, p := range models.Platforms {
			if c, ok := legacy[p]; ok {
				put(fromLegacy(p, c))
			}
		}
	}
	for _, s := range src.Shapes {
		current, ok := s.(CurrentShape)
		if !ok {
			continue
		}
		for i := range current {
			put(fromRow(&current[i]))
		}
	}

	for _, p := range e.Platforms {
		if url := e.PlatformContent[p].ImageURL; url != "" {
			e.ImageURL = url
			break
		}
	}
	for _, p := range e.Platforms {
		if urls := SlideURLs(e.PlatformContent[p]); len(urls) > 0 {
			e.SlideImages = urls
			break
		}
	}
	return e
}

func fromLegacy(p models.Platform, c LegacyContent) *RenderingView {
	v := &RenderingView{
		Platform:     p,
		Text:         c.Text,
		ImageURL:     c.ImageURL,
		SlidesURL:    c.SlidesURL,
		SlideImages:  c.SlideImages,
		ScheduledAt:  c.ScheduledAt,
		PublishedURL: c.PublishedURL,
		Status:       c.Status,
		ContentType:  c.ContentType,
	}
	if p == models.PlatformWordPress && (c.Title != "" || c.Description != "" || c.Slug != "" || c.Content != "") {
		v.WordPress = &WordPressFields{Title: c.Title, Description: c.Description, Slug: c.Slug, Content: c.Content}
		if c.Content != "" {
			v.Text = c.Content
		}
	}
	return v
}

func fromRow(r *PlatformRow) *RenderingView {
	v := &RenderingView{
		ID:             r.ID,
		Platform:       models.Platform(strings.ToLower(string(r.Platform))),
		Text:           r.Text,
		ImageURL:       deref(r.ImageURL),
		SlidesURL:      deref(r.SlidesURL),
		SlideRows:      r.SlideImages,
		SlideImages:    r.FlatSlides,
		UploadedImages: r.UploadedImages,
		ScheduledAt:    r.ScheduledAt,
		PublishedAt:    r.PublishedAt,
		PublishedURL:   deref(r.PublishedURL),
		Status:         r.Status,
		ContentType:    r.ContentType,
	}
	if v.Platform == models.PlatformWordPress && len(r.WordPressPosts) > 0 {
		wp := r.WordPressPosts[0]
		v.WordPress = &WordPressFields{Title: wp.Title, Description: wp.Description, Slug: wp.Slug, Content: wp.Content}
		v.Text = wp.Content
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
