// Package projector derives the per-platform card view model from a
// normalized entry.
package projector

import (
	"strings"
	"time"

	"github.com/maheshrc27/contentflow/internal/identity"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/normalize"
	"github.com/maheshrc27/contentflow/internal/timeutil"
)

type DisplayStatus string

const (
	DisplayScheduled DisplayStatus = "scheduled"
	DisplayPublished DisplayStatus = "published"
	DisplayPending   DisplayStatus = "pending"
	DisplayError     DisplayStatus = "error"
	DisplayUnknown   DisplayStatus = "unknown"
)

var labels = map[DisplayStatus]string{
	DisplayScheduled: "Programado",
	DisplayPublished: "Publicado",
	DisplayPending:   "Pendiente",
	DisplayError:     "Error",
	DisplayUnknown:   "Desconocido",
}

func (s DisplayStatus) Label() string { return labels[s] }

type Card struct {
	ID                 string                     `json:"id"`
	EntryID            string                     `json:"entryId"`
	RenderingID        string                     `json:"renderingId,omitempty"`
	Platform           models.Platform            `json:"platform"`
	Topic              string                     `json:"topic"`
	Description        string                     `json:"description"`
	DisplayType        string                     `json:"displayType"`
	Text               string                     `json:"text"`
	WordPress          *normalize.WordPressFields `json:"wordpress,omitempty"`
	ImageURL           string                     `json:"imageUrl,omitempty"`
	CanGenerateImage   bool                       `json:"canGenerateImage"`
	SlidesURL          string                     `json:"slidesUrl,omitempty"`
	SlideImages        []string                   `json:"slideImages"`
	UploadedImages     []string                   `json:"uploadedImages,omitempty"`
	ScheduledAt        *time.Time                 `json:"scheduledAt,omitempty"`
	ScheduledAtLocal   string                     `json:"scheduledAtLocal,omitempty"`
	ScheduledAtDisplay string                     `json:"scheduledAtDisplay,omitempty"`
	PublishedURL       string                     `json:"publishedUrl,omitempty"`
	StoredStatus       string                     `json:"storedStatus"`
	Status             DisplayStatus              `json:"status"`
	StatusLabel        string                     `json:"statusLabel"`
}

// View carries the viewer's clock and presentation settings.
type View struct {
	Now      time.Time
	Location *time.Location
	Locale   string
}

// Project returns false when the entry has no rendering for platform; empty
// cards are never synthesized.
func Project(e *normalize.Entry, platform models.Platform, v View) (Card, bool) {
	r, ok := e.Rendering(platform)
	if !ok || r == nil {
		return Card{}, false
	}
	id, err := identity.New(e.ID, platform)
	if err != nil {
		return Card{}, false
	}

	c := Card{
		ID:           id.String(),
		EntryID:      e.ID,
		RenderingID:  r.ID,
		Platform:     platform,
		Topic:        e.Topic,
		Description:  e.Description,
		DisplayType:  e.Type,
		Text:         r.Text,
		WordPress:    r.WordPress,
		SlidesURL:    r.SlidesURL,
		SlideImages:  normalize.SlideURLs(r),
		ScheduledAt:  r.ScheduledAt,
		PublishedURL: r.PublishedURL,
		StoredStatus: r.Status,
	}
	if r.ContentType != "" {
		c.DisplayType = r.ContentType
	}
	if c.SlideImages == nil {
		c.SlideImages = []string{}
	}
	if !IsPlaceholder(r.ImageURL) {
		c.ImageURL = r.ImageURL
	}
	c.CanGenerateImage = c.ImageURL == ""
	for _, u := range r.UploadedImages {
		c.UploadedImages = append(c.UploadedImages, u.ImageURL)
	}

	c.Status = DeriveStatus(r.Status, r.ScheduledAt, v.Now)
	c.StatusLabel = c.Status.Label()

	if r.ScheduledAt != nil {
		iso := timeutil.FormatUTC(*r.ScheduledAt)
		loc := v.Location
		if loc == nil {
			loc = time.UTC
		}
		c.ScheduledAtLocal = timeutil.ToLocalInputValue(iso, loc)
		c.ScheduledAtDisplay = timeutil.FormatForDisplay(iso, v.Locale, loc)
	}
	return c, true
}

// DeriveStatus lets a future schedule win over the stored status, which is not
// kept in sync with scheduled_at.
func DeriveStatus(stored string, scheduledAt *time.Time, now time.Time) DisplayStatus {
	if scheduledAt != nil && scheduledAt.After(now) {
		return DisplayScheduled
	}
	switch stored {
	case models.StatusPublished:
		return DisplayPublished
	case models.StatusError:
		return DisplayError
	case models.StatusPending, models.StatusGenerated, models.StatusEdited, models.StatusScheduled:
		return DisplayPending
	}
	return DisplayUnknown
}

func IsPlaceholder(url string) bool {
	return url == "" || strings.Contains(url, "placeholder")
}

// ProjectAll yields cards in entry order, then card platform order.
func ProjectAll(entries []normalize.Entry, v View) []Card {
	cards := []Card{}
	for i := range entries {
		for _, p := range models.Platforms {
			if c, ok := Project(&entries[i], p, v); ok {
				cards = append(cards, c)
			}
		}
	}
	return cards
}

// Calendar keeps cards scheduled in [from, to).
func Calendar(cards []Card, from, to time.Time) []Card {
	out := []Card{}
	for _, c := range cards {
		if c.ScheduledAt == nil {
			continue
		}
		if c.ScheduledAt.Before(from) || !c.ScheduledAt.Before(to) {
			continue
		}
		out = append(out, c)
	}
	return out
}
