package transfer

import (
	"regexp"
	"time"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/timeutil"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type EntryRequest struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (r EntryRequest) Validate() error {
	return v.ValidateStruct(&r,
		v.Field(&r.Topic, v.Required, v.Length(1, 500)),
		v.Field(&r.Description, v.Length(0, 5000)),
		v.Field(&r.Type, v.Required, v.In(models.ContentTypeSimplePost, models.ContentTypeSlidePost)),
	)
}

// ContentRequest edits a single rendering. WordPress renderings use the
// post fields; every other platform uses Text.
type ContentRequest struct {
	Text        string `json:"text"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	Content     string `json:"content"`
}

func (r ContentRequest) Validate(platform models.Platform) error {
	if platform == models.PlatformWordPress {
		return v.ValidateStruct(&r,
			v.Field(&r.Title, v.Required),
			v.Field(&r.Slug, v.Match(slugPattern)),
			v.Field(&r.Content, v.Required),
		)
	}
	return v.ValidateStruct(&r,
		v.Field(&r.Text, v.Required),
	)
}

type ImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

func (r ImageRequest) Validate() error {
	return v.ValidateStruct(&r,
		v.Field(&r.ImageURL, v.Required, is.URL),
	)
}

// ScheduleRequest carries either an RFC 3339 instant or a datetime-local value
// read in the caller's timezone. An empty value clears the schedule.
type ScheduleRequest struct {
	ScheduledAt string `json:"scheduledAt"`
}

func (r ScheduleRequest) Instant(loc *time.Location) (*time.Time, error) {
	if r.ScheduledAt == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, r.ScheduledAt); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := timeutil.FromLocalInputValue(r.ScheduledAt, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type PublishResponse struct {
	Queued bool   `json:"queued"`
	Status string `json:"status"`
	Link   string `json:"link,omitempty"`
}
