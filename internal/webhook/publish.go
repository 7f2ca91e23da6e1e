package webhook

import "fmt"

// PublishResponse is the raw answer of a publish call. The same call can mean
// published now or queued for later; only the link tells them apart.
type PublishResponse struct {
	Status string `json:"status"`
	Link   string `json:"link"`
}

// PublishOutcome is either Immediate or Queued.
type PublishOutcome interface {
	outcome()
}

type Immediate struct {
	Link   string
	Status string
}

type Queued struct {
	Status string
}

func (Immediate) outcome() {}
func (Queued) outcome()    {}

var acceptedStatuses = map[string]bool{
	"published":          true,
	"success":            true,
	"wordpressPublished": true,
}

// TranslatePublish is the only place raw publish fields are inspected.
func TranslatePublish(raw PublishResponse) (PublishOutcome, error) {
	if raw.Link != "" {
		return Immediate{Link: raw.Link, Status: raw.Status}, nil
	}
	if acceptedStatuses[raw.Status] {
		return Queued{Status: raw.Status}, nil
	}
	return nil, fmt.Errorf("%w: publish status %q", ErrUnexpectedResponse, raw.Status)
}
