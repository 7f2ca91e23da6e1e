// Package webhook talks to the user-configured automation endpoint that
// generates copy and images, converts slides and publishes. The endpoint is
// opaque; this package only shapes requests and reads its responses.
//
// Requests carry no idempotency key. A resubmitted request can repeat an
// external side effect such as a publication.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/maheshrc27/contentflow/internal/models"
)

const (
	ActionGenerateContent = "generate_content"
	ActionGenerateImage   = "generate_image"
	ActionDownloadSlides  = "download_slides"
	ActionPublish         = "publish"
)

var (
	ErrNotConfigured      = errors.New("webhook url is not configured")
	ErrRequestFailed      = errors.New("webhook request failed")
	ErrUnexpectedResponse = errors.New("unexpected webhook response")
)

// StatusError is a non-2xx answer, kept verbatim.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook responded %d: %s", e.Code, e.Body)
}

type Gateway interface {
	GenerateContent(ctx context.Context, url string, req GenerateContentRequest) (*GeneratedContent, error)
	GenerateImage(ctx context.Context, url string, req GenerateImageRequest) (*GeneratedImage, error)
	DownloadSlides(ctx context.Context, url, slidesURL, topic string) ([]SlideBatch, error)
	Publish(ctx context.Context, url, entryID string, platform models.Platform) (PublishOutcome, error)
}

type gateway struct {
	client *resty.Client
}

func NewGateway(client *resty.Client) Gateway {
	if client == nil {
		client = resty.New()
	}
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	return &gateway{client: client}
}

func (g *gateway) post(ctx context.Context, url string, body interface{}) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrNotConfigured
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(url)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &StatusError{Code: resp.StatusCode(), Body: resp.String()}
	}
	return resp.Body(), nil
}

// decodeObject accepts a bare object or an array whose first element is the object.
func decodeObject(body []byte, v interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ErrUnexpectedResponse
	}
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
		}
		if len(items) == 0 {
			return ErrUnexpectedResponse
		}
		trimmed = items[0]
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

type GenerateContentRequest struct {
	Action      string `json:"action"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	ContentType string `json:"contentType"`
	UserEmail   string `json:"userEmail"`
}

type GeneratedContent struct {
	InstagramContent     string `json:"instagramContent"`
	LinkedInContent      string `json:"linkedinContent"`
	TwitterContent       string `json:"twitterContent"`
	WordPressTitle       string `json:"wordpressTitle"`
	WordPressDescription string `json:"wordpressDescription"`
	WordPressSlug        string `json:"wordpressSlug"`
	WordPressContent     string `json:"wordpressContent"`
	ImageURL             string `json:"imageURL"`
	SlidesURL            string `json:"slidesURL"`
}

func (g *gateway) GenerateContent(ctx context.Context, url string, req GenerateContentRequest) (*GeneratedContent, error) {
	req.Action = ActionGenerateContent
	body, err := g.post(ctx, url, req)
	if err != nil {
		return nil, err
	}

	var out GeneratedContent
	if err := decodeObject(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type GenerateImageRequest struct {
	Action      string          `json:"action"`
	EntryID     string          `json:"entryId"`
	Platform    models.Platform `json:"platform"`
	Topic       string          `json:"topic"`
	Description string          `json:"description"`
}

type GeneratedImage struct {
	ImageURL string `json:"imageURL"`
}

func (g *gateway) GenerateImage(ctx context.Context, url string, req GenerateImageRequest) (*GeneratedImage, error) {
	req.Action = ActionGenerateImage
	body, err := g.post(ctx, url, req)
	if err != nil {
		return nil, err
	}

	var out GeneratedImage
	if err := decodeObject(body, &out); err != nil {
		return nil, err
	}
	if out.ImageURL == "" {
		return nil, fmt.Errorf("%w: missing imageURL", ErrUnexpectedResponse)
	}
	return &out, nil
}

type SlideBatch struct {
	SlideImages []string `json:"slideImages"`
}

// DownloadSlides requires the array wrapper; an empty array is returned as is
// and left to the caller.
func (g *gateway) DownloadSlides(ctx context.Context, url, slidesURL, topic string) ([]SlideBatch, error) {
	body, err := g.post(ctx, url, map[string]string{
		"action":    ActionDownloadSlides,
		"slidesURL": slidesURL,
		"topic":     topic,
	})
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected an array", ErrUnexpectedResponse)
	}
	var batches []SlideBatch
	if err := json.Unmarshal(trimmed, &batches); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return batches, nil
}

// FirstSlides returns the first batch's images.
func FirstSlides(batches []SlideBatch) ([]string, bool) {
	if len(batches) == 0 {
		return nil, false
	}
	return batches[0].SlideImages, true
}

func (g *gateway) Publish(ctx context.Context, url, entryID string, platform models.Platform) (PublishOutcome, error) {
	body, err := g.post(ctx, url, map[string]string{
		"action":   ActionPublish,
		"entryId":  entryID,
		"platform": string(platform),
	})
	if err != nil {
		return nil, err
	}

	var raw PublishResponse
	if err := decodeObject(body, &raw); err != nil {
		return nil, err
	}
	return TranslatePublish(raw)
}
