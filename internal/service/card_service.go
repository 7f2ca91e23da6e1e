package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/maheshrc27/contentflow/internal/cache"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/projector"
	"github.com/maheshrc27/contentflow/internal/repository"
	"github.com/maheshrc27/contentflow/internal/timeutil"
	"github.com/maheshrc27/contentflow/internal/transfer"
	"github.com/maheshrc27/contentflow/internal/webhook"
)

// SlideEnqueuer schedules a background slide download for a rendering.
type SlideEnqueuer interface {
	EnqueueSlideDownload(ctx context.Context, platformID string) error
}

// CardService operates on single renderings addressed by composite card id.
// Every mutating call parses the id before touching the store.
type CardService interface {
	List(ctx context.Context, userID string, force bool, view projector.View) ([]projector.Card, error)
	Calendar(ctx context.Context, userID string, from, to time.Time, view projector.View) ([]projector.Card, error)
	UpdateContent(ctx context.Context, userID, cardID string, req transfer.ContentRequest) error
	UpdateImage(ctx context.Context, userID, cardID string, req transfer.ImageRequest) error
	GenerateImage(ctx context.Context, userID, cardID string) (string, error)
	UpdateSchedule(ctx context.Context, userID, cardID string, at *time.Time) error
	Publish(ctx context.Context, userID, cardID string) (webhook.PublishOutcome, error)
	Delete(ctx context.Context, userID, cardID string) error
	RequestSlideDownload(ctx context.Context, userID, cardID string) error
}

type cardService struct {
	*loader
	gw     webhook.Gateway
	slides SlideEnqueuer
}

func NewCardService(store Store, entries *cache.EntryCache, gw webhook.Gateway, slides SlideEnqueuer) CardService {
	return &cardService{
		loader: &loader{store: store, cache: entries, now: time.Now},
		gw:     gw,
		slides: slides,
	}
}

func (s *cardService) List(ctx context.Context, userID string, force bool, view projector.View) ([]projector.Card, error) {
	entries, err := s.list(ctx, userID, force)
	if err != nil {
		return nil, err
	}
	if view.Now.IsZero() {
		view.Now = s.now()
	}
	return projector.ProjectAll(entries, view), nil
}

func (s *cardService) Calendar(ctx context.Context, userID string, from, to time.Time, view projector.View) ([]projector.Card, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: calendar range is empty", ErrValidation)
	}
	cards, err := s.List(ctx, userID, false, view)
	if err != nil {
		return nil, err
	}
	return projector.Calendar(cards, from, to), nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNoRowsAffected) {
		return fmt.Errorf("rendering: %w", ErrNotFound)
	}
	return err
}

func (s *cardService) UpdateContent(ctx context.Context, userID, cardID string, req transfer.ContentRequest) error {
	_, r, err := s.resolveCard(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if err := req.Validate(r.Platform); err != nil {
		return validationError(err)
	}

	if r.Platform != models.PlatformWordPress {
		if err := s.store.Renderings.UpdateText(ctx, nil, r.ID, req.Text, models.StatusEdited); err != nil {
			return notFound(err)
		}
		s.cache.Invalidate(userID)
		return nil
	}

	wp, err := s.store.WordPress.GetByPlatformID(ctx, r.ID)
	if err != nil {
		return err
	}
	edit := contentEdit{renderingID: r.ID, text: req.Content}
	if wp == nil {
		wp = &models.WordPressPost{PlatformID: r.ID}
		edit.create = true
	}
	wp.Title = req.Title
	wp.Description = req.Description
	wp.Slug = req.Slug
	wp.Content = req.Content
	edit.wordpress = wp

	err = s.store.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
		return applyContentEdit(ctx, tx, s.store, edit)
	})
	if err != nil {
		return notFound(err)
	}
	s.cache.Invalidate(userID)
	return nil
}

func (s *cardService) UpdateImage(ctx context.Context, userID, cardID string, req transfer.ImageRequest) error {
	_, r, err := s.resolveCard(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}

	if err := s.store.Renderings.UpdateImage(ctx, r.ID, req.ImageURL); err != nil {
		return notFound(err)
	}
	s.cache.Invalidate(userID)
	return nil
}

func (s *cardService) GenerateImage(ctx context.Context, userID, cardID string) (string, error) {
	e, r, err := s.resolveCard(ctx, userID, cardID)
	if err != nil {
		return "", err
	}
	url, err := s.webhookURL(ctx, userID)
	if err != nil {
		return "", err
	}

	img, err := s.gw.GenerateImage(ctx, url, webhook.GenerateImageRequest{
		EntryID:     e.ID,
		Platform:    r.Platform,
		Topic:       e.Topic,
		Description: e.Description,
	})
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}

	if err := s.store.Renderings.UpdateImage(ctx, r.ID, img.ImageURL); err != nil {
		return "", notFound(err)
	}
	s.cache.Invalidate(userID)
	return img.ImageURL, nil
}

// UpdateSchedule sets the publication time and marks the rendering scheduled.
// A nil time clears the schedule and leaves the status as it is.
func (s *cardService) UpdateSchedule(ctx context.Context, userID, cardID string, at *time.Time) error {
	_, r, err := s.resolveCard(ctx, userID, cardID)
	if err != nil {
		return err
	}

	status := ""
	if at != nil {
		earliest, err := time.Parse(time.RFC3339, timeutil.MinSelectableInstant(s.now()))
		if err != nil {
			return err
		}
		if at.Before(earliest) {
			return fmt.Errorf("%w: scheduled time must be after %s", ErrValidation, earliest.Format(time.RFC3339))
		}
		utc := at.UTC()
		at = &utc
		status = models.StatusScheduled
	}

	if err := s.store.Renderings.UpdateSchedule(ctx, r.ID, at, status); err != nil {
		return notFound(err)
	}
	s.cache.Invalidate(userID)
	return nil
}

// Publish asks the webhook to publish now. Only an immediate publication is
// recorded here; a queued one is settled later through the status callback.
func (s *cardService) Publish(ctx context.Context, userID, cardID string) (webhook.PublishOutcome, error) {
	e, r, err := s.resolveCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	url, err := s.webhookURL(ctx, userID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.gw.Publish(ctx, url, e.ID, r.Platform)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}

	if o, ok := outcome.(webhook.Immediate); ok {
		link := o.Link
		now := s.now().UTC()
		if err := s.store.Renderings.UpdatePublishStatus(ctx, r.ID, models.StatusPublished, &link, &now); err != nil {
			return nil, notFound(err)
		}
		s.cache.Invalidate(userID)
	}
	return outcome, nil
}

func (s *cardService) Delete(ctx context.Context, userID, cardID string) error {
	_, r, err := s.resolveCard(ctx, userID, cardID)
	if err != nil {
		return err
	}

	err = s.store.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
		return s.store.Renderings.Remove(ctx, tx, r.ID)
	})
	if err != nil {
		return fmt.Errorf("delete rendering: %w", err)
	}
	s.cache.Invalidate(userID)
	return nil
}

func (s *cardService) RequestSlideDownload(ctx context.Context, userID, cardID string) error {
	_, r, err := s.resolveCard(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if r.SlidesURL == nil || *r.SlidesURL == "" {
		return fmt.Errorf("%w: rendering has no slides", ErrValidation)
	}
	if _, err := s.webhookURL(ctx, userID); err != nil {
		return err
	}

	return s.slides.EnqueueSlideDownload(ctx, r.ID)
}
