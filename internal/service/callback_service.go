package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/contentflow/internal/cache"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/transfer"
	"github.com/maheshrc27/contentflow/internal/webhook"
)

// CallbackService applies the notifications the automation sends back and
// runs the slide download the queue hands it.
type CallbackService interface {
	PublishStatus(ctx context.Context, cb transfer.PublishStatusCallback) error
	ReplaceSlides(ctx context.Context, cb transfer.SlidesCallback) (int, error)
	DownloadSlides(ctx context.Context, platformID string) error
}

type callbackService struct {
	*loader
	gw webhook.Gateway
}

func NewCallbackService(store Store, entries *cache.EntryCache, gw webhook.Gateway) CallbackService {
	return &callbackService{
		loader: &loader{store: store, cache: entries, now: time.Now},
		gw:     gw,
	}
}

func (s *callbackService) PublishStatus(ctx context.Context, cb transfer.PublishStatusCallback) error {
	if err := cb.Validate(); err != nil {
		return validationError(err)
	}

	r, err := s.store.Renderings.GetByID(ctx, cb.PlatformID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("rendering %s: %w", cb.PlatformID, ErrNotFound)
	}

	at := cb.PublishedAt
	if cb.Status == models.StatusPublished && at == nil {
		now := s.now().UTC()
		at = &now
	}
	if err := s.store.Renderings.UpdatePublishStatus(ctx, r.ID, cb.Status, cb.PublishedURL, at); err != nil {
		return notFound(err)
	}

	s.invalidateOwners(ctx, r)
	return nil
}

// ReplaceSlides swaps the slide set of every rendering sharing the slides url
// in one transaction. It returns how many renderings were updated.
func (s *callbackService) ReplaceSlides(ctx context.Context, cb transfer.SlidesCallback) (int, error) {
	if err := cb.Validate(); err != nil {
		return 0, validationError(err)
	}
	return s.replaceSlides(ctx, cb.SlidesURL, cb.SlideImages)
}

func (s *callbackService) replaceSlides(ctx context.Context, slidesURL string, images []string) (int, error) {
	renderings, err := s.store.Renderings.ListBySlidesURL(ctx, slidesURL)
	if err != nil {
		return 0, err
	}
	if len(renderings) == 0 {
		return 0, fmt.Errorf("slides %s: %w", slidesURL, ErrNotFound)
	}

	err = s.store.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
		for _, r := range renderings {
			if err := s.store.Slides.ReplaceAll(ctx, tx, r.ID, images); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("replace slides: %w", err)
	}

	s.invalidateOwners(ctx, renderings...)
	return len(renderings), nil
}

func (s *callbackService) DownloadSlides(ctx context.Context, platformID string) error {
	if _, err := uuid.Parse(platformID); err != nil {
		return fmt.Errorf("%w: platform id must be a uuid", ErrValidation)
	}
	r, err := s.store.Renderings.GetByID(ctx, platformID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("rendering %s: %w", platformID, ErrNotFound)
	}
	if r.SlidesURL == nil || *r.SlidesURL == "" {
		return fmt.Errorf("%w: rendering has no slides", ErrValidation)
	}

	e, err := s.store.Entries.GetByID(ctx, r.EntryID)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("entry %s: %w", r.EntryID, ErrNotFound)
	}
	url, err := s.webhookURL(ctx, e.UserID)
	if err != nil {
		return err
	}

	batches, err := s.gw.DownloadSlides(ctx, url, *r.SlidesURL, e.Topic)
	if err != nil {
		return fmt.Errorf("download slides: %w", err)
	}
	images, ok := webhook.FirstSlides(batches)
	if !ok || len(images) == 0 {
		return fmt.Errorf("download slides: %w: no slide images", webhook.ErrUnexpectedResponse)
	}

	_, err = s.replaceSlides(ctx, *r.SlidesURL, images)
	return err
}

func (s *callbackService) invalidateOwners(ctx context.Context, renderings ...*models.PlatformRendering) {
	seen := make(map[string]bool)
	for _, r := range renderings {
		if seen[r.EntryID] {
			continue
		}
		seen[r.EntryID] = true

		e, err := s.store.Entries.GetByID(ctx, r.EntryID)
		if err != nil || e == nil {
			slog.Info("cache not invalidated for entry", "entry_id", r.EntryID)
			continue
		}
		s.cache.Invalidate(e.UserID)
	}
}
