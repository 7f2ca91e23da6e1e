package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/contentflow/internal/cache"
	"github.com/maheshrc27/contentflow/internal/identity"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/normalize"
	"github.com/maheshrc27/contentflow/internal/repository"
)

// Store groups the repositories of the content store.
type Store struct {
	Entries    repository.EntryRepository
	Renderings repository.RenderingRepository
	Slides     repository.SlideImageRepository
	Uploads    repository.UploadedImageRepository
	WordPress  repository.WordPressPostRepository
	Profiles   repository.ProfileRepository
	Tx         repository.Transactor
}

// loader reads entries from the store and resolves them into normalized
// entries. It is shared by every service that touches content.
type loader struct {
	store Store
	cache *cache.EntryCache
	now   func() time.Time
}

func (l *loader) fetch(ctx context.Context, userID string) ([]normalize.Entry, error) {
	entries, err := l.store.Entries.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	out := make([]normalize.Entry, 0, len(entries))
	for _, e := range entries {
		n, err := l.normalizeEntry(ctx, e)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (l *loader) normalizeEntry(ctx context.Context, e *models.ContentEntry) (normalize.Entry, error) {
	renderings, err := l.store.Renderings.ListByEntryID(ctx, e.ID)
	if err != nil {
		return normalize.Entry{}, fmt.Errorf("list renderings: %w", err)
	}

	rows := make(normalize.CurrentShape, 0, len(renderings))
	for _, r := range renderings {
		slides, err := l.store.Slides.ListByPlatformID(ctx, r.ID)
		if err != nil {
			return normalize.Entry{}, fmt.Errorf("list slides: %w", err)
		}
		uploads, err := l.store.Uploads.ListByPlatformID(ctx, r.ID)
		if err != nil {
			return normalize.Entry{}, fmt.Errorf("list uploads: %w", err)
		}
		var wp *models.WordPressPost
		if r.Platform == models.PlatformWordPress {
			if wp, err = l.store.WordPress.GetByPlatformID(ctx, r.ID); err != nil {
				return normalize.Entry{}, fmt.Errorf("get wordpress post: %w", err)
			}
		}
		rows = append(rows, normalize.RowFromRendering(r, slides, uploads, wp))
	}

	return normalize.Normalize(normalize.Source{Entry: *e, Shapes: []normalize.Shape{rows}}), nil
}

// list serves from the cache. A failed refresh is returned to the caller; the
// cached list stays in place for the next load inside the window.
func (l *loader) list(ctx context.Context, userID string, force bool) ([]normalize.Entry, error) {
	entries, err := l.cache.Load(ctx, userID, l.now(), force, func(ctx context.Context) ([]normalize.Entry, error) {
		return l.fetch(ctx, userID)
	})
	if err != nil {
		slog.Info("entry refresh failed", "user_id", userID, "error", err.Error())
		return nil, err
	}
	return entries, nil
}

func (l *loader) ownedEntry(ctx context.Context, userID, entryID string) (*models.ContentEntry, error) {
	if _, err := uuid.Parse(entryID); err != nil {
		return nil, fmt.Errorf("%w: entry id must be a uuid", ErrValidation)
	}
	e, err := l.store.Entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e == nil || e.UserID != userID {
		return nil, fmt.Errorf("entry %s: %w", entryID, ErrNotFound)
	}
	return e, nil
}

// resolveCard parses the card id and loads the entry and rendering it points
// to. Nothing is read when the id is malformed.
func (l *loader) resolveCard(ctx context.Context, userID, cardID string) (*models.ContentEntry, *models.PlatformRendering, error) {
	id, err := identity.Parse(cardID)
	if err != nil {
		return nil, nil, fmt.Errorf("card %q: %w", cardID, err)
	}

	e, err := l.ownedEntry(ctx, userID, id.EntryID())
	if err != nil {
		return nil, nil, err
	}
	r, err := l.store.Renderings.GetByEntryAndPlatform(ctx, e.ID, id.Platform())
	if err != nil {
		return nil, nil, err
	}
	if r == nil {
		return nil, nil, fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	return e, r, nil
}

func (l *loader) profile(ctx context.Context, userID string) (*models.Profile, error) {
	p, found, err := l.store.Profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !found {
		return &models.Profile{ID: userID, SelectedPlatforms: []models.Platform{}}, nil
	}
	return p, nil
}

func (l *loader) webhookURL(ctx context.Context, userID string) (string, error) {
	p, err := l.profile(ctx, userID)
	if err != nil {
		return "", err
	}
	if p.WebhookURL == "" {
		return "", ErrWebhookNotConfigured
	}
	return p.WebhookURL, nil
}
