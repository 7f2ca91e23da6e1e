package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/maheshrc27/contentflow/internal/cache"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/normalize"
	"github.com/maheshrc27/contentflow/internal/repository"
	"github.com/maheshrc27/contentflow/internal/transfer"
	"github.com/maheshrc27/contentflow/internal/webhook"
)

type EntryService interface {
	List(ctx context.Context, userID string, force bool) ([]normalize.Entry, error)
	Get(ctx context.Context, userID, entryID string) (*normalize.Entry, error)
	Generate(ctx context.Context, userID, email string, req transfer.EntryRequest) (*normalize.Entry, error)
	Update(ctx context.Context, userID, entryID string, req transfer.EntryRequest) error
	SaveContent(ctx context.Context, userID, entryID string, payload normalize.Payload) error
	Delete(ctx context.Context, userID, entryID string) error
}

type entryService struct {
	*loader
	gw webhook.Gateway
}

func NewEntryService(store Store, entries *cache.EntryCache, gw webhook.Gateway) EntryService {
	return &entryService{
		loader: &loader{store: store, cache: entries, now: time.Now},
		gw:     gw,
	}
}

func (s *entryService) List(ctx context.Context, userID string, force bool) ([]normalize.Entry, error) {
	return s.list(ctx, userID, force)
}

func (s *entryService) Get(ctx context.Context, userID, entryID string) (*normalize.Entry, error) {
	e, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	n, err := s.normalizeEntry(ctx, e)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

type plannedRendering struct {
	rendering models.PlatformRendering
	wordpress *models.WordPressPost
}

// planRenderings keeps every platform the webhook produced text for, limited
// to the selected platforms when the profile names any.
func planRenderings(gen *webhook.GeneratedContent, contentType string, selected []models.Platform, now time.Time) []plannedRendering {
	texts := map[models.Platform]string{
		models.PlatformInstagram: gen.InstagramContent,
		models.PlatformLinkedIn:  gen.LinkedInContent,
		models.PlatformTwitter:   gen.TwitterContent,
		models.PlatformWordPress: gen.WordPressContent,
	}

	var plan []plannedRendering
	for _, p := range models.Platforms {
		text := texts[p]
		if text == "" {
			continue
		}
		if len(selected) > 0 && !slices.Contains(selected, p) {
			continue
		}

		pr := plannedRendering{rendering: models.PlatformRendering{
			Platform:    p,
			Text:        text,
			ImageURL:    optional(gen.ImageURL),
			SlidesURL:   optional(gen.SlidesURL),
			Status:      models.StatusGenerated,
			ContentType: contentType,
			GeneratedAt: &now,
		}}
		if p == models.PlatformWordPress {
			pr.wordpress = &models.WordPressPost{
				Title:       gen.WordPressTitle,
				Description: gen.WordPressDescription,
				Slug:        gen.WordPressSlug,
				Content:     gen.WordPressContent,
			}
		}
		plan = append(plan, pr)
	}
	return plan
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *entryService) Generate(ctx context.Context, userID, email string, req transfer.EntryRequest) (*normalize.Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.WebhookURL == "" {
		return nil, ErrWebhookNotConfigured
	}

	gen, err := s.gw.GenerateContent(ctx, profile.WebhookURL, webhook.GenerateContentRequest{
		Topic:       req.Topic,
		Description: req.Description,
		ContentType: req.Type,
		UserEmail:   email,
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	now := s.now().UTC()
	entry := &models.ContentEntry{
		Topic:       req.Topic,
		Description: req.Description,
		Type:        req.Type,
		CreatedDate: now,
		UserID:      userID,
	}
	plan := planRenderings(gen, req.Type, profile.SelectedPlatforms, now)

	err = s.store.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
		id, err := s.store.Entries.Create(ctx, tx, entry)
		if err != nil {
			return err
		}
		entry.ID = id

		for i := range plan {
			plan[i].rendering.EntryID = id
			renderingID, err := s.store.Renderings.Create(ctx, tx, &plan[i].rendering)
			if err != nil {
				return err
			}
			if wp := plan[i].wordpress; wp != nil {
				wp.PlatformID = renderingID
				if _, err := s.store.WordPress.Create(ctx, tx, wp); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save generated entry: %w", err)
	}

	s.cache.Invalidate(userID)
	return s.Get(ctx, userID, entry.ID)
}

func (s *entryService) Update(ctx context.Context, userID, entryID string, req transfer.EntryRequest) error {
	if err := req.Validate(); err != nil {
		return validationError(err)
	}

	e, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return err
	}
	e.Topic = req.Topic
	e.Description = req.Description
	e.Type = req.Type

	if err := s.store.Entries.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return fmt.Errorf("entry %s: %w", entryID, ErrNotFound)
		}
		return err
	}

	s.cache.Invalidate(userID)
	return nil
}

type contentEdit struct {
	renderingID string
	text        string
	wordpress   *models.WordPressPost
	create      bool
}

// SaveContent writes the text of every rendering the payload describes. The
// payload is normalized first, so either record shape is accepted. Platforms
// without a stored rendering are ignored.
func (s *entryService) SaveContent(ctx context.Context, userID, entryID string, payload normalize.Payload) error {
	if payload.Empty() {
		return fmt.Errorf("%w: no platform content", ErrValidation)
	}

	e, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return err
	}
	normalized := normalize.Normalize(payload.Source(*e))

	var edits []contentEdit
	for _, p := range normalized.Platforms {
		view := normalized.PlatformContent[p]
		r, err := s.store.Renderings.GetByEntryAndPlatform(ctx, e.ID, p)
		if err != nil {
			return err
		}
		if r == nil {
			continue
		}

		edit := contentEdit{renderingID: r.ID, text: view.Text}
		if p == models.PlatformWordPress && view.WordPress != nil {
			wp, err := s.store.WordPress.GetByPlatformID(ctx, r.ID)
			if err != nil {
				return err
			}
			if wp == nil {
				wp = &models.WordPressPost{PlatformID: r.ID}
				edit.create = true
			}
			wp.Title = view.WordPress.Title
			wp.Description = view.WordPress.Description
			wp.Slug = view.WordPress.Slug
			wp.Content = view.WordPress.Content
			edit.wordpress = wp
		}
		edits = append(edits, edit)
	}
	if len(edits) == 0 {
		return fmt.Errorf("entry %s has no matching renderings: %w", entryID, ErrNotFound)
	}

	err = s.store.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
		for _, edit := range edits {
			if err := applyContentEdit(ctx, tx, s.store, edit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save content: %w", err)
	}

	s.cache.Invalidate(userID)
	return nil
}

func applyContentEdit(ctx context.Context, tx *sql.Tx, store Store, edit contentEdit) error {
	if err := store.Renderings.UpdateText(ctx, tx, edit.renderingID, edit.text, models.StatusEdited); err != nil {
		return err
	}
	if edit.wordpress == nil {
		return nil
	}
	if edit.create {
		_, err := store.WordPress.Create(ctx, tx, edit.wordpress)
		return err
	}
	return store.WordPress.Update(ctx, tx, edit.wordpress)
}

func (s *entryService) Delete(ctx context.Context, userID, entryID string) error {
	e, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return err
	}

	err = s.store.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
		return s.store.Entries.Remove(ctx, tx, e.ID)
	})
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	s.cache.Invalidate(userID)
	return nil
}
