package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/maheshrc27/contentflow/internal/cache"
	"github.com/maheshrc27/contentflow/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const maxUploadSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"jpg":  true,
	"png":  true,
	"webp": true,
	"gif":  true,
}

// GalleryService manages the images a user uploads for a rendering.
type GalleryService interface {
	Upload(ctx context.Context, userID, cardID string, file []byte) (*models.UploadedImage, error)
	List(ctx context.Context, userID, cardID string) ([]models.UploadedImage, error)
}

type galleryService struct {
	*loader
	objects ObjectStore
}

func NewGalleryService(store Store, entries *cache.EntryCache, objects ObjectStore) GalleryService {
	return &galleryService{
		loader:  &loader{store: store, cache: entries, now: time.Now},
		objects: objects,
	}
}

func sniffImage(file []byte) (types.Type, error) {
	if len(file) == 0 {
		return types.Unknown, fmt.Errorf("%w: empty file", ErrValidation)
	}
	if len(file) > maxUploadSize {
		return types.Unknown, fmt.Errorf("%w: file exceeds %d bytes", ErrValidation, maxUploadSize)
	}
	kind, err := filetype.Match(file)
	if err != nil || kind == types.Unknown {
		return types.Unknown, fmt.Errorf("%w: unsupported file type", ErrValidation)
	}
	if !allowedImageTypes[kind.Extension] {
		return types.Unknown, fmt.Errorf("%w: file type %s is not allowed", ErrValidation, kind.Extension)
	}
	return kind, nil
}

func (s *galleryService) Upload(ctx context.Context, userID, cardID string, file []byte) (*models.UploadedImage, error) {
	_, r, err := s.resolveCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	kind, err := sniffImage(file)
	if err != nil {
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	key := fmt.Sprintf("uploads/%s/%s.%s", userID, id, kind.Extension)
	url, err := s.objects.Upload(ctx, key, file, kind.MIME.Value)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	img := &models.UploadedImage{PlatformID: r.ID, ImageURL: url, UploadedAt: s.now().UTC()}
	img.ID, err = s.store.Uploads.Create(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("save uploaded image: %w", err)
	}

	s.cache.Invalidate(userID)
	return img, nil
}

func (s *galleryService) List(ctx context.Context, userID, cardID string) ([]models.UploadedImage, error) {
	_, r, err := s.resolveCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	images, err := s.store.Uploads.ListByPlatformID(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []models.UploadedImage{}
	}
	return images, nil
}
