package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/contentflow/internal/models"
)

type SlideImageRepository interface {
	ListByPlatformID(ctx context.Context, platformID string) ([]models.SlideImage, error)
	ReplaceAll(ctx context.Context, tx *sql.Tx, platformID string, imageURLs []string) error
}

type slideImageRepository struct {
	db *sql.DB
}

func NewSlideImageRepository(db *sql.DB) SlideImageRepository {
	return &slideImageRepository{db: db}
}

func (r *slideImageRepository) ListByPlatformID(ctx context.Context, platformID string) ([]models.SlideImage, error) {
	query := `
		SELECT id, content_platform_id, image_url, position, created_at
		FROM slide_images
		WHERE content_platform_id = $1
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, platformID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var slides []models.SlideImage
	for rows.Next() {
		var s models.SlideImage
		if err := rows.Scan(&s.ID, &s.PlatformID, &s.ImageURL, &s.Position, &s.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		slides = append(slides, s)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return slides, nil
}

// ReplaceAll deletes the current set and inserts imageURLs at positions 0..n-1.
// Without a tx the two steps are separate statements.
func (r *slideImageRepository) ReplaceAll(ctx context.Context, tx *sql.Tx, platformID string, imageURLs []string) error {
	q := conn(r.db, tx)

	if _, err := q.ExecContext(ctx, `DELETE FROM slide_images WHERE content_platform_id = $1`, platformID); err != nil {
		slog.Info(err.Error())
		return err
	}

	query := `
		INSERT INTO slide_images (content_platform_id, image_url, position)
		VALUES ($1, $2, $3)
	`
	for i, url := range imageURLs {
		if _, err := q.ExecContext(ctx, query, platformID, url, i); err != nil {
			slog.Info(err.Error())
			return err
		}
	}
	return nil
}
