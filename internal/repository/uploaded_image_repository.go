package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/contentflow/internal/models"
)

type UploadedImageRepository interface {
	Create(ctx context.Context, img *models.UploadedImage) (string, error)
	ListByPlatformID(ctx context.Context, platformID string) ([]models.UploadedImage, error)
}

type uploadedImageRepository struct {
	db *sql.DB
}

func NewUploadedImageRepository(db *sql.DB) UploadedImageRepository {
	return &uploadedImageRepository{db: db}
}

func (r *uploadedImageRepository) Create(ctx context.Context, img *models.UploadedImage) (string, error) {
	query := `
		INSERT INTO uploaded_images (content_platform_id, image_url)
		VALUES ($1, $2)
		RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(ctx, query, img.PlatformID, img.ImageURL).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	return id, nil
}

func (r *uploadedImageRepository) ListByPlatformID(ctx context.Context, platformID string) ([]models.UploadedImage, error) {
	query := `
		SELECT id, content_platform_id, image_url, uploaded_at
		FROM uploaded_images
		WHERE content_platform_id = $1
		ORDER BY uploaded_at
	`

	rows, err := r.db.QueryContext(ctx, query, platformID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var images []models.UploadedImage
	for rows.Next() {
		var img models.UploadedImage
		if err := rows.Scan(&img.ID, &img.PlatformID, &img.ImageURL, &img.UploadedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return images, nil
}
