package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
)

type WordPressPostRepository interface {
	GetByPlatformID(ctx context.Context, platformID string) (*models.WordPressPost, error)
	Create(ctx context.Context, tx *sql.Tx, wp *models.WordPressPost) (string, error)
	Update(ctx context.Context, tx *sql.Tx, wp *models.WordPressPost) error
}

type wordPressPostRepository struct {
	db *sql.DB
}

func NewWordPressPostRepository(db *sql.DB) WordPressPostRepository {
	return &wordPressPostRepository{db: db}
}

func (r *wordPressPostRepository) GetByPlatformID(ctx context.Context, platformID string) (*models.WordPressPost, error) {
	query := `
		SELECT id, content_platform_id, title, description, slug, content, created_at, updated_at
		FROM wordpress_posts
		WHERE content_platform_id = $1
		ORDER BY created_at
		LIMIT 1
	`

	var wp models.WordPressPost
	err := r.db.QueryRowContext(ctx, query, platformID).Scan(
		&wp.ID, &wp.PlatformID, &wp.Title, &wp.Description, &wp.Slug, &wp.Content, &wp.CreatedAt, &wp.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &wp, nil
}

func (r *wordPressPostRepository) Create(ctx context.Context, tx *sql.Tx, wp *models.WordPressPost) (string, error) {
	query := `
		INSERT INTO wordpress_posts (content_platform_id, title, description, slug, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id string
	err := conn(r.db, tx).QueryRowContext(ctx, query, wp.PlatformID, wp.Title, wp.Description, wp.Slug, wp.Content).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	return id, nil
}

func (r *wordPressPostRepository) Update(ctx context.Context, tx *sql.Tx, wp *models.WordPressPost) error {
	query := `
		UPDATE wordpress_posts
		SET title = $1,
			description = $2,
			slug = $3,
			content = $4,
			updated_at = $5
		WHERE content_platform_id = $6
	`
	result, err := conn(r.db, tx).ExecContext(ctx, query, wp.Title, wp.Description, wp.Slug, wp.Content, time.Now(), wp.PlatformID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return expectAffected(result)
}
