package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
)

type RenderingRepository interface {
	Create(ctx context.Context, tx *sql.Tx, r *models.PlatformRendering) (string, error)
	GetByID(ctx context.Context, id string) (*models.PlatformRendering, error)
	GetByEntryAndPlatform(ctx context.Context, entryID string, platform models.Platform) (*models.PlatformRendering, error)
	ListByEntryID(ctx context.Context, entryID string) ([]*models.PlatformRendering, error)
	ListBySlidesURL(ctx context.Context, slidesURL string) ([]*models.PlatformRendering, error)
	UpdateText(ctx context.Context, tx *sql.Tx, id, text, status string) error
	UpdateImage(ctx context.Context, id, imageURL string) error
	UpdateSchedule(ctx context.Context, id string, scheduledAt *time.Time, status string) error
	UpdatePublishStatus(ctx context.Context, id, status string, publishedURL *string, publishedAt *time.Time) error
	Remove(ctx context.Context, tx *sql.Tx, id string) error
}

type renderingRepository struct {
	db *sql.DB
}

func NewRenderingRepository(db *sql.DB) RenderingRepository {
	return &renderingRepository{db: db}
}

const renderingColumns = `id, content_entry_id, platform, text, image_url, slides_url, scheduled_at,
	published_at, published_url, status, content_type, generated_at, created_at, updated_at`

func scanRendering(row interface{ Scan(...interface{}) error }, r *models.PlatformRendering) error {
	return row.Scan(&r.ID, &r.EntryID, &r.Platform, &r.Text, &r.ImageURL, &r.SlidesURL, &r.ScheduledAt,
		&r.PublishedAt, &r.PublishedURL, &r.Status, &r.ContentType, &r.GeneratedAt, &r.CreatedAt, &r.UpdatedAt)
}

func (r *renderingRepository) Create(ctx context.Context, tx *sql.Tx, pr *models.PlatformRendering) (string, error) {
	query := `
		INSERT INTO content_platforms (content_entry_id, platform, text, image_url, slides_url, status, content_type, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id string
	err := conn(r.db, tx).QueryRowContext(ctx, query,
		pr.EntryID,
		pr.Platform,
		pr.Text,
		pr.ImageURL,
		pr.SlidesURL,
		pr.Status,
		pr.ContentType,
		pr.GeneratedAt,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	return id, nil
}

func (r *renderingRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.PlatformRendering, error) {
	var pr models.PlatformRendering
	if err := scanRendering(r.db.QueryRowContext(ctx, query, args...), &pr); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &pr, nil
}

func (r *renderingRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.PlatformRendering, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var renderings []*models.PlatformRendering
	for rows.Next() {
		var pr models.PlatformRendering
		if err := scanRendering(rows, &pr); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		renderings = append(renderings, &pr)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return renderings, nil
}

func (r *renderingRepository) GetByID(ctx context.Context, id string) (*models.PlatformRendering, error) {
	return r.getOne(ctx, `SELECT `+renderingColumns+` FROM content_platforms WHERE id = $1`, id)
}

func (r *renderingRepository) GetByEntryAndPlatform(ctx context.Context, entryID string, platform models.Platform) (*models.PlatformRendering, error) {
	return r.getOne(ctx, `SELECT `+renderingColumns+` FROM content_platforms WHERE content_entry_id = $1 AND platform = $2`, entryID, platform)
}

func (r *renderingRepository) ListByEntryID(ctx context.Context, entryID string) ([]*models.PlatformRendering, error) {
	return r.list(ctx, `SELECT `+renderingColumns+` FROM content_platforms WHERE content_entry_id = $1 ORDER BY created_at`, entryID)
}

func (r *renderingRepository) ListBySlidesURL(ctx context.Context, slidesURL string) ([]*models.PlatformRendering, error) {
	return r.list(ctx, `SELECT `+renderingColumns+` FROM content_platforms WHERE slides_url = $1`, slidesURL)
}

func (r *renderingRepository) exec(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) error {
	result, err := conn(r.db, tx).ExecContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return expectAffected(result)
}

func (r *renderingRepository) UpdateText(ctx context.Context, tx *sql.Tx, id, text, status string) error {
	query := `
		UPDATE content_platforms
		SET text = $1,
			status = $2,
			updated_at = $3
		WHERE id = $4
	`
	return r.exec(ctx, tx, query, text, status, time.Now(), id)
}

func (r *renderingRepository) UpdateImage(ctx context.Context, id, imageURL string) error {
	query := `
		UPDATE content_platforms
		SET image_url = $1,
			updated_at = $2
		WHERE id = $3
	`
	return r.exec(ctx, nil, query, imageURL, time.Now(), id)
}

// UpdateSchedule keeps the stored status when status is empty.
func (r *renderingRepository) UpdateSchedule(ctx context.Context, id string, scheduledAt *time.Time, status string) error {
	query := `
		UPDATE content_platforms
		SET scheduled_at = $1,
			status = COALESCE(NULLIF($2, ''), status),
			updated_at = $3
		WHERE id = $4
	`
	return r.exec(ctx, nil, query, scheduledAt, status, time.Now(), id)
}

// UpdatePublishStatus keeps the stored url and time when they are nil.
func (r *renderingRepository) UpdatePublishStatus(ctx context.Context, id, status string, publishedURL *string, publishedAt *time.Time) error {
	query := `
		UPDATE content_platforms
		SET status = $1,
			published_url = COALESCE($2, published_url),
			published_at = COALESCE($3, published_at),
			updated_at = $4
		WHERE id = $5
	`
	return r.exec(ctx, nil, query, status, publishedURL, publishedAt, time.Now(), id)
}

// Remove deletes the rendering and its children.
func (r *renderingRepository) Remove(ctx context.Context, tx *sql.Tx, id string) error {
	q := conn(r.db, tx)
	statements := []string{
		`DELETE FROM slide_images WHERE content_platform_id = $1`,
		`DELETE FROM uploaded_images WHERE content_platform_id = $1`,
		`DELETE FROM wordpress_posts WHERE content_platform_id = $1`,
		`DELETE FROM content_platforms WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := q.ExecContext(ctx, stmt, id); err != nil {
			slog.Info(err.Error())
			return err
		}
	}
	return nil
}
