package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/maheshrc27/contentflow/internal/models"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, userID string) (*models.Profile, bool, error)
	Upsert(ctx context.Context, p *models.Profile) error
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, userID string) (*models.Profile, bool, error) {
	query := `
		SELECT id, COALESCE(email, ''), brand_guidelines, posting_guidelines, selected_platforms,
			COALESCE(webhook_url, ''), created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var p models.Profile
	var brand, posting, platforms []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.Email, &brand, &posting, &platforms, &p.WebhookURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	for _, field := range []struct {
		raw []byte
		dst interface{}
	}{
		{brand, &p.BrandGuidelines},
		{posting, &p.PostingGuidelines},
		{platforms, &p.SelectedPlatforms},
	} {
		if len(field.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(field.raw, field.dst); err != nil {
			slog.Info(err.Error())
			return nil, false, err
		}
	}

	return &p, true, nil
}

func (r *profileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	brand, err := json.Marshal(p.BrandGuidelines)
	if err != nil {
		return err
	}
	posting, err := json.Marshal(p.PostingGuidelines)
	if err != nil {
		return err
	}
	platforms, err := json.Marshal(p.SelectedPlatforms)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (id, email, brand_guidelines, posting_guidelines, selected_platforms, webhook_url)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			email = COALESCE(EXCLUDED.email, profiles.email),
			brand_guidelines = EXCLUDED.brand_guidelines,
			posting_guidelines = EXCLUDED.posting_guidelines,
			selected_platforms = EXCLUDED.selected_platforms,
			webhook_url = EXCLUDED.webhook_url,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err = r.db.ExecContext(ctx, query, p.ID, p.Email, brand, posting, platforms, p.WebhookURL)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
