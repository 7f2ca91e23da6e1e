package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/contentflow/internal/models"
)

type CredentialRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]*models.UserCredential, error)
	GetByService(ctx context.Context, userID, service string) (*models.UserCredential, error)
	Upsert(ctx context.Context, c *models.UserCredential) error
	Remove(ctx context.Context, userID, service string) error
}

type credentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

const credentialColumns = `id, user_id, service, credential_type, access_token, refresh_token,
	client_id, client_secret, expires_at, created_at, updated_at`

func scanCredential(row interface{ Scan(...interface{}) error }, c *models.UserCredential) error {
	return row.Scan(&c.ID, &c.UserID, &c.Service, &c.CredentialType, &c.AccessToken, &c.RefreshToken,
		&c.ClientID, &c.ClientSecret, &c.ExpiresAt, &c.CreatedAt, &c.UpdatedAt)
}

func (r *credentialRepository) ListByUserID(ctx context.Context, userID string) ([]*models.UserCredential, error) {
	query := `SELECT ` + credentialColumns + ` FROM user_credentials WHERE user_id = $1 ORDER BY service`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var credentials []*models.UserCredential
	for rows.Next() {
		var c models.UserCredential
		if err := scanCredential(rows, &c); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		credentials = append(credentials, &c)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return credentials, nil
}

func (r *credentialRepository) GetByService(ctx context.Context, userID, service string) (*models.UserCredential, error) {
	query := `SELECT ` + credentialColumns + ` FROM user_credentials WHERE user_id = $1 AND service = $2`

	var c models.UserCredential
	if err := scanCredential(r.db.QueryRowContext(ctx, query, userID, service), &c); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &c, nil
}

func (r *credentialRepository) Upsert(ctx context.Context, c *models.UserCredential) error {
	query := `
		INSERT INTO user_credentials (
			user_id,
			service,
			credential_type,
			access_token,
			refresh_token,
			client_id,
			client_secret,
			expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, service) DO UPDATE SET
			credential_type = EXCLUDED.credential_type,
			access_token = EXCLUDED.access_token,
			refresh_token = COALESCE(EXCLUDED.refresh_token, user_credentials.refresh_token),
			client_id = EXCLUDED.client_id,
			client_secret = EXCLUDED.client_secret,
			expires_at = EXCLUDED.expires_at,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query,
		c.UserID,
		c.Service,
		c.CredentialType,
		c.AccessToken,
		c.RefreshToken,
		c.ClientID,
		c.ClientSecret,
		c.ExpiresAt,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *credentialRepository) Remove(ctx context.Context, userID, service string) error {
	query := `DELETE FROM user_credentials WHERE user_id = $1 AND service = $2`
	result, err := r.db.ExecContext(ctx, query, userID, service)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return expectAffected(result)
}
