package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
)

type EntryRepository interface {
	Create(ctx context.Context, tx *sql.Tx, e *models.ContentEntry) (string, error)
	GetByID(ctx context.Context, id string) (*models.ContentEntry, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.ContentEntry, error)
	Update(ctx context.Context, e *models.ContentEntry) error
	Remove(ctx context.Context, tx *sql.Tx, id string) error
}

type entryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = `id, topic, description, type, created_date, user_id, created_at, updated_at`

func scanEntry(row interface{ Scan(...interface{}) error }, e *models.ContentEntry) error {
	return row.Scan(&e.ID, &e.Topic, &e.Description, &e.Type, &e.CreatedDate, &e.UserID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *entryRepository) Create(ctx context.Context, tx *sql.Tx, e *models.ContentEntry) (string, error) {
	query := `
		INSERT INTO content_entries (topic, description, type, created_date, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id string
	err := conn(r.db, tx).QueryRowContext(ctx, query, e.Topic, e.Description, e.Type, e.CreatedDate, e.UserID).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	return id, nil
}

func (r *entryRepository) GetByID(ctx context.Context, id string) (*models.ContentEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM content_entries WHERE id = $1`

	var e models.ContentEntry
	if err := scanEntry(r.db.QueryRowContext(ctx, query, id), &e); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &e, nil
}

func (r *entryRepository) ListByUserID(ctx context.Context, userID string) ([]*models.ContentEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM content_entries WHERE user_id = $1 ORDER BY created_date DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ContentEntry
	for rows.Next() {
		var e models.ContentEntry
		if err := scanEntry(rows, &e); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository) Update(ctx context.Context, e *models.ContentEntry) error {
	query := `
		UPDATE content_entries
		SET topic = $1,
			description = $2,
			type = $3,
			updated_at = $4
		WHERE id = $5 AND user_id = $6
	`
	result, err := r.db.ExecContext(ctx, query, e.Topic, e.Description, e.Type, time.Now(), e.ID, e.UserID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return expectAffected(result)
}

// Remove deletes the entry with its renderings and their children.
func (r *entryRepository) Remove(ctx context.Context, tx *sql.Tx, id string) error {
	q := conn(r.db, tx)
	children := `SELECT id FROM content_platforms WHERE content_entry_id = $1`
	statements := []string{
		`DELETE FROM slide_images WHERE content_platform_id IN (` + children + `)`,
		`DELETE FROM uploaded_images WHERE content_platform_id IN (` + children + `)`,
		`DELETE FROM wordpress_posts WHERE content_platform_id IN (` + children + `)`,
		`DELETE FROM content_platforms WHERE content_entry_id = $1`,
		`DELETE FROM content_entries WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := q.ExecContext(ctx, stmt, id); err != nil {
			slog.Info(err.Error())
			return err
		}
	}
	return nil
}
