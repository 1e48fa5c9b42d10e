package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/geoirb/doc-templater/internal/templates"
)

const schema = `
CREATE TABLE IF NOT EXISTS templates (
	id           UUID PRIMARY KEY,
	user_id      UUID NOT NULL,
	name         TEXT NOT NULL,
	file_path    TEXT NOT NULL,
	file_size    BIGINT NOT NULL,
	placeholders TEXT[] NOT NULL DEFAULT '{}',
	file_type    TEXT NOT NULL,
	upload_date  TIMESTAMPTZ NOT NULL DEFAULT now(),
	use_count    BIGINT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS templates_user_id_idx ON templates (user_id, upload_date DESC);
`

// Repository of template metadata.
type Repository struct {
	db *sqlx.DB
}

// NewRepository ...
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Migrate applies the templates schema.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate templates schema: %s", err)
	}
	return nil
}

type record struct {
	ID           string         `db:"id"`
	UserID       string         `db:"user_id"`
	Name         string         `db:"name"`
	FilePath     string         `db:"file_path"`
	FileSize     int64          `db:"file_size"`
	Placeholders pq.StringArray `db:"placeholders"`
	FileType     string         `db:"file_type"`
	UploadDate   time.Time      `db:"upload_date"`
	UseCount     int64          `db:"use_count"`
}

func (rec *record) template() *templates.Template {
	return &templates.Template{
		ID:           rec.ID,
		UserID:       rec.UserID,
		Name:         rec.Name,
		FilePath:     rec.FilePath,
		FileSize:     rec.FileSize,
		Placeholders: []string(rec.Placeholders),
		FileType:     rec.FileType,
		UploadDate:   rec.UploadDate,
		UseCount:     rec.UseCount,
	}
}

// Create inserts template metadata.
func (r *Repository) Create(ctx context.Context, template *templates.Template) error {
	query := `INSERT INTO templates (
		id, user_id, name, file_path, file_size, placeholders, file_type, upload_date, use_count
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		template.ID, template.UserID, template.Name, template.FilePath, template.FileSize,
		pq.StringArray(template.Placeholders), template.FileType, template.UploadDate, template.UseCount,
	)
	if err != nil {
		return fmt.Errorf("create template: %s", err)
	}
	return nil
}

// GetByID returns template metadata by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*templates.Template, error) {
	query := `SELECT id, user_id, name, file_path, file_size, placeholders, file_type, upload_date, use_count
	FROM templates WHERE id = $1`

	var rec record
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, templates.ErrNotFound
		}
		return nil, fmt.Errorf("get template: %s", err)
	}
	return rec.template(), nil
}

// List returns the user's template metadata, newest first.
func (r *Repository) List(ctx context.Context, userID string) ([]*templates.Template, error) {
	query := `SELECT id, user_id, name, file_path, file_size, placeholders, file_type, upload_date, use_count
	FROM templates WHERE user_id = $1 ORDER BY upload_date DESC`

	var recs []record
	if err := r.db.SelectContext(ctx, &recs, query, userID); err != nil {
		return nil, fmt.Errorf("list templates: %s", err)
	}

	list := make([]*templates.Template, 0, len(recs))
	for i := range recs {
		list = append(list, recs[i].template())
	}
	return list, nil
}

// Delete removes template metadata by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete template: %s", err)
	}
	return nil
}

// IncrementUseCount bumps the template's generation counter.
func (r *Repository) IncrementUseCount(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE templates SET use_count = use_count + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("increment use count: %s", err)
	}
	return nil
}
