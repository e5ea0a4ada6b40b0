package repo

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/finboard/service-api-go/internal/faq/entity"
)

// FaqRepo provides data access for the faqs table using sqlx.
type FaqRepo struct {
	db *sqlx.DB
}

func NewFaqRepo(db *sqlx.DB) *FaqRepo { return &FaqRepo{db: db} }

// EnsureTable creates the faqs table if it does not exist (idempotent).
func (r *FaqRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS faqs (
  id BIGINT PRIMARY KEY,
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  flg BOOLEAN NOT NULL DEFAULT true,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  deleted_at TIMESTAMPTZ
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// List returns every live faq, newest first.
func (r *FaqRepo) List(ctx context.Context) ([]entity.Faq, error) {
	const q = `SELECT id, title, content, flg, created_at, updated_at
	  FROM faqs WHERE deleted_at IS NULL ORDER BY id DESC`
	out := []entity.Faq{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single live faq or sql.ErrNoRows.
func (r *FaqRepo) Get(ctx context.Context, id int64) (*entity.Faq, error) {
	const q = `SELECT id, title, content, flg, created_at, updated_at
	  FROM faqs WHERE id=$1 AND deleted_at IS NULL`
	var row entity.Faq
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new faq.
func (r *FaqRepo) Create(ctx context.Context, f *entity.Faq) error {
	const q = `INSERT INTO faqs (id, title, content, flg) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, q, f.ID, f.Title, f.Content, f.Flg)
	return err
}

// Update replaces title, content and visibility flag of a faq.
func (r *FaqRepo) Update(ctx context.Context, id int64, title, content string, flg bool) error {
	const q = `UPDATE faqs SET title=$2, content=$3, flg=$4, updated_at=NOW()
	  WHERE id=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, id, title, content, flg)
	return err
}

// SoftDelete marks a faq deleted.
func (r *FaqRepo) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	const q = `UPDATE faqs SET deleted_at=$2, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, id, at)
	return err
}
