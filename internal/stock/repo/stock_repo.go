package repo

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/finboard/service-api-go/internal/stock/entity"
)

// StockRepo provides data access for the stock discussion board using sqlx.
type StockRepo struct {
	db *sqlx.DB
}

func NewStockRepo(db *sqlx.DB) *StockRepo { return &StockRepo{db: db} }

// EnsureTables creates the stock board tables if they do not exist
// (idempotent).
func (r *StockRepo) EnsureTables(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS stock_categories (
  id BIGINT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  show_name TEXT NOT NULL,
  path TEXT NOT NULL,
  user_id BIGINT REFERENCES users(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  deleted_at TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS stock_posts (
  id BIGINT PRIMARY KEY,
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  views INT NOT NULL DEFAULT 0,
  user_id BIGINT NOT NULL REFERENCES users(id),
  stock_category_id BIGINT NOT NULL REFERENCES stock_categories(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  deleted_at TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS stock_comments (
  id BIGINT PRIMARY KEY,
  comment TEXT NOT NULL,
  stock_id BIGINT NOT NULL REFERENCES stock_posts(id),
  user_id BIGINT NOT NULL REFERENCES users(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  deleted_at TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS stock_votes (
  id BIGINT PRIMARY KEY,
  "like" BOOLEAN NOT NULL DEFAULT false,
  hate BOOLEAN NOT NULL DEFAULT false,
  stock_id BIGINT NOT NULL REFERENCES stock_posts(id),
  user_id BIGINT NOT NULL REFERENCES users(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_stock_votes_stock_user ON stock_votes (stock_id, user_id);
CREATE INDEX IF NOT EXISTS idx_stock_posts_category ON stock_posts (stock_category_id);
CREATE INDEX IF NOT EXISTS idx_stock_comments_stock ON stock_comments (stock_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Categories returns the full category master.
func (r *StockRepo) Categories(ctx context.Context) ([]entity.Category, error) {
	const q = `SELECT id, name, show_name, path, user_id, created_at, updated_at, deleted_at
		FROM stock_categories WHERE deleted_at IS NULL ORDER BY id`
	out := []entity.Category{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryByName resolves a category from its URL name or sql.ErrNoRows.
func (r *StockRepo) CategoryByName(ctx context.Context, name string) (*entity.Category, error) {
	const q = `SELECT id, name, show_name, path, user_id, created_at, updated_at, deleted_at
		FROM stock_categories WHERE name=$1 AND deleted_at IS NULL`
	var row entity.Category
	if err := r.db.GetContext(ctx, &row, q, name); err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns the live posts of a category, newest first, with like and
// comment tallies.
func (r *StockRepo) List(ctx context.Context, categoryID int64) ([]entity.Summary, error) {
	const q = `
SELECT p.id, p.title, p.views, p.created_at,
       split_part(u.email, '@', 1) AS writer,
       COALESCE(v.like_cnt, 0) AS like_cnt,
       COALESCE(c.comment_cnt, 0) AS comment_cnt
  FROM stock_posts p
  JOIN users u ON p.user_id = u.id
  LEFT JOIN (
        SELECT stock_id, SUM(CASE WHEN "like" THEN 1 ELSE 0 END) AS like_cnt
          FROM stock_votes GROUP BY stock_id
       ) v ON v.stock_id = p.id
  LEFT JOIN (
        SELECT stock_id, COUNT(id) AS comment_cnt
          FROM stock_comments WHERE deleted_at IS NULL GROUP BY stock_id
       ) c ON c.stock_id = p.id
 WHERE p.stock_category_id = $1 AND p.deleted_at IS NULL
 ORDER BY p.id DESC`
	out := []entity.Summary{}
	if err := r.db.SelectContext(ctx, &out, q, categoryID); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single live post with all tallies or sql.ErrNoRows.
func (r *StockRepo) Get(ctx context.Context, id int64) (*entity.Detail, error) {
	const q = `
SELECT p.id, p.title, p.content, p.views,
       COALESCE(v.like_cnt, 0) AS like_cnt,
       COALESCE(v.hate_cnt, 0) AS hate_cnt,
       COALESCE(c.comment_cnt, 0) AS comment_cnt,
       p.created_at, p.updated_at,
       u.id AS writer_id,
       split_part(u.email, '@', 1) AS writer
  FROM stock_posts p
  JOIN users u ON p.user_id = u.id
  LEFT JOIN (
        SELECT stock_id,
               SUM(CASE WHEN "like" THEN 1 ELSE 0 END) AS like_cnt,
               SUM(CASE WHEN hate THEN 1 ELSE 0 END) AS hate_cnt
          FROM stock_votes GROUP BY stock_id
       ) v ON v.stock_id = p.id
  LEFT JOIN (
        SELECT stock_id, COUNT(id) AS comment_cnt
          FROM stock_comments WHERE deleted_at IS NULL GROUP BY stock_id
       ) c ON c.stock_id = p.id
 WHERE p.id = $1 AND p.deleted_at IS NULL`
	var row entity.Detail
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new post under a category.
func (r *StockRepo) Create(ctx context.Context, p *entity.Post) error {
	const q = `INSERT INTO stock_posts (id, title, content, user_id, stock_category_id)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, q, p.ID, p.Title, p.Content, p.UserID, p.CategoryID)
	return err
}

// Update replaces title and content of a post.
func (r *StockRepo) Update(ctx context.Context, id int64, title, content string) error {
	const q = `UPDATE stock_posts SET title=$2, content=$3, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, id, title, content)
	return err
}

// SoftDelete marks a post deleted.
func (r *StockRepo) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	const q = `UPDATE stock_posts SET deleted_at=$2, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, id, at)
	return err
}

// IncrementViews bumps the view counter by one.
func (r *StockRepo) IncrementViews(ctx context.Context, id int64) error {
	const q = `UPDATE stock_posts SET views = views + 1, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// Comments returns the live comments of a post, newest first.
func (r *StockRepo) Comments(ctx context.Context, stockID int64) ([]entity.Comment, error) {
	const q = `
SELECT c.id, c.comment, c.created_at, c.updated_at,
       u.id AS writer_id,
       split_part(u.email, '@', 1) AS writer
  FROM stock_comments c
  JOIN users u ON c.user_id = u.id
 WHERE c.stock_id = $1 AND c.deleted_at IS NULL
 ORDER BY c.id DESC`
	out := []entity.Comment{}
	if err := r.db.SelectContext(ctx, &out, q, stockID); err != nil {
		return nil, err
	}
	return out, nil
}

// GetComment returns the raw live comment row or sql.ErrNoRows.
func (r *StockRepo) GetComment(ctx context.Context, commentID int64) (*entity.CommentRow, error) {
	const q = `SELECT id, stock_id, user_id FROM stock_comments WHERE id=$1 AND deleted_at IS NULL`
	var row entity.CommentRow
	if err := r.db.GetContext(ctx, &row, q, commentID); err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateComment inserts a comment under a post.
func (r *StockRepo) CreateComment(ctx context.Context, id, stockID, userID int64, comment string) error {
	const q = `INSERT INTO stock_comments (id, comment, stock_id, user_id) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, q, id, comment, stockID, userID)
	return err
}

// UpdateComment replaces a comment's text.
func (r *StockRepo) UpdateComment(ctx context.Context, commentID int64, comment string) error {
	const q = `UPDATE stock_comments SET comment=$2, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, commentID, comment)
	return err
}

// SoftDeleteComment marks a comment deleted.
func (r *StockRepo) SoftDeleteComment(ctx context.Context, commentID int64, at time.Time) error {
	const q = `UPDATE stock_comments SET deleted_at=$2, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, commentID, at)
	return err
}

// Votes returns every vote row for a post.
func (r *StockRepo) Votes(ctx context.Context, stockID int64) ([]entity.Vote, error) {
	const q = `SELECT "like", hate, user_id FROM stock_votes WHERE stock_id=$1`
	out := []entity.Vote{}
	if err := r.db.SelectContext(ctx, &out, q, stockID); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertVote stores a user's like/hate state, one row per (post, user).
func (r *StockRepo) UpsertVote(ctx context.Context, id, stockID, userID int64, like, hate bool) error {
	const q = `INSERT INTO stock_votes (id, "like", hate, stock_id, user_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (stock_id, user_id) DO UPDATE
		SET "like" = EXCLUDED."like", hate = EXCLUDED.hate, updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, q, id, like, hate, stockID, userID)
	return err
}
