package repo

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/finboard/service-api-go/internal/notice/entity"
)

// NoticeRepo provides data access for the bulletin board tables using sqlx.
type NoticeRepo struct {
	db *sqlx.DB
}

func NewNoticeRepo(db *sqlx.DB) *NoticeRepo { return &NoticeRepo{db: db} }

// EnsureTables creates the board tables if they do not exist (idempotent).
func (r *NoticeRepo) EnsureTables(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS notices (
  id BIGINT PRIMARY KEY,
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  views INT NOT NULL DEFAULT 0,
  user_id BIGINT NOT NULL REFERENCES users(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  deleted_at TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS notice_comments (
  id BIGINT PRIMARY KEY,
  comment TEXT NOT NULL,
  notice_id BIGINT NOT NULL REFERENCES notices(id),
  user_id BIGINT NOT NULL REFERENCES users(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  deleted_at TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS notice_votes (
  id BIGINT PRIMARY KEY,
  "like" BOOLEAN NOT NULL DEFAULT false,
  hate BOOLEAN NOT NULL DEFAULT false,
  notice_id BIGINT NOT NULL REFERENCES notices(id),
  user_id BIGINT NOT NULL REFERENCES users(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_notice_votes_notice_user ON notice_votes (notice_id, user_id);
CREATE INDEX IF NOT EXISTS idx_notice_comments_notice ON notice_comments (notice_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// List returns every live post, newest first, with comment counts and writer
// display names.
func (r *NoticeRepo) List(ctx context.Context) ([]entity.Summary, error) {
	const q = `
SELECT n.id, n.title, n.views, n.created_at,
       split_part(u.email, '@', 1) AS user_name,
       COUNT(c.id) AS comment_cnt
  FROM notices n
  JOIN users u ON n.user_id = u.id
  LEFT JOIN notice_comments c ON c.notice_id = n.id AND c.deleted_at IS NULL
 WHERE n.deleted_at IS NULL
 GROUP BY n.id, n.title, n.views, n.created_at, u.email
 ORDER BY n.id DESC`
	out := []entity.Summary{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single live post with vote tallies or sql.ErrNoRows.
func (r *NoticeRepo) Get(ctx context.Context, id int64) (*entity.Detail, error) {
	const q = `
SELECT n.id, n.title, n.content, n.views,
       COALESCE(SUM(CASE WHEN v."like" THEN 1 ELSE 0 END), 0) AS like_cnt,
       COALESCE(SUM(CASE WHEN v.hate THEN 1 ELSE 0 END), 0) AS hate_cnt,
       n.created_at, n.updated_at,
       u.id AS writer_id,
       split_part(u.email, '@', 1) AS user_name
  FROM notices n
  JOIN users u ON n.user_id = u.id
  LEFT JOIN notice_votes v ON v.notice_id = n.id
 WHERE n.id = $1 AND n.deleted_at IS NULL
 GROUP BY n.id, n.title, n.content, n.views, n.created_at, n.updated_at, u.id, u.email`
	var row entity.Detail
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new post.
func (r *NoticeRepo) Create(ctx context.Context, n *entity.Notice) error {
	const q = `INSERT INTO notices (id, title, content, user_id) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, q, n.ID, n.Title, n.Content, n.UserID)
	return err
}

// Update replaces title and content of a post.
func (r *NoticeRepo) Update(ctx context.Context, id int64, title, content string) error {
	const q = `UPDATE notices SET title=$2, content=$3, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, id, title, content)
	return err
}

// SoftDelete marks a post deleted.
func (r *NoticeRepo) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	const q = `UPDATE notices SET deleted_at=$2, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, id, at)
	return err
}

// IncrementViews bumps the view counter by one.
func (r *NoticeRepo) IncrementViews(ctx context.Context, id int64) error {
	const q = `UPDATE notices SET views = views + 1, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// Comments returns the live comments of a post, newest first.
func (r *NoticeRepo) Comments(ctx context.Context, noticeID int64) ([]entity.Comment, error) {
	const q = `
SELECT c.id, c.comment, c.created_at, c.updated_at,
       u.id AS user_id,
       split_part(u.email, '@', 1) AS user_name
  FROM notice_comments c
  JOIN users u ON c.user_id = u.id
 WHERE c.notice_id = $1 AND c.deleted_at IS NULL
 ORDER BY c.id DESC`
	out := []entity.Comment{}
	if err := r.db.SelectContext(ctx, &out, q, noticeID); err != nil {
		return nil, err
	}
	return out, nil
}

// GetComment returns the raw live comment row or sql.ErrNoRows.
func (r *NoticeRepo) GetComment(ctx context.Context, commentID int64) (*entity.CommentRow, error) {
	const q = `SELECT id, notice_id, user_id FROM notice_comments WHERE id=$1 AND deleted_at IS NULL`
	var row entity.CommentRow
	if err := r.db.GetContext(ctx, &row, q, commentID); err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateComment inserts a comment under a post.
func (r *NoticeRepo) CreateComment(ctx context.Context, id, noticeID, userID int64, comment string) error {
	const q = `INSERT INTO notice_comments (id, comment, notice_id, user_id) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, q, id, comment, noticeID, userID)
	return err
}

// UpdateComment replaces a comment's text.
func (r *NoticeRepo) UpdateComment(ctx context.Context, commentID int64, comment string) error {
	const q = `UPDATE notice_comments SET comment=$2, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, commentID, comment)
	return err
}

// SoftDeleteComment marks a comment deleted.
func (r *NoticeRepo) SoftDeleteComment(ctx context.Context, commentID int64, at time.Time) error {
	const q = `UPDATE notice_comments SET deleted_at=$2, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, commentID, at)
	return err
}

// Votes returns every vote row for a post.
func (r *NoticeRepo) Votes(ctx context.Context, noticeID int64) ([]entity.Vote, error) {
	const q = `SELECT "like", hate FROM notice_votes WHERE notice_id=$1`
	out := []entity.Vote{}
	if err := r.db.SelectContext(ctx, &out, q, noticeID); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertVote stores a user's like/hate state for a post, one row per
// (notice, user).
func (r *NoticeRepo) UpsertVote(ctx context.Context, id, noticeID, userID int64, like, hate bool) error {
	const q = `INSERT INTO notice_votes (id, "like", hate, notice_id, user_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (notice_id, user_id) DO UPDATE
		SET "like" = EXCLUDED."like", hate = EXCLUDED.hate, updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, q, id, like, hate, noticeID, userID)
	return err
}
