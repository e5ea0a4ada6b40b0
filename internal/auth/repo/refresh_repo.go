package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/finboard/service-api-go/internal/auth/entity"
)

// RefreshRepo persists the latest issued refresh token per username. There is
// at most one live refresh token per identity; issuing a new one overwrites
// the previous row.
type RefreshRepo struct {
	db *sqlx.DB
}

func NewRefreshRepo(db *sqlx.DB) *RefreshRepo { return &RefreshRepo{db: db} }

// EnsureTable creates the refresh token table if not exists (idempotent).
func (r *RefreshRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS user_refresh_tokens (
  username TEXT PRIMARY KEY,
  refresh_token TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Upsert stores the current refresh token for a username, overwriting any
// prior token.
func (r *RefreshRepo) Upsert(ctx context.Context, username, token string) error {
	const q = `INSERT INTO user_refresh_tokens (username, refresh_token)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE
		SET refresh_token = EXCLUDED.refresh_token, updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, q, username, token)
	return err
}

// Get returns the live refresh token record for a username or sql.ErrNoRows.
func (r *RefreshRepo) Get(ctx context.Context, username string) (*entity.RefreshToken, error) {
	const q = `SELECT username, refresh_token, created_at, updated_at
		FROM user_refresh_tokens WHERE username=$1`
	var row entity.RefreshToken
	if err := r.db.GetContext(ctx, &row, q, username); err != nil {
		return nil, err
	}
	return &row, nil
}
