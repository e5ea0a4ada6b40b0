package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/finboard/service-api-go/internal/auth/entity"
)

// Duplicate-key failures surfaced from the unique constraints. The service
// maps these to its own error set; keeping them here avoids an import cycle.
var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
)

const uniqueViolation = "23505"

// UserRepo provides data access for the users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// EnsureTable creates the users table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
  id BIGINT PRIMARY KEY,
  username TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  first_name TEXT,
  last_name TEXT,
  zipcode TEXT,
  address1 TEXT,
  address2 TEXT,
  is_active BOOLEAN NOT NULL DEFAULT false,
  is_staff BOOLEAN NOT NULL DEFAULT false,
  auth_number TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  deleted_at TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username) WHERE deleted_at IS NULL;
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email) WHERE deleted_at IS NULL;
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

const userColumns = `id, username, email, password_hash, first_name, last_name,
	zipcode, address1, address2, is_active, is_staff, auth_number,
	created_at, updated_at, deleted_at`

// GetByUsername fetches a live user by username or sql.ErrNoRows.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE username=$1 AND deleted_at IS NULL`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, username); err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByEmail fetches a live user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email=$1 AND deleted_at IS NULL`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, email); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new user row. A unique-constraint violation comes back as
// ErrDuplicateUsername or ErrDuplicateEmail so the check-then-insert race
// still surfaces as a duplicate, not a generic failure.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const q = `INSERT INTO users (id, username, email, password_hash, first_name, last_name,
		zipcode, address1, address2, is_active, is_staff)
		VALUES (:id, :username, :email, :password_hash, :first_name, :last_name,
		:zipcode, :address1, :address2, :is_active, :is_staff)`
	if _, err := r.db.NamedExecContext(ctx, q, u); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			if strings.Contains(pqErr.Constraint, "email") {
				return ErrDuplicateEmail
			}
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// UpdateProfile updates the mutable profile fields of a user.
func (r *UserRepo) UpdateProfile(ctx context.Context, u *entity.User) error {
	const q = `UPDATE users SET first_name=:first_name, last_name=:last_name,
		zipcode=:zipcode, address1=:address1, address2=:address2, updated_at=NOW()
		WHERE username=:username AND deleted_at IS NULL`
	_, err := r.db.NamedExecContext(ctx, q, u)
	return err
}

// UpdatePassword replaces the stored hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, username, hash string) error {
	const q = `UPDATE users SET password_hash=$2, updated_at=NOW() WHERE username=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, username, hash)
	return err
}

// SetAuthNumber stores the one-time verification code for a password reset.
func (r *UserRepo) SetAuthNumber(ctx context.Context, email, code string) error {
	const q = `UPDATE users SET auth_number=$2, updated_at=NOW() WHERE email=$1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, email, code)
	return err
}

// GetByEmailAndAuthNumber matches the stored reset code against the
// submitted one.
func (r *UserRepo) GetByEmailAndAuthNumber(ctx context.Context, email, code string) (*entity.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users
		WHERE email=$1 AND auth_number=$2 AND deleted_at IS NULL`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, email, code); err != nil {
		return nil, err
	}
	return &row, nil
}
