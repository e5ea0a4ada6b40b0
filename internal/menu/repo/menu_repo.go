package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/finboard/service-api-go/internal/menu/entity"
)

// MenuRepo provides data access for the navigation menu tables using sqlx.
type MenuRepo struct {
	db *sqlx.DB
}

func NewMenuRepo(db *sqlx.DB) *MenuRepo { return &MenuRepo{db: db} }

// EnsureTables creates the menu tables if they do not exist (idempotent).
func (r *MenuRepo) EnsureTables(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS menus (
  id BIGINT PRIMARY KEY,
  name TEXT NOT NULL,
  name_sub TEXT NOT NULL DEFAULT '',
  path TEXT NOT NULL DEFAULT '',
  show_order INT NOT NULL DEFAULT 0,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  deleted_at TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS sub_menus (
  id BIGINT PRIMARY KEY,
  menu_id BIGINT NOT NULL REFERENCES menus(id),
  name TEXT NOT NULL,
  name_sub TEXT NOT NULL DEFAULT '',
  path TEXT NOT NULL DEFAULT '',
  show_order INT NOT NULL DEFAULT 0,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  deleted_at TIMESTAMPTZ
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Menus returns every top-level entry in display order.
func (r *MenuRepo) Menus(ctx context.Context) ([]entity.Menu, error) {
	const q = `SELECT id, name, name_sub, path, show_order, created_at, updated_at
	  FROM menus WHERE deleted_at IS NULL ORDER BY show_order`
	out := []entity.Menu{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// SubMenus returns the entries under one menu in display order.
func (r *MenuRepo) SubMenus(ctx context.Context, menuID int64) ([]entity.SubMenu, error) {
	const q = `SELECT id, menu_id, name, name_sub, path, show_order, created_at, updated_at
	  FROM sub_menus WHERE menu_id=$1 AND deleted_at IS NULL ORDER BY show_order`
	out := []entity.SubMenu{}
	if err := r.db.SelectContext(ctx, &out, q, menuID); err != nil {
		return nil, err
	}
	return out, nil
}
