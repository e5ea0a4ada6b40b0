package entity

import "time"

// Menu is a top-level navigation entry.
type Menu struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	NameSub   string     `db:"name_sub" json:"name_sub"`
	Path      string     `db:"path" json:"path"`
	ShowOrder int        `db:"show_order" json:"show_order"`
	CreatedAt time.Time  `db:"created_at" json:"-"`
	UpdatedAt time.Time  `db:"updated_at" json:"-"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// SubMenu is a second-level entry under a Menu.
type SubMenu struct {
	ID        int64      `db:"id" json:"id"`
	MenuID    int64      `db:"menu_id" json:"-"`
	Name      string     `db:"name" json:"name"`
	NameSub   string     `db:"name_sub" json:"name_sub"`
	Path      string     `db:"path" json:"path"`
	ShowOrder int        `db:"show_order" json:"show_order"`
	CreatedAt time.Time  `db:"created_at" json:"-"`
	UpdatedAt time.Time  `db:"updated_at" json:"-"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// Tree is the nested shape the navigation endpoint returns.
type Tree struct {
	Name      string    `json:"name"`
	NameSub   string    `json:"name_sub"`
	Path      string    `json:"path"`
	ShowOrder int       `json:"show_order"`
	Sub       []SubMenu `json:"sub"`
}
