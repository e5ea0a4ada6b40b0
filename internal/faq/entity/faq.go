package entity

import "time"

// Faq is a frequently-asked-question row. Flg toggles visibility on the
// front end without deleting the row.
type Faq struct {
	ID        int64      `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Content   string     `db:"content" json:"content"`
	Flg       bool       `db:"flg" json:"flg"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}
