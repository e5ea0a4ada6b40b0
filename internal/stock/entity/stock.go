package entity

import "time"

// Category is a row of the stock category master; every post lives under one.
type Category struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	ShowName  string     `db:"show_name" json:"show_name"`
	Path      string     `db:"path" json:"path"`
	UserID    *int64     `db:"user_id" json:"-"`
	CreatedAt time.Time  `db:"created_at" json:"-"`
	UpdatedAt time.Time  `db:"updated_at" json:"-"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// Post is a discussion post row under a category.
type Post struct {
	ID         int64      `db:"id" json:"id"`
	Title      string     `db:"title" json:"title"`
	Content    string     `db:"content" json:"content"`
	Views      int        `db:"views" json:"views"`
	UserID     int64      `db:"user_id" json:"user_id"`
	CategoryID int64      `db:"stock_category_id" json:"stock_category_id"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at" json:"-"`
}

// Summary is the list projection with like and comment tallies.
type Summary struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Views        int       `db:"views" json:"views"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	Writer       string    `db:"writer" json:"writer"`
	LikeCount    int       `db:"like_cnt" json:"like_cnt"`
	CommentCount int       `db:"comment_cnt" json:"stock_comment_cnt"`
}

// Detail is the single-post projection.
type Detail struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Content      string    `db:"content" json:"content"`
	Views        int       `db:"views" json:"views"`
	LikeCount    int       `db:"like_cnt" json:"like_cnt"`
	HateCount    int       `db:"hate_cnt" json:"hate_cnt"`
	CommentCount int       `db:"comment_cnt" json:"stock_comment_cnt"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	WriterID     int64     `db:"writer_id" json:"writer_id"`
	Writer       string    `db:"writer" json:"writer"`
}

// Comment is the comment projection returned to clients.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	Comment   string    `db:"comment" json:"comment"`
	WriterID  int64     `db:"writer_id" json:"writer_id"`
	Writer    string    `db:"writer" json:"writer"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CommentRow is the raw comment row, used for ownership checks.
type CommentRow struct {
	ID      int64 `db:"id"`
	StockID int64 `db:"stock_id"`
	UserID  int64 `db:"user_id"`
}

// Vote is a single user's like/hate state for a post.
type Vote struct {
	Like   bool  `db:"like" json:"like"`
	Hate   bool  `db:"hate" json:"hate"`
	UserID int64 `db:"user_id" json:"user_id"`
}
