package entity

import "time"

// Notice is a bulletin board post row.
type Notice struct {
	ID        int64      `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Content   string     `db:"content" json:"content"`
	Views     int        `db:"views" json:"views"`
	UserID    int64      `db:"user_id" json:"user_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// Summary is the list projection: post metadata plus the live comment count
// and the writer's display name (local part of the email).
type Summary struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Views        int       `db:"views" json:"views"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UserName     string    `db:"user_name" json:"user_name"`
	CommentCount int       `db:"comment_cnt" json:"notice_comment_cnt"`
}

// Detail is the single-post projection with vote tallies.
type Detail struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Views     int       `db:"views" json:"views"`
	LikeCount int       `db:"like_cnt" json:"like_cnt"`
	HateCount int       `db:"hate_cnt" json:"hate_cnt"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	WriterID  int64     `db:"writer_id" json:"writer_id"`
	UserName  string    `db:"user_name" json:"user_name"`
}

// Comment is the comment projection returned to clients.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	Comment   string    `db:"comment" json:"comment"`
	UserID    int64     `db:"user_id" json:"user_id"`
	UserName  string    `db:"user_name" json:"user_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CommentRow is the raw comment row, used for ownership checks.
type CommentRow struct {
	ID       int64 `db:"id"`
	NoticeID int64 `db:"notice_id"`
	UserID   int64 `db:"user_id"`
}

// Vote is a single user's like/hate state for a post.
type Vote struct {
	Like bool `db:"like" json:"like"`
	Hate bool `db:"hate" json:"hate"`
}
