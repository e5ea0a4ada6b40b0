package notice

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(sqlx.NewDb(db, "sqlmock")), mock
}

var detailRows = []string{
	"id", "title", "content", "views", "like_cnt", "hate_cnt",
	"created_at", "updated_at", "writer_id", "user_name",
}

func TestGetNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM notices").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(detailRows))

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAggregatesVotes(t *testing.T) {
	svc, mock := newTestService(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM notices").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(detailRows).
			AddRow(int64(7), "hello", "body", 3, 2, 1, now, now, int64(42), "alice"))

	d, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), d.ID)
	assert.Equal(t, 2, d.LikeCount)
	assert.Equal(t, 1, d.HateCount)
	assert.Equal(t, int64(42), d.WriterID)
	assert.Equal(t, "alice", d.UserName)
}

func TestCreateReturnsDetail(t *testing.T) {
	svc, mock := newTestService(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO notices").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM notices").
		WillReturnRows(sqlmock.NewRows(detailRows).
			AddRow(int64(1), "hello", "body", 0, 0, 0, now, now, int64(42), "alice"))

	d, err := svc.Create(context.Background(), 42, "hello", "body")
	require.NoError(t, err)
	assert.Equal(t, "hello", d.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCommentReturnsList(t *testing.T) {
	svc, mock := newTestService(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO notice_comments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM notice_comments").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "comment", "created_at", "updated_at", "user_id", "user_name",
		}).AddRow(int64(2), "second", now, now, int64(42), "alice").
			AddRow(int64(1), "first", now, now, int64(42), "alice"))

	comments, err := svc.CreateComment(context.Background(), 7, 42, "second")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Comment)
}

func TestVoteUpsertsAndReturnsTally(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("INSERT INTO notice_votes").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "like", hate FROM notice_votes`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"like", "hate"}).
			AddRow(true, false).
			AddRow(false, true))

	votes, err := svc.Vote(context.Background(), 7, 42, true, false)
	require.NoError(t, err)
	assert.Len(t, votes, 2)
}
