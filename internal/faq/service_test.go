package faq

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

var faqRows = []string{"id", "title", "content", "flg", "created_at", "updated_at"}

func TestCreateReturnsList(t *testing.T) {
	svc, mock := newTestService(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO faqs").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM faqs WHERE deleted_at IS NULL").
		WillReturnRows(sqlmock.NewRows(faqRows).
			AddRow(int64(2), "new question", "answer", true, now, now).
			AddRow(int64(1), "old question", "answer", true, now, now))

	items, err := svc.Create(context.Background(), "new question", "answer", true)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new question", items[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUnknown(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM faqs WHERE id=").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(faqRows))

	_, err := svc.Update(context.Background(), 99, "t", "c", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReturnsRemaining(t *testing.T) {
	svc, mock := newTestService(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM faqs WHERE id=").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(faqRows).
			AddRow(int64(1), "q", "a", true, now, now))
	mock.ExpectExec("UPDATE faqs SET deleted_at=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM faqs WHERE deleted_at IS NULL").
		WillReturnRows(sqlmock.NewRows(faqRows))

	items, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}
