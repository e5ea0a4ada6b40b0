package menu

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeNestsSubMenus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	svc := NewService(sqlx.NewDb(db, "sqlmock"))
	now := time.Now().UTC()

	menuCols := []string{"id", "name", "name_sub", "path", "show_order", "created_at", "updated_at"}
	subCols := []string{"id", "menu_id", "name", "name_sub", "path", "show_order", "created_at", "updated_at"}

	mock.ExpectQuery("SELECT (.+) FROM menus").
		WillReturnRows(sqlmock.NewRows(menuCols).
			AddRow(int64(1), "Board", "board", "/notices", 1, now, now).
			AddRow(int64(2), "Finance", "finance", "/finance", 2, now, now))
	mock.ExpectQuery("SELECT (.+) FROM sub_menus").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(subCols).
			AddRow(int64(10), int64(1), "Notices", "notices", "/notices", 1, now, now))
	mock.ExpectQuery("SELECT (.+) FROM sub_menus").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(subCols))

	tree, err := svc.Tree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Board", tree[0].Name)
	require.Len(t, tree[0].Sub, 1)
	assert.Equal(t, "Notices", tree[0].Sub[0].Name)
	assert.Empty(t, tree[1].Sub)
	assert.NoError(t, mock.ExpectationsWereMet())
}
