package finance

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestResolvesCurrencyCodes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	svc := NewService(sqlx.NewDb(db, "sqlmock"))

	mock.ExpectQuery("SELECT (.+) FROM currency_rates").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "currency_to", "currency_from", "inc_dec", "inc_dec_per", "price",
		}).AddRow(int64(9), "KRW", "USD", 3.5, 0.27, 1315.5).
			AddRow(int64(8), "JPY", "USD", -0.4, -0.3, 147.2))

	rates, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "KRW", rates[0].CurrencyTo)
	assert.Equal(t, "USD", rates[0].CurrencyFrom)
	assert.InDelta(t, 1315.5, rates[0].Price, 1e-9)
}
