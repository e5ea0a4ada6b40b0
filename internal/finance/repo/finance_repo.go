package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/finboard/service-api-go/internal/finance/entity"
)

// FinanceRepo provides data access for the exchange rate tables using sqlx.
type FinanceRepo struct {
	db *sqlx.DB
}

func NewFinanceRepo(db *sqlx.DB) *FinanceRepo { return &FinanceRepo{db: db} }

// EnsureTables creates the currency tables if they do not exist (idempotent).
func (r *FinanceRepo) EnsureTables(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS currencies (
  id BIGINT PRIMARY KEY,
  currency TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS currency_rates (
  id BIGINT PRIMARY KEY,
  currency_to BIGINT NOT NULL REFERENCES currencies(id),
  currency_from BIGINT NOT NULL REFERENCES currencies(id),
  inc_dec DOUBLE PRECISION NOT NULL DEFAULT 0,
  inc_dec_per DOUBLE PRECISION NOT NULL DEFAULT 0,
  price DOUBLE PRECISION NOT NULL DEFAULT 0,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_currency_rates_pair ON currency_rates (currency_to, currency_from);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Latest returns the newest rate row per (to, from) pair, currency ids
// resolved to their codes.
func (r *FinanceRepo) Latest(ctx context.Context) ([]entity.ExchangeRate, error) {
	const q = `
SELECT d.id,
       a.currency AS currency_to,
       b.currency AS currency_from,
       d.inc_dec, d.inc_dec_per, d.price
  FROM currency_rates d
  JOIN currencies a ON d.currency_to = a.id
  JOIN currencies b ON d.currency_from = b.id
  JOIN (SELECT currency_to, currency_from, MAX(id) AS id
          FROM currency_rates
         GROUP BY currency_to, currency_from) latest
    ON d.id = latest.id`
	out := []entity.ExchangeRate{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}
