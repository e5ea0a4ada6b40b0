package entity

// ExchangeRate is the latest observation for one currency pair, with the
// currency ids resolved to their display codes.
type ExchangeRate struct {
	ID           int64   `db:"id" json:"id"`
	CurrencyTo   string  `db:"currency_to" json:"currency_to"`
	CurrencyFrom string  `db:"currency_from" json:"currency_from"`
	IncDec       float64 `db:"inc_dec" json:"inc_dec"`
	IncDecPer    float64 `db:"inc_dec_per" json:"inc_dec_per"`
	Price        float64 `db:"price" json:"price"`
}
