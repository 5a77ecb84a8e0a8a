package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed whenever an import cannot resolve a currency.
const DefaultCurrency = "SEK"

// ErrZeroAmount is returned when constructing a transaction with amount 0.
// A zero amount signals a parse failure upstream, never a valid entry.
var ErrZeroAmount = errors.New("transaction amount cannot be zero")

// Transaction is one canonical bank transaction: the normalized form every
// supported export format is reduced to. Produced once by the import
// pipeline and immutable afterwards.
type Transaction struct {
	Date        time.Time
	Amount      decimal.Decimal // negative = expense, positive = income
	Description string
	Currency    string            // 3-letter code
	Category    string            // assigned by the categorizer downstream, never set here
	Metadata    map[string]string // opaque extras (store, location, ...)
}

// NewTransaction builds a Transaction, rejecting zero amounts and filling
// in the default currency.
func NewTransaction(date time.Time, amount decimal.Decimal, description, currency string) (Transaction, error) {
	if amount.IsZero() {
		return Transaction{}, ErrZeroAmount
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Transaction{
		Date:        date,
		Amount:      amount,
		Description: description,
		Currency:    currency,
		Metadata:    map[string]string{},
	}, nil
}
