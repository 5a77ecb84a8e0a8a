// Package balance recovers the statement balance a bank export reports, as
// opposed to one computed by summing transactions.
package balance

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetagent-dev/budgetagent/internal/format"
	"github.com/budgetagent-dev/budgetagent/internal/model"
	"github.com/budgetagent-dev/budgetagent/internal/normalize"
	"github.com/budgetagent-dev/budgetagent/internal/parse"
)

// Extract recovers (balance, as-of date, currency) from a raw,
// pre-normalization dataset, or reports absence. Only Nordea and SEB
// exports carry a usable balance; every other tag is absence by
// definition, never an error.
//
// "Most recent" means the last non-empty value in file row order: exports
// are assumed chronologically ordered and are not re-sorted by date.
func Extract(ds *model.Dataset, tag format.Tag) (model.Balance, bool) {
	switch tag {
	case format.Nordea:
		return extractNordea(ds)
	case format.SEB:
		return extractSEB(ds)
	default:
		return model.Balance{}, false
	}
}

func extractSEB(ds *model.Dataset) (model.Balance, bool) {
	amount, ok := lastDecimal(ds, ds.ColumnIndex("Saldo"))
	if !ok {
		return model.Balance{}, false
	}
	return model.Balance{
		Amount:   amount,
		Date:     lastDate(ds, ds.ColumnIndex("Bokföringsdatum")),
		Currency: lastCurrency(ds, ds.ColumnIndex("Valuta")),
	}, true
}

// extractNordea resolves the same currency/balance column swap the
// normalizer handles: when "Saldo" holds ISO codes the real balance has no
// trustworthy name, so unclaimed columns are scanned for one whose last
// non-empty value parses as a decimal.
func extractNordea(ds *model.Dataset) (model.Balance, bool) {
	dateIdx := ds.ColumnIndex("Bokföringsdag")
	if dateIdx < 0 {
		dateIdx = ds.ColumnIndex("Bokföringsdatum")
	}

	swap := normalize.NordeaUsesSaldoAsCurrency(ds)

	currencyIdx := ds.ColumnIndex("Valuta")
	if swap {
		currencyIdx = ds.ColumnIndex("Saldo")
	}

	var amount model.Balance
	amount.Date = lastDate(ds, dateIdx)
	amount.Currency = lastCurrency(ds, currencyIdx)

	if !swap {
		if a, ok := lastDecimal(ds, ds.ColumnIndex("Saldo")); ok {
			amount.Amount = a
			return amount, true
		}
	}

	// No column is identifiable by name; fall back to scanning columns
	// not already claimed by the canonical mapping.
	for i := range ds.Columns {
		if nordeaClaimed(ds.Columns[i]) || (swap && i == ds.ColumnIndex("Saldo")) {
			continue
		}
		if a, ok := lastDecimal(ds, i); ok {
			amount.Amount = a
			return amount, true
		}
	}
	return model.Balance{}, false
}

// nordeaClaimed reports whether a column name is already claimed by the
// Nordea canonical mapping and therefore cannot be the balance.
func nordeaClaimed(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bokföringsdag", "bokföringsdatum", "valutadatum",
		"belopp", "rubrik", "namn", "avsändare", "mottagare", "valuta":
		return true
	}
	return false
}

// lastDecimal returns the last non-empty value of the column in file row
// order, if it parses as a decimal.
func lastDecimal(ds *model.Dataset, idx int) (decimal.Decimal, bool) {
	v := lastNonEmpty(ds, idx)
	if v == "" {
		return decimal.Decimal{}, false
	}
	parsed, err := parse.Amount(v)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return parsed, true
}

func lastDate(ds *model.Dataset, idx int) time.Time {
	v := lastNonEmpty(ds, idx)
	if v == "" {
		return time.Time{}
	}
	t, err := parse.Date(v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func lastCurrency(ds *model.Dataset, idx int) string {
	if v := lastNonEmpty(ds, idx); v != "" && !strings.EqualFold(v, "nan") {
		return v
	}
	return model.DefaultCurrency
}

func lastNonEmpty(ds *model.Dataset, idx int) string {
	if idx < 0 {
		return ""
	}
	for r := len(ds.Rows) - 1; r >= 0; r-- {
		if v := ds.Cell(r, idx); v != "" {
			return v
		}
	}
	return ""
}
