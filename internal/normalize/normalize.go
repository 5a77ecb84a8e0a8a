// Package normalize projects raw bank datasets onto the canonical
// transaction columns: date, amount, description, currency. Columns absent
// from the source are omitted, never fabricated; a dataset that ends up
// without date or amount simply yields unparseable rows downstream.
package normalize

import (
	"strings"

	"github.com/budgetagent-dev/budgetagent/internal/format"
	"github.com/budgetagent-dev/budgetagent/internal/model"
)

// Canonical column names.
const (
	ColDate        = "date"
	ColAmount      = "amount"
	ColDescription = "description"
	ColCurrency    = "currency"
)

// mapping lists, per canonical column, the source columns to try in order.
type mapping struct {
	canonical string
	sources   []string
}

var swedbankMappings = []mapping{
	{ColDate, []string{"Datum", "Transaktionsdatum"}},
	{ColAmount, []string{"Belopp"}},
	{ColDescription, []string{"Beskrivning"}},
	{ColCurrency, []string{"Valuta"}},
}

var sebMappings = []mapping{
	{ColDate, []string{"Bokföringsdatum"}},
	{ColAmount, []string{"Belopp"}},
	{ColDescription, []string{"Text", "Rubrik", "Beskrivning"}},
	{ColCurrency, []string{"Valuta"}},
}

var revolutMappings = []mapping{
	{ColDate, []string{"Completed Date", "Started Date"}},
	{ColAmount, []string{"Amount"}},
	{ColDescription, []string{"Description"}},
	{ColCurrency, []string{"Currency"}},
}

var genericMappings = []mapping{
	{ColDate, []string{"date", "Datum", "Bokföringsdag", "Bokföringsdatum", "Transaktionsdatum", "Booking Date"}},
	{ColAmount, []string{"amount", "Belopp", "Summa"}},
	{ColDescription, []string{"description", "Beskrivning", "Text", "Rubrik", "Meddelande", "Specifikation"}},
	{ColCurrency, []string{"currency", "Valuta"}},
}

// Normalize returns a dataset containing only the canonical columns present
// in ds for the given format tag. Unknown passes the dataset through
// untouched. Never errors: currency resolution falls back to the SEK
// default downstream, everything else degrades to unparseable rows.
func Normalize(ds *model.Dataset, tag format.Tag) *model.Dataset {
	switch tag {
	case format.Nordea:
		return normalizeNordea(ds)
	case format.Swedbank:
		return project(ds, swedbankMappings)
	case format.SEB:
		return project(ds, sebMappings)
	case format.Revolut:
		return project(ds, revolutMappings)
	case format.Generic:
		return project(ds, genericMappings)
	default:
		return ds
	}
}

// project applies an ordered column mapping: for each canonical column the
// first present source wins.
func project(ds *model.Dataset, mappings []mapping) *model.Dataset {
	out := &model.Dataset{}
	var srcIdx []int
	for _, m := range mappings {
		for _, src := range m.sources {
			if i := ds.ColumnIndex(src); i >= 0 {
				out.Columns = append(out.Columns, m.canonical)
				srcIdx = append(srcIdx, i)
				break
			}
		}
	}

	for r := range ds.Rows {
		rec := make([]string, len(srcIdx))
		for j, i := range srcIdx {
			rec[j] = ds.Cell(r, i)
		}
		out.Rows = append(out.Rows, rec)
	}
	return out
}

// nordeaDescriptionPriority: a non-empty Rubrik beats Namn beats Avsändare
// beats Mottagare; empty preferred fields fall through per row.
var nordeaDescriptionPriority = []string{"Rubrik", "Namn", "Avsändare", "Mottagare"}

func normalizeNordea(ds *model.Dataset) *model.Dataset {
	dateIdx := firstColumnIndex(ds, "Bokföringsdag", "Bokföringsdatum")
	amountIdx := ds.ColumnIndex("Belopp")

	var descIdx []int
	for _, name := range nordeaDescriptionPriority {
		if i := ds.ColumnIndex(name); i >= 0 {
			descIdx = append(descIdx, i)
		}
	}

	currencyIdx := ds.ColumnIndex("Valuta")
	if NordeaUsesSaldoAsCurrency(ds) {
		currencyIdx = ds.ColumnIndex("Saldo")
	}

	out := &model.Dataset{}
	if dateIdx >= 0 {
		out.Columns = append(out.Columns, ColDate)
	}
	if amountIdx >= 0 {
		out.Columns = append(out.Columns, ColAmount)
	}
	if len(descIdx) > 0 {
		out.Columns = append(out.Columns, ColDescription)
	}
	if currencyIdx >= 0 {
		out.Columns = append(out.Columns, ColCurrency)
	}

	for r := range ds.Rows {
		var rec []string
		if dateIdx >= 0 {
			rec = append(rec, ds.Cell(r, dateIdx))
		}
		if amountIdx >= 0 {
			rec = append(rec, ds.Cell(r, amountIdx))
		}
		if len(descIdx) > 0 {
			rec = append(rec, firstNonEmpty(ds, r, descIdx))
		}
		if currencyIdx >= 0 {
			rec = append(rec, ds.Cell(r, currencyIdx))
		}
		out.Rows = append(out.Rows, rec)
	}
	return out
}

// NordeaUsesSaldoAsCurrency detects a quirk seen in real Nordea exports:
// the ISO currency code sits in a column literally named "Saldo" while the
// "Valuta" column is entirely empty. Detection samples the data rather
// than trusting names, and the balance extractor resolves the same swap.
func NordeaUsesSaldoAsCurrency(ds *model.Dataset) bool {
	saldoIdx := ds.ColumnIndex("Saldo")
	if saldoIdx < 0 {
		return false
	}
	if !columnEmpty(ds, ds.ColumnIndex("Valuta")) {
		return false
	}
	return columnHoldsCurrencyCodes(ds, saldoIdx)
}

func firstColumnIndex(ds *model.Dataset, names ...string) int {
	for _, n := range names {
		if i := ds.ColumnIndex(n); i >= 0 {
			return i
		}
	}
	return -1
}

func firstNonEmpty(ds *model.Dataset, row int, idx []int) string {
	for _, i := range idx {
		if v := ds.Cell(row, i); v != "" {
			return v
		}
	}
	return ""
}

// columnEmpty reports whether every value of the column is blank (or the
// column is absent). "nan" counts as blank; it leaks out of sloppy exports.
func columnEmpty(ds *model.Dataset, idx int) bool {
	if idx < 0 {
		return true
	}
	for r := range ds.Rows {
		v := ds.Cell(r, idx)
		if v != "" && !strings.EqualFold(v, "nan") {
			return false
		}
	}
	return true
}

// columnHoldsCurrencyCodes reports whether the column has at least one
// value and every non-empty value looks like a 3-letter ISO code.
func columnHoldsCurrencyCodes(ds *model.Dataset, idx int) bool {
	if idx < 0 {
		return false
	}
	seen := false
	for r := range ds.Rows {
		v := ds.Cell(r, idx)
		if v == "" {
			continue
		}
		if !isCurrencyCode(v) {
			return false
		}
		seen = true
	}
	return seen
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
