// Package parse converts loosely formatted bank cell values into exact Go
// types. Swedish exports mix comma and dot decimals and several date
// layouts; everything here is strict about the result but permissive about
// the input form.
package parse

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateFormats are tried in order. Bank exports in scope use ISO-ish dates,
// sometimes with slashes or a trailing time component.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006.01.02",
	"02.01.2006",
}

// Date parses a statement date cell.
func Date(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Amount parses an amount cell into an exact decimal, accepting either ","
// or "." as the decimal separator. Blind substitution is safe because the
// handled formats never use thousands separators. Spaces (including
// non-breaking ones) are stripped.
func Amount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unrecognized amount %q: %w", s, err)
	}
	return d, nil
}
