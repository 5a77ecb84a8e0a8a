// Package format classifies raw datasets into bank format tags by exact
// column-name overlap. The signal is a closed set of known export schemas,
// so detection is a prioritized rule chain, not a scoring model.
package format

import "strings"

// Tag names which bank's export schema a dataset matches.
type Tag string

const (
	Nordea   Tag = "nordea"
	Swedbank Tag = "swedbank"
	SEB      Tag = "seb"
	Revolut  Tag = "revolut"
	Generic  Tag = "generic"
	Unknown  Tag = "unknown"
)

// columnSet is a case-folded, trimmed set of column names.
type columnSet map[string]bool

func newColumnSet(columns []string) columnSet {
	s := make(columnSet, len(columns))
	for _, c := range columns {
		s[strings.ToLower(strings.TrimSpace(c))] = true
	}
	return s
}

func (s columnSet) has(name string) bool { return s[name] }

func (s columnSet) hasAny(names ...string) bool {
	for _, n := range names {
		if s[n] {
			return true
		}
	}
	return false
}

// Column-name vocabularies, all lower-cased.
var (
	nordeaDateColumns = []string{"bokföringsdag", "bokföringsdatum"}
	nordeaNameColumns = []string{"rubrik", "namn", "avsändare", "mottagare"}
	// Columns that, combined with a balance column, mark a layout as
	// unambiguously SEB rather than a Nordea variant.
	sebOnlyColumns    = []string{"verifikationsnummer", "textkod", "text"}
	dateLikeColumns   = []string{"datum", "date", "bokföringsdag", "bokföringsdatum", "transaktionsdatum", "valutadatum", "booking date", "completed date"}
	amountLikeColumns = []string{"belopp", "amount", "summa"}
)

// rule pairs a tag with its match predicate. Rules run in order and the
// first match wins: Nordea stays ahead of SEB because SEB's schema is a
// Nordea-like superset plus a mandatory balance column, and the Nordea
// predicate backs off from that combination explicitly.
type rule struct {
	tag   Tag
	match func(columnSet) bool
}

var rules = []rule{
	{Nordea, isNordea},
	{Swedbank, isSwedbank},
	{SEB, isSEB},
	{Revolut, isRevolut},
	{Generic, isGeneric},
}

// Detect maps a column-name set to a bank format tag. Unknown is a valid
// terminal value, not an error: downstream normalization degrades to a
// passthrough rather than guessing.
func Detect(columns []string) Tag {
	set := newColumnSet(columns)
	for _, r := range rules {
		if r.match(set) {
			return r.tag
		}
	}
	return Unknown
}

// isNordea casts the widest net because real Nordea exports vary: the
// balance column may be present or absent, and the description lives under
// Namn or Rubrik depending on export vintage.
func isNordea(s columnSet) bool {
	if !s.hasAny(nordeaDateColumns...) || !s.has("belopp") || !s.hasAny(nordeaNameColumns...) {
		return false
	}
	if s.has("saldo") && s.hasAny(sebOnlyColumns...) {
		return false
	}
	return true
}

func isSwedbank(s columnSet) bool {
	return s.has("datum") && s.has("belopp") && s.has("beskrivning")
}

func isSEB(s columnSet) bool {
	return s.has("bokföringsdatum") && s.has("saldo")
}

func isRevolut(s columnSet) bool {
	if s.has("completed date") {
		return true
	}
	return s.has("description") && s.has("amount") && s.has("currency")
}

func isGeneric(s columnSet) bool {
	return s.hasAny(dateLikeColumns...) && s.hasAny(amountLikeColumns...)
}
