package importer

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Bank exports are usually named "KONTONAMN - YYYY-MM-DD HH.MM.SS.csv".
// namedExportRe captures the account name before the first date stamp.
var (
	namedExportRe = regexp.MustCompile(`^(.+?)\s*-\s*\d{4}[-/]\d{2}[-/]\d{2}`)

	// A Swedish clearing-style account number: 4-2-5 digit groups joined
	// by spaces or hyphens, e.g. "1709 20 72840".
	accountNumberRe = regexp.MustCompile(`\d{4}[\s\-]\d{2}[\s\-]\d{5}`)

	trailingDateRe        = regexp.MustCompile(`\s*[-_]\s*\d{4}[-/]\d{2}[-/]\d{2}.*$`)
	trailingCompactDateRe = regexp.MustCompile(`\s*[-_]\s*\d{8}.*$`)
)

// AccountNameFromFilename derives a stable account name from an export
// filename. The same logical account must map to the same name regardless
// of when the export was taken, so date stamps are stripped and the text
// before them kept. Falls back to the whole stem when nothing matches.
func AccountNameFromFilename(path string) string {
	base := filepath.Base(path)
	stem := base
	if i := strings.LastIndex(base, "."); i > 0 {
		stem = base[:i]
	}

	if m := namedExportRe.FindStringSubmatch(stem); m != nil {
		return strings.TrimSpace(m[1])
	}

	// No date stamp; keep everything up to and including an account
	// number if one is present.
	if loc := accountNumberRe.FindStringIndex(stem); loc != nil {
		return strings.TrimSpace(stem[:loc[1]])
	}

	cleaned := trailingDateRe.ReplaceAllString(stem, "")
	cleaned = trailingCompactDateRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return stem
	}
	return cleaned
}

// AccountNumberFromName pulls the account number out of a derived account
// name, or returns "" when the name does not carry one.
func AccountNumberFromName(name string) string {
	return accountNumberRe.FindString(name)
}
