// Package checksum produces the content digests behind both levels of
// import dedup: whole-file checksums and per-transaction identity hashes.
package checksum

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/budgetagent-dev/budgetagent/internal/model"
)

const hashDateFormat = "2006-01-02"

// File returns the MD5 digest of the file at path as a hex string,
// streamed so large statements don't load into memory. MD5 is deliberate:
// the threat model is accidental re-import of a renamed export, not
// tampering, and speed wins.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Transaction returns the SHA-256 identity hash of a transaction: the
// digest of date|amount|description|currency in canonical string form,
// with the amount's exact decimal representation. Category and metadata
// never participate. Two transactions are the same iff these four fields
// match exactly; a one-cent difference or any whitespace change in the
// description makes them distinct.
func Transaction(txn model.Transaction) string {
	key := fmt.Sprintf("%s|%s|%s|%s",
		txn.Date.Format(hashDateFormat),
		txn.Amount.String(),
		txn.Description,
		txn.Currency,
	)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
