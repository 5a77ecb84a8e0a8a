package checksum

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetagent-dev/budgetagent/internal/model"
)

func txn(t *testing.T, day, amount, desc, currency string) model.Transaction {
	t.Helper()
	date, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)
	tx, err := model.NewTransaction(date, decimal.RequireFromString(amount), desc, currency)
	require.NoError(t, err)
	return tx
}

func TestFile_StableAcrossCopies(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "original.csv")
	b := filepath.Join(dir, "renamed copy.csv")
	content := []byte("Datum;Belopp\n2025-01-15;-350,50\n")
	require.NoError(t, os.WriteFile(a, content, 0o644))
	require.NoError(t, os.WriteFile(b, content, 0o644))

	sumA, err := File(a)
	require.NoError(t, err)
	sumB, err := File(b)
	require.NoError(t, err)

	assert.Equal(t, sumA, sumB)
	assert.Len(t, sumA, 32) // md5 hex
}

func TestFile_DiffersOnContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(a, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("y"), 0o644))

	sumA, err := File(a)
	require.NoError(t, err)
	sumB, err := File(b)
	require.NoError(t, err)
	assert.NotEqual(t, sumA, sumB)
}

func TestFile_Missing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestTransaction_IgnoresCategoryAndMetadata(t *testing.T) {
	a := txn(t, "2025-01-15", "-350.50", "ICA Maxi", "SEK")
	b := txn(t, "2025-01-15", "-350.50", "ICA Maxi", "SEK")
	b.Category = "Mat"
	b.Metadata = map[string]string{"store": "ICA Maxi"}

	assert.Equal(t, Transaction(a), Transaction(b))
	assert.Len(t, Transaction(a), 64) // sha256 hex
}

func TestTransaction_SensitiveToEveryField(t *testing.T) {
	base := txn(t, "2025-01-15", "-350.50", "ICA Maxi", "SEK")

	oneCent := txn(t, "2025-01-15", "-350.51", "ICA Maxi", "SEK")
	assert.NotEqual(t, Transaction(base), Transaction(oneCent))

	whitespace := txn(t, "2025-01-15", "-350.50", "ICA  Maxi", "SEK")
	assert.NotEqual(t, Transaction(base), Transaction(whitespace))

	otherDay := txn(t, "2025-01-16", "-350.50", "ICA Maxi", "SEK")
	assert.NotEqual(t, Transaction(base), Transaction(otherDay))

	otherCurrency := txn(t, "2025-01-15", "-350.50", "ICA Maxi", "EUR")
	assert.NotEqual(t, Transaction(base), Transaction(otherCurrency))
}

func TestTransaction_CanonicalDecimalForm(t *testing.T) {
	// The canonical amount string trims trailing zeros, so numerically
	// equal amounts hash identically however the export formatted them.
	a := txn(t, "2025-01-15", "-350.50", "x", "SEK")
	b := txn(t, "2025-01-15", "-350.5", "x", "SEK")
	assert.Equal(t, Transaction(a), Transaction(b))
}
