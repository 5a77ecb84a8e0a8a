package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTransaction(t *testing.T) {
	txn, err := NewTransaction(date(2025, 11, 15), decimal.RequireFromString("-350.50"), "ICA Maxi Linköping", "SEK")
	require.NoError(t, err)
	assert.Equal(t, "-350.50", txn.Amount.StringFixed(2))
	assert.Equal(t, "ICA Maxi Linköping", txn.Description)
	assert.Equal(t, "SEK", txn.Currency)
	assert.NotNil(t, txn.Metadata)
}

func TestNewTransaction_ZeroAmountRejected(t *testing.T) {
	_, err := NewTransaction(date(2025, 1, 1), decimal.Zero, "noop", "SEK")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrZeroAmount)

	// "0.00" is still zero.
	_, err = NewTransaction(date(2025, 1, 1), decimal.RequireFromString("0.00"), "noop", "SEK")
	assert.ErrorIs(t, err, ErrZeroAmount)
}

func TestNewTransaction_DefaultCurrency(t *testing.T) {
	txn, err := NewTransaction(date(2025, 1, 1), decimal.NewFromInt(100), "x", "")
	require.NoError(t, err)
	assert.Equal(t, "SEK", txn.Currency)
}

func TestDataset_ColumnIndex(t *testing.T) {
	ds := &Dataset{Columns: []string{"Bokföringsdag", " Belopp ", "Rubrik"}}

	assert.Equal(t, 0, ds.ColumnIndex("bokföringsdag"))
	assert.Equal(t, 1, ds.ColumnIndex("Belopp"))
	assert.Equal(t, 2, ds.ColumnIndex("RUBRIK"))
	assert.Equal(t, -1, ds.ColumnIndex("saldo"))
}

func TestDataset_CellRagged(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"a", "b", "c"},
		Rows:    [][]string{{"1", "2"}},
	}

	assert.Equal(t, "2", ds.Cell(0, 1))
	assert.Equal(t, "", ds.Cell(0, 2))
	assert.Equal(t, "", ds.Cell(5, 0))
	assert.Equal(t, "", ds.Cell(0, -1))
}

func TestDataset_RowEmpty(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{" ", ""}, {"", "x"}},
	}

	assert.True(t, ds.RowEmpty(0))
	assert.False(t, ds.RowEmpty(1))
}

func TestAccount_Hashes(t *testing.T) {
	a := NewAccount("PERSONKONTO 1234", "1234")
	assert.False(t, a.HasHash("abc"))
	a.AddHash("abc")
	assert.True(t, a.HasHash("abc"))
}

func TestAccount_Files(t *testing.T) {
	a := NewAccount("PERSONKONTO 1234", "")
	a.ImportedFiles = append(a.ImportedFiles, ImportedFileRecord{
		Filename: "export.csv",
		Checksum: "deadbeef",
	})

	assert.True(t, a.HasFile("export.csv"))
	assert.False(t, a.HasFile("other.csv"))
	assert.True(t, a.HasChecksum("deadbeef"))
	assert.False(t, a.HasChecksum("cafebabe"))
}
