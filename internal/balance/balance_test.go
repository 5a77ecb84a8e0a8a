package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetagent-dev/budgetagent/internal/format"
	"github.com/budgetagent-dev/budgetagent/internal/model"
)

func TestExtract_Nordea(t *testing.T) {
	ds := &model.Dataset{
		Columns: []string{"Bokföringsdag", "Belopp", "Rubrik", "Saldo", "Valuta"},
		Rows: [][]string{
			{"2025/10/20", "-3737,50", "Autogiro K*jb-bildemo", "5495,52", "SEK"},
			{"2025/10/21", "-500,00", "Swish betalning MICKES DÄCK", "4995,52", "SEK"},
		},
	}

	bal, ok := Extract(ds, format.Nordea)
	require.True(t, ok)
	// Last row in file order wins; no re-sorting by date.
	assert.Equal(t, "4995.52", bal.Amount.String())
	assert.Equal(t, "2025-10-21", bal.Date.Format("2006-01-02"))
	assert.Equal(t, "SEK", bal.Currency)
}

func TestExtract_NordeaLastRowOrderNotDateOrder(t *testing.T) {
	// Exports are assumed chronologically ordered; the extractor takes
	// the last row even when dates say otherwise.
	ds := &model.Dataset{
		Columns: []string{"Bokföringsdag", "Belopp", "Rubrik", "Saldo"},
		Rows: [][]string{
			{"2025-10-21", "-500,00", "Swish", "4995,52"},
			{"2025-10-01", "-100,00", "Bensin", "1000,00"},
		},
	}

	bal, ok := Extract(ds, format.Nordea)
	require.True(t, ok)
	assert.Equal(t, "1000", bal.Amount.String())
}

func TestExtract_NordeaCurrencySwapFallback(t *testing.T) {
	// Saldo holds the currency code; the real balance hides in an
	// unclaimed column and is found by scanning.
	ds := &model.Dataset{
		Columns: []string{"Bokföringsdag", "Belopp", "Rubrik", "Behållning", "Saldo", "Valuta"},
		Rows: [][]string{
			{"2025-10-21", "-500,00", "Swish", "4995,52", "SEK", ""},
		},
	}

	bal, ok := Extract(ds, format.Nordea)
	require.True(t, ok)
	assert.Equal(t, "4995.52", bal.Amount.String())
	assert.Equal(t, "SEK", bal.Currency)
}

func TestExtract_NordeaNoBalanceColumn(t *testing.T) {
	ds := &model.Dataset{
		Columns: []string{"Bokföringsdatum", "Belopp", "Rubrik", "Valuta"},
		Rows:    [][]string{{"2025-01-15", "-350.50", "Matinköp", "SEK"}},
	}

	_, ok := Extract(ds, format.Nordea)
	assert.False(t, ok)
}

func TestExtract_SEB(t *testing.T) {
	ds := &model.Dataset{
		Columns: []string{"Bokföringsdatum", "Text", "Belopp", "Saldo"},
		Rows: [][]string{
			{"2025-01-14", "Kortköp ICA", "-350,50", "12350,50"},
			{"2025-01-15", "Lön", "28000,00", "40350,50"},
		},
	}

	bal, ok := Extract(ds, format.SEB)
	require.True(t, ok)
	assert.Equal(t, "40350.5", bal.Amount.String())
	assert.Equal(t, "2025-01-15", bal.Date.Format("2006-01-02"))
	assert.Equal(t, "SEK", bal.Currency) // defaulted, no Valuta column
}

func TestExtract_SEBSkipsTrailingBlanks(t *testing.T) {
	ds := &model.Dataset{
		Columns: []string{"Bokföringsdatum", "Belopp", "Saldo"},
		Rows: [][]string{
			{"2025-01-14", "-1,00", "99,00"},
			{"", "", ""},
		},
	}

	bal, ok := Extract(ds, format.SEB)
	require.True(t, ok)
	assert.Equal(t, "99", bal.Amount.String())
}

func TestExtract_OtherFormatsCarryNone(t *testing.T) {
	ds := &model.Dataset{
		Columns: []string{"Datum", "Belopp", "Beskrivning"},
		Rows:    [][]string{{"2025-01-15", "-350,50", "ICA"}},
	}

	for _, tag := range []format.Tag{format.Swedbank, format.Revolut, format.Generic, format.Unknown} {
		_, ok := Extract(ds, tag)
		assert.False(t, ok, "tag %s", tag)
	}
}
