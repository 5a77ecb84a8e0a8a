package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-15", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2025/10/21", time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)},
		{"2025-01-15 12:30:45", time.Date(2025, 1, 15, 12, 30, 45, 0, time.UTC)},
		{"21.10.2025", time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)},
		{" 2025-01-15 ", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := Date(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.True(t, got.Equal(tt.want), "input %q: got %v", tt.in, got)
	}
}

func TestDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "NOTADATE", "15 januari", "nan"} {
		_, err := Date(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestAmount_CommaDecimal(t *testing.T) {
	got, err := Amount("-3737,5")
	require.NoError(t, err)
	// Exact decimal, not a float approximation.
	assert.Equal(t, "-3737.5", got.String())

	got, err = Amount("-500,00")
	require.NoError(t, err)
	assert.Equal(t, "-500.00", got.StringFixed(2))
}

func TestAmount_DotDecimal(t *testing.T) {
	got, err := Amount("28000.00")
	require.NoError(t, err)
	assert.Equal(t, "28000.00", got.StringFixed(2))
}

func TestAmount_Spaces(t *testing.T) {
	got, err := Amount(" 4995,52 ")
	require.NoError(t, err)
	assert.Equal(t, "4995.52", got.String())
}

func TestAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "NOTANUMBER", "SEK"} {
		_, err := Amount(in)
		assert.Error(t, err, "input %q", in)
	}
}
