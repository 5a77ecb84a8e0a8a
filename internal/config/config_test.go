package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("/data/budget")
	cfg.Import.DefaultCurrency = "EUR"
	cfg.Git.AutoCommit = false

	path := filepath.Join(t.TempDir(), Filename)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Data.Dir, got.Data.Dir)
	assert.Equal(t, cfg.Data.Registry, got.Data.Registry)
	assert.Equal(t, "EUR", got.Import.DefaultCurrency)
	assert.Equal(t, cfg.Import.CheckDuplicates, got.Import.CheckDuplicates)
	assert.False(t, got.Git.AutoCommit)
	assert.Equal(t, cfg.Git.AuthorName, got.Git.AuthorName)
	assert.Equal(t, cfg.Git.AuthorEmail, got.Git.AuthorEmail)
}

func TestDefaults(t *testing.T) {
	cfg := Default("/data/budget")

	assert.Equal(t, "/data/budget", cfg.Data.Dir)
	assert.Equal(t, "accounts.yaml", cfg.Data.Registry)
	assert.Equal(t, "SEK", cfg.Import.DefaultCurrency)
	assert.True(t, cfg.Import.CheckDuplicates)
	assert.True(t, cfg.Git.AutoCommit)
	assert.Equal(t, "BudgetAgent", cfg.Git.AuthorName)
	assert.Equal(t, "agent@budgetagent.dev", cfg.Git.AuthorEmail)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRegistryPath(t *testing.T) {
	cfg := Default("/data/budget")
	assert.Equal(t, filepath.Join("/data/budget", "accounts.yaml"), cfg.RegistryPath())

	cfg.Data.Registry = "/elsewhere/accounts.yaml"
	assert.Equal(t, "/elsewhere/accounts.yaml", cfg.RegistryPath())
}
