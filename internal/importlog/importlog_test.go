package importlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 10, 21, 9, 39, 41, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:  testTime,
		Account:    "PERSONKONTO 1709 20 72840",
		Filename:   "PERSONKONTO 1709 20 72840 - 2025-10-21 09.39.41.csv",
		Checksum:   "d41d8cd98f00b204e9800998ecf8427e",
		Format:     "nordea",
		NewCount:   2,
		Duplicates: 0,
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, []Entry{testEntry()})
	require.NoError(t, err)

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "nordea", entries[0].Format)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.NewCount = 0
	e2.Duplicates = 2
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].NewCount)
	assert.Equal(t, 2, entries[1].Duplicates)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, original.Account, got.Account)
	assert.Equal(t, original.Filename, got.Filename)
	assert.Equal(t, original.Checksum, got.Checksum)
	assert.Equal(t, original.Format, got.Format)
	assert.Equal(t, original.NewCount, got.NewCount)
	assert.Equal(t, original.Duplicates, got.Duplicates)
}

func TestRead_NotFound(t *testing.T) {
	dir := t.TempDir()
	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, logFile), nil, 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_BadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"only", "three", "fields"})
	assert.Error(t, err)
}
