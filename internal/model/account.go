package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportedFileRecord records one successfully imported statement file.
// Created once per non-duplicate import, never mutated.
type ImportedFileRecord struct {
	Filename   string // basename only
	Checksum   string // whole-file MD5, hex
	ImportDate time.Time
}

// Balance is the balance a statement file reports, as opposed to one
// computed by summing transactions.
type Balance struct {
	Amount   decimal.Decimal
	Date     time.Time
	Currency string
}

// Account tracks everything ever imported under one derived account name.
// The name is the sole identity key: two files whose derived names match
// belong to the same account regardless of literal filename differences.
type Account struct {
	AccountName    string
	AccountNumber  string // display only
	ImportedFiles  []ImportedFileRecord
	LastImportDate time.Time // zero = never imported

	// TransactionHashes is the sole source of truth for "seen before".
	// It only grows via import; deleting an imported file's record does
	// not retract the hashes it contributed.
	TransactionHashes map[string]struct{}

	// Balance from the most recent import that carried one, nil otherwise.
	Balance *Balance
}

// NewAccount creates an empty account for a derived name.
func NewAccount(name, number string) *Account {
	return &Account{
		AccountName:       name,
		AccountNumber:     number,
		TransactionHashes: map[string]struct{}{},
	}
}

// HasFile reports whether a file with this basename was already imported.
func (a *Account) HasFile(filename string) bool {
	for _, f := range a.ImportedFiles {
		if f.Filename == filename {
			return true
		}
	}
	return false
}

// HasChecksum reports whether a file with this content was already
// imported, whatever it was named at the time.
func (a *Account) HasChecksum(checksum string) bool {
	for _, f := range a.ImportedFiles {
		if f.Checksum == checksum {
			return true
		}
	}
	return false
}

// HasHash reports whether a transaction hash is already recorded.
func (a *Account) HasHash(hash string) bool {
	_, ok := a.TransactionHashes[hash]
	return ok
}

// AddHash records a transaction hash.
func (a *Account) AddHash(hash string) {
	a.TransactionHashes[hash] = struct{}{}
}
