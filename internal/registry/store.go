// Package registry persists accounts and their import history as one YAML
// document mapping account name to account.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/budgetagent-dev/budgetagent/internal/checksum"
	"github.com/budgetagent-dev/budgetagent/internal/model"
)

const dateFormat = "2006-01-02"

// Store reads and writes the account registry at a fixed path. Every
// mutation is a full read-modify-write of the whole document with no
// locking: concurrent writers from separate processes may lose updates.
// Acceptable for a single-user tool; any multi-process deployment needs a
// different discipline.
type Store struct {
	path string
}

// NewStore creates a Store for the registry file at path. The file is
// created lazily on first save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the registry file path.
func (s *Store) Path() string { return s.path }

// Load reads all accounts. A missing file is an empty registry, not an
// error.
func (s *Store) Load() (map[string]*model.Account, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]*model.Account{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", s.path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", s.path, err)
	}

	accounts := make(map[string]*model.Account, len(doc.Accounts))
	for name, ya := range doc.Accounts {
		acct, err := ya.toModel(name)
		if err != nil {
			return nil, fmt.Errorf("registry %s: account %q: %w", s.path, name, err)
		}
		accounts[name] = acct
	}
	return accounts, nil
}

// Save writes all accounts, replacing the document.
func (s *Store) Save(accounts map[string]*model.Account) error {
	doc := document{Accounts: make(map[string]*yamlAccount, len(accounts))}
	for name, acct := range accounts {
		doc.Accounts[name] = fromModel(acct)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating registry dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing registry %s: %w", s.path, err)
	}
	return nil
}

// GetOrCreate returns the account with the given derived name, creating
// and persisting a fresh one when it does not exist yet.
func (s *Store) GetOrCreate(name, number string) (*model.Account, error) {
	accounts, err := s.Load()
	if err != nil {
		return nil, err
	}
	if acct, ok := accounts[name]; ok {
		return acct, nil
	}

	acct := model.NewAccount(name, number)
	accounts[name] = acct
	if err := s.Save(accounts); err != nil {
		return nil, err
	}
	return acct, nil
}

// IsFileImported reports whether the account already recorded this file,
// by basename or by whole-file checksum, so renamed re-exports are still
// caught. An unreadable file only disables the checksum check.
func (s *Store) IsFileImported(accountName, path string) (bool, error) {
	accounts, err := s.Load()
	if err != nil {
		return false, err
	}
	acct, ok := accounts[accountName]
	if !ok {
		return false, nil
	}

	if acct.HasFile(filepath.Base(path)) {
		return true, nil
	}
	if sum, err := checksum.File(path); err == nil && acct.HasChecksum(sum) {
		return true, nil
	}
	return false, nil
}

// IsDuplicate reports whether the transaction's content hash is already
// registered for the account.
func (s *Store) IsDuplicate(accountName string, txn model.Transaction) (bool, error) {
	accounts, err := s.Load()
	if err != nil {
		return false, err
	}
	acct := accounts[accountName]
	return acct != nil && acct.HasHash(checksum.Transaction(txn)), nil
}

// FilterDuplicates partitions transactions into new and already-seen
// against the account's hash set. An unknown account has seen nothing.
func (s *Store) FilterDuplicates(accountName string, txns []model.Transaction) (newTxns, duplicates []model.Transaction, err error) {
	accounts, err := s.Load()
	if err != nil {
		return nil, nil, err
	}
	acct := accounts[accountName]

	for _, txn := range txns {
		if acct != nil && acct.HasHash(checksum.Transaction(txn)) {
			duplicates = append(duplicates, txn)
		} else {
			newTxns = append(newTxns, txn)
		}
	}
	return newTxns, duplicates, nil
}

// RegisterTransactions unions the transactions' hashes into the account
// with a single save.
func (s *Store) RegisterTransactions(accountName string, txns []model.Transaction) error {
	return s.mutate(accountName, func(acct *model.Account) {
		for _, txn := range txns {
			acct.AddHash(checksum.Transaction(txn))
		}
	})
}

// AddImportedFile records path as imported for the account and bumps the
// last import date. A checksum failure degrades to "unknown" rather than
// blocking the record.
func (s *Store) AddImportedFile(accountName, path string) error {
	sum, err := checksum.File(path)
	if err != nil {
		sum = "unknown"
	}
	return s.mutate(accountName, func(acct *model.Account) {
		now := time.Now()
		acct.ImportedFiles = append(acct.ImportedFiles, model.ImportedFileRecord{
			Filename:   filepath.Base(path),
			Checksum:   sum,
			ImportDate: now,
		})
		acct.LastImportDate = now
	})
}

// UpdateBalance overwrites the account's statement balance.
func (s *Store) UpdateBalance(accountName string, bal model.Balance) error {
	if bal.Currency == "" {
		bal.Currency = model.DefaultCurrency
	}
	return s.mutate(accountName, func(acct *model.Account) {
		acct.Balance = &bal
	})
}

// CommitImport applies the whole outcome of one import in a single
// read-modify-write: unions the new transaction hashes, appends the
// imported-file record, and overwrites the statement balance when the file
// carried one.
func (s *Store) CommitImport(accountName, accountNumber, path string, txns []model.Transaction, bal *model.Balance) error {
	sum, err := checksum.File(path)
	if err != nil {
		sum = "unknown"
	}
	return s.mutateWithNumber(accountName, accountNumber, func(acct *model.Account) {
		for _, txn := range txns {
			acct.AddHash(checksum.Transaction(txn))
		}
		now := time.Now()
		acct.ImportedFiles = append(acct.ImportedFiles, model.ImportedFileRecord{
			Filename:   filepath.Base(path),
			Checksum:   sum,
			ImportDate: now,
		})
		acct.LastImportDate = now
		if bal != nil {
			b := *bal
			if b.Currency == "" {
				b.Currency = model.DefaultCurrency
			}
			acct.Balance = &b
		}
	})
}

// DeleteImportedFile removes the file record with the given basename from
// the account's history. It deliberately does not retract the transaction
// hashes that file contributed: re-importing the "removed" file still
// yields zero new transactions.
func (s *Store) DeleteImportedFile(accountName, filename string) (bool, error) {
	accounts, err := s.Load()
	if err != nil {
		return false, err
	}
	acct, ok := accounts[accountName]
	if !ok {
		return false, nil
	}

	kept := acct.ImportedFiles[:0]
	for _, f := range acct.ImportedFiles {
		if f.Filename != filename {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(acct.ImportedFiles) {
		return false, nil
	}
	acct.ImportedFiles = kept

	if err := s.Save(accounts); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAccount removes an account and all its history.
func (s *Store) DeleteAccount(name string) (bool, error) {
	accounts, err := s.Load()
	if err != nil {
		return false, err
	}
	if _, ok := accounts[name]; !ok {
		return false, nil
	}
	delete(accounts, name)

	if err := s.Save(accounts); err != nil {
		return false, err
	}
	return true, nil
}

// ClearAll wipes the registry. Meant for tests and starting over.
func (s *Store) ClearAll() error {
	return s.Save(map[string]*model.Account{})
}

// mutate loads, applies fn to the named account (creating it if needed),
// and saves.
func (s *Store) mutate(accountName string, fn func(*model.Account)) error {
	return s.mutateWithNumber(accountName, "", fn)
}

func (s *Store) mutateWithNumber(accountName, accountNumber string, fn func(*model.Account)) error {
	accounts, err := s.Load()
	if err != nil {
		return err
	}
	acct, ok := accounts[accountName]
	if !ok {
		acct = model.NewAccount(accountName, accountNumber)
		accounts[accountName] = acct
	}
	fn(acct)
	return s.Save(accounts)
}

// document mirrors the on-disk YAML shape. Dates are ISO-8601 strings and
// the balance is a decimal-valued string, never a binary float.
type document struct {
	Accounts map[string]*yamlAccount `yaml:"accounts"`
}

type yamlAccount struct {
	AccountName       string     `yaml:"account_name"`
	AccountNumber     string     `yaml:"account_number,omitempty"`
	ImportedFiles     []yamlFile `yaml:"imported_files"`
	LastImportDate    string     `yaml:"last_import_date,omitempty"`
	TransactionHashes []string   `yaml:"transaction_hashes"`
	CurrentBalance    string     `yaml:"current_balance,omitempty"`
	BalanceDate       string     `yaml:"balance_date,omitempty"`
	BalanceCurrency   string     `yaml:"balance_currency"`
}

type yamlFile struct {
	Filename   string `yaml:"filename"`
	Checksum   string `yaml:"checksum"`
	ImportDate string `yaml:"import_date"`
}

func fromModel(acct *model.Account) *yamlAccount {
	ya := &yamlAccount{
		AccountName:       acct.AccountName,
		AccountNumber:     acct.AccountNumber,
		ImportedFiles:     make([]yamlFile, 0, len(acct.ImportedFiles)),
		TransactionHashes: make([]string, 0, len(acct.TransactionHashes)),
		BalanceCurrency:   model.DefaultCurrency,
	}
	for _, f := range acct.ImportedFiles {
		ya.ImportedFiles = append(ya.ImportedFiles, yamlFile{
			Filename:   f.Filename,
			Checksum:   f.Checksum,
			ImportDate: f.ImportDate.Format(time.RFC3339),
		})
	}
	if !acct.LastImportDate.IsZero() {
		ya.LastImportDate = acct.LastImportDate.Format(time.RFC3339)
	}
	// The hash set serializes sorted so the document is stable across
	// saves and diffs cleanly under version control.
	for h := range acct.TransactionHashes {
		ya.TransactionHashes = append(ya.TransactionHashes, h)
	}
	sort.Strings(ya.TransactionHashes)

	if acct.Balance != nil {
		ya.CurrentBalance = acct.Balance.Amount.String()
		if !acct.Balance.Date.IsZero() {
			ya.BalanceDate = acct.Balance.Date.Format(dateFormat)
		}
		ya.BalanceCurrency = acct.Balance.Currency
	}
	return ya
}

func (ya *yamlAccount) toModel(name string) (*model.Account, error) {
	acct := model.NewAccount(name, ya.AccountNumber)
	if ya.AccountName != "" {
		acct.AccountName = ya.AccountName
	}

	for _, f := range ya.ImportedFiles {
		rec := model.ImportedFileRecord{Filename: f.Filename, Checksum: f.Checksum}
		if f.ImportDate != "" {
			t, err := time.Parse(time.RFC3339, f.ImportDate)
			if err != nil {
				return nil, fmt.Errorf("file %s: parsing import_date: %w", f.Filename, err)
			}
			rec.ImportDate = t
		}
		acct.ImportedFiles = append(acct.ImportedFiles, rec)
	}

	if ya.LastImportDate != "" {
		t, err := time.Parse(time.RFC3339, ya.LastImportDate)
		if err != nil {
			return nil, fmt.Errorf("parsing last_import_date: %w", err)
		}
		acct.LastImportDate = t
	}

	for _, h := range ya.TransactionHashes {
		acct.AddHash(h)
	}

	if ya.CurrentBalance != "" {
		amount, err := decimal.NewFromString(ya.CurrentBalance)
		if err != nil {
			return nil, fmt.Errorf("parsing current_balance %q: %w", ya.CurrentBalance, err)
		}
		bal := &model.Balance{Amount: amount, Currency: ya.BalanceCurrency}
		if bal.Currency == "" {
			bal.Currency = model.DefaultCurrency
		}
		if ya.BalanceDate != "" {
			t, err := time.Parse(dateFormat, ya.BalanceDate)
			if err != nil {
				return nil, fmt.Errorf("parsing balance_date %q: %w", ya.BalanceDate, err)
			}
			bal.Date = t
		}
		acct.Balance = bal
	}
	return acct, nil
}
