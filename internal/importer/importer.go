// Package importer orchestrates the import pipeline: load a bank export,
// detect its format, normalize it, parse rows into transactions, filter
// duplicates against the registry, and record the outcome.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/budgetagent-dev/budgetagent/internal/balance"
	"github.com/budgetagent-dev/budgetagent/internal/checksum"
	"github.com/budgetagent-dev/budgetagent/internal/format"
	"github.com/budgetagent-dev/budgetagent/internal/importlog"
	"github.com/budgetagent-dev/budgetagent/internal/loader"
	"github.com/budgetagent-dev/budgetagent/internal/model"
	"github.com/budgetagent-dev/budgetagent/internal/normalize"
	"github.com/budgetagent-dev/budgetagent/internal/parse"
	"github.com/budgetagent-dev/budgetagent/internal/registry"
)

// DefaultDescription stands in for rows whose description columns are all
// empty.
const DefaultDescription = "Transaktion"

// Result summarizes one import run.
type Result struct {
	Account      string
	Format       format.Tag
	Transactions []model.Transaction
	Duplicates   int
	SkippedFile  bool
	Balance      *model.Balance
}

// Service runs imports against a registry store.
type Service struct {
	store    *registry.Store
	dataDir  string
	currency string
	log      *logrus.Logger
}

// NewService creates an import service. currency is applied to rows whose
// source carries no currency column; empty means SEK.
func NewService(store *registry.Store, dataDir, currency string, log *logrus.Logger) *Service {
	if currency == "" {
		currency = model.DefaultCurrency
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{store: store, dataDir: dataDir, currency: currency, log: log}
}

// ImportAndParse runs the full pipeline for one export file.
//
// With checkDuplicates set, the run is recorded: already-imported files
// are skipped whole, previously seen transactions are filtered out, and
// the registry and audit log are updated. Without it, the file is parsed
// and returned with nothing persisted, which is what a dry run wants.
func (s *Service) ImportAndParse(path string, checkDuplicates bool) (*Result, error) {
	accountName := AccountNameFromFilename(path)
	accountNumber := AccountNumberFromName(accountName)

	res := &Result{Account: accountName}

	if checkDuplicates {
		imported, err := s.store.IsFileImported(accountName, path)
		if err != nil {
			return nil, fmt.Errorf("checking import history: %w", err)
		}
		if imported {
			s.log.WithFields(logrus.Fields{
				"account": accountName,
				"file":    filepath.Base(path),
			}).Info("file already imported, skipping")
			res.SkippedFile = true
			return res, nil
		}
	}

	ds, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	tag := format.Detect(ds.Columns)
	res.Format = tag
	s.log.WithFields(logrus.Fields{
		"file":   filepath.Base(path),
		"format": string(tag),
		"rows":   len(ds.Rows),
	}).Info("loaded bank export")

	// The balance lives in columns the normalizer drops, so it is
	// extracted from the raw dataset.
	if bal, ok := balance.Extract(ds, tag); ok {
		res.Balance = &bal
	}

	txns := s.parseRows(normalize.Normalize(ds, tag), filepath.Base(path))

	if !checkDuplicates {
		res.Transactions = txns
		return res, nil
	}

	newTxns, dups, err := s.store.FilterDuplicates(accountName, txns)
	if err != nil {
		return nil, fmt.Errorf("filtering duplicates: %w", err)
	}
	res.Transactions = newTxns
	res.Duplicates = len(dups)

	if err := s.store.CommitImport(accountName, accountNumber, path, newTxns, res.Balance); err != nil {
		return nil, fmt.Errorf("recording import: %w", err)
	}

	s.appendAuditLog(accountName, path, tag, len(newTxns), len(dups))

	s.log.WithFields(logrus.Fields{
		"account":    accountName,
		"new":        len(newTxns),
		"duplicates": len(dups),
	}).Info("import complete")
	return res, nil
}

// parseRows converts normalized rows to transactions. Rows that cannot be
// parsed are logged and dropped; one bad row never fails the file.
func (s *Service) parseRows(ds *model.Dataset, filename string) []model.Transaction {
	dateIdx := ds.ColumnIndex(normalize.ColDate)
	amountIdx := ds.ColumnIndex(normalize.ColAmount)
	descIdx := ds.ColumnIndex(normalize.ColDescription)
	currencyIdx := ds.ColumnIndex(normalize.ColCurrency)

	var txns []model.Transaction
	for r := range ds.Rows {
		if ds.RowEmpty(r) {
			continue
		}

		rowLog := s.log.WithFields(logrus.Fields{"file": filename, "row": r + 1})

		date, err := parse.Date(ds.Cell(r, dateIdx))
		if err != nil {
			rowLog.WithError(err).Warn("dropping row with unparseable date")
			continue
		}
		amount, err := parse.Amount(ds.Cell(r, amountIdx))
		if err != nil {
			rowLog.WithError(err).Warn("dropping row with unparseable amount")
			continue
		}

		desc := ds.Cell(r, descIdx)
		if desc == "" || strings.EqualFold(desc, "nan") {
			desc = DefaultDescription
		}
		currency := ds.Cell(r, currencyIdx)
		if currency == "" || strings.EqualFold(currency, "nan") {
			currency = s.currency
		}

		txn, err := model.NewTransaction(date, amount, desc, currency)
		if err != nil {
			rowLog.WithError(err).Warn("dropping row")
			continue
		}
		txns = append(txns, txn)
	}
	return txns
}

// appendAuditLog records the run in the CSV audit trail. Failures are
// logged and swallowed: the registry commit already succeeded and a lost
// audit row must not fail the import.
func (s *Service) appendAuditLog(accountName, path string, tag format.Tag, newCount, duplicates int) {
	sum, err := checksum.File(path)
	if err != nil {
		sum = "unknown"
	}
	entry := importlog.Entry{
		Timestamp:  time.Now(),
		Account:    accountName,
		Filename:   filepath.Base(path),
		Checksum:   sum,
		Format:     string(tag),
		NewCount:   newCount,
		Duplicates: duplicates,
	}
	if err := importlog.Append(s.dataDir, []importlog.Entry{entry}); err != nil {
		s.log.WithError(err).Warn("writing import log")
	}
}
