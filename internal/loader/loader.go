// Package loader turns bank export files into raw datasets. It is
// deliberately tolerant about encodings and separators: real Swedish bank
// exports arrive as semicolon CSV with a UTF-8 BOM, tab-separated text,
// plain comma CSV, or Windows-1252 files, and nothing in the file says
// which.
package loader

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/budgetagent-dev/budgetagent/internal/model"
)

var (
	// ErrNotFound means the path does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrUnsupported means the file suffix is not a supported format.
	ErrUnsupported = errors.New("unsupported file format")
	// ErrParse means every parse attempt failed; it wraps the last
	// underlying cause.
	ErrParse = errors.New("unable to parse file")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvCandidate is one (separator, encoding) attempt in the CSV cascade.
// A zero separator means "sniff from the header line".
type csvCandidate struct {
	name   string
	sep    rune
	decode func([]byte) ([]byte, error) // nil = UTF-8 as-is
}

// csvCascade is tried in order; the first candidate yielding more than one
// column wins. A single resulting column is itself evidence of a wrong
// separator, so it counts as a failure.
var csvCascade = []csvCandidate{
	{name: "semicolon/utf-8", sep: ';'},
	{name: "tab/utf-8", sep: '\t'},
	{name: "comma/utf-8", sep: ','},
	{name: "sniffed/utf-8", sep: 0},
	{name: "semicolon/windows-1252", sep: ';', decode: decodeWindows1252},
	{name: "tab/windows-1252", sep: '\t', decode: decodeWindows1252},
}

// Load reads the file at path into a raw dataset whose header is the first
// line. Supported suffixes: .csv, .xlsx, .xls, .json.
func Load(path string) (*model.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx":
		return loadXLSX(path)
	case ".xls":
		return loadXLS(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(path))
	}
}

func loadCSV(path string) (*model.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var lastErr error
	for _, cand := range csvCascade {
		ds, err := tryCSV(data, cand)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", cand.name, err)
			continue
		}
		if len(ds.Columns) <= 1 {
			lastErr = fmt.Errorf("%s: yielded %d column(s)", cand.name, len(ds.Columns))
			continue
		}
		return ds, nil
	}
	return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, lastErr)
}

func tryCSV(data []byte, cand csvCandidate) (*model.Dataset, error) {
	if cand.decode != nil {
		decoded, err := cand.decode(data)
		if err != nil {
			return nil, err
		}
		data = decoded
	} else if !utf8.Valid(data) {
		// encoding/csv accepts any bytes; reject here so legacy-encoded
		// files fall through to the Windows-1252 entries instead of
		// loading as mojibake.
		return nil, errors.New("not valid UTF-8")
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	sep := cand.sep
	if sep == 0 {
		sep = sniffSeparator(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sep
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("empty file")
	}
	return datasetFromRecords(records), nil
}

// sniffSeparator picks the candidate separator occurring most often in the
// header line, defaulting to comma.
func sniffSeparator(data []byte) rune {
	header := string(data)
	if i := strings.IndexByte(header, '\n'); i >= 0 {
		header = header[:i]
	}

	best, bestCount := ',', 0
	for _, sep := range []rune{';', '\t', ',', '|'} {
		if n := strings.Count(header, string(sep)); n > bestCount {
			best, bestCount = sep, n
		}
	}
	return best
}

func decodeWindows1252(data []byte) ([]byte, error) {
	return io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder()))
}

func loadXLSX(path string) (*model.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrParse, path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: empty sheet", ErrParse, path)
	}
	return datasetFromRecords(rows), nil
}

func loadXLS(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	wb, err := xls.OpenReader(f, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrParse, path)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%w: %s: cannot read first sheet", ErrParse, path)
	}

	var records [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		rec := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			rec = append(rec, strings.TrimSpace(row.Col(c)))
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: empty sheet", ErrParse, path)
	}
	return datasetFromRecords(records), nil
}

// loadJSON reads an array of flat objects. Columns come from the first
// object's keys, sorted for determinism; numbers keep their exact source
// text via json.Number.
func loadJSON(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	if len(objects) == 0 {
		return &model.Dataset{}, nil
	}

	cols := make([]string, 0, len(objects[0]))
	for k := range objects[0] {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	ds := &model.Dataset{Columns: cols}
	for _, obj := range objects {
		rec := make([]string, len(cols))
		for i, c := range cols {
			if v, ok := obj[c]; ok && v != nil {
				rec[i] = fmt.Sprint(v)
			}
		}
		ds.Rows = append(ds.Rows, rec)
	}
	return ds, nil
}

func datasetFromRecords(records [][]string) *model.Dataset {
	cols := make([]string, len(records[0]))
	for i, c := range records[0] {
		cols[i] = strings.TrimSpace(c)
	}
	return &model.Dataset{Columns: cols, Rows: records[1:]}
}
