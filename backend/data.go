package backend

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

var ErrUnknownColumn = errors.New("unknown column")

// table is the raw text of a data file: a heading row and records.
type table struct {
	header []string
	rows   [][]string
}

func (t table) column(name string) (int, error) {
	for i, h := range t.header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownColumn, name)
}

// source identifies one table within a data file.
type source struct {
	file, sheet string
}

func (s source) String() string {
	if s.sheet == "" {
		return s.file
	}
	return s.file + "#" + s.sheet
}

// resolve makes a data file path relative to the document's directory.
func resolve(base, file string) string {
	if filepath.IsAbs(file) || base == "" {
		return file
	}
	return path.Join(filepath.ToSlash(base), filepath.ToSlash(file))
}

// loadTables reads every data file the document refers to concurrently.
func loadTables(ctx context.Context, fsys afero.Fs, base string, doc *Document) (map[source]table, error) {
	tables := map[source]table{}
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	seen := map[source]bool{}
	for _, s := range doc.Series {
		if s.File == "" {
			continue
		}
		src := source{file: resolve(base, s.File), sheet: s.Sheet}
		if seen[src] {
			continue
		}
		seen[src] = true
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := readTable(fsys, src)
			if err != nil {
				return fmt.Errorf("failed reading %s: %w", src, err)
			}
			mu.Lock()
			tables[src] = t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func readTable(fsys afero.Fs, src source) (table, error) {
	f, err := fsys.Open(src.file)
	if err != nil {
		return table{}, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(src.file)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(f, src.sheet)
	default:
		return readCSV(f)
	}
}

func newCSVReader(r io.Reader) *csv.Reader {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	return csvReader
}

// readCSV reads whole lines only; a final line without a newline is parsed
// once the file is exhausted.
func readCSV(r io.Reader) (table, error) {
	lines := NewLineReader(r)
	var recs [][]string
	csvReader := newCSVReader(lines)
	for {
		rec, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return table{}, err
		}
		recs = append(recs, rec)
	}
	if rest := bytes.TrimSpace(lines.Pending()); len(rest) > 0 {
		rec, err := newCSVReader(bytes.NewReader(rest)).Read()
		if err != nil {
			return table{}, err
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return table{}, errors.New("missing headings")
	}
	return table{header: recs[0], rows: recs[1:]}, nil
}

func readWorkbook(r io.Reader, sheet string) (table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return table{}, err
	}
	defer wb.Close()
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return table{}, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return table{}, err
	}
	if len(rows) == 0 {
		return table{}, fmt.Errorf("sheet %q is empty", sheet)
	}
	return table{header: rows[0], rows: rows[1:]}, nil
}
