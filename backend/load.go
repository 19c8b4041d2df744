package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"git.sr.ht/~whereswaldon/acchart/chart"
	"github.com/spf13/afero"
)

// Charts is a loaded document. Exactly one of Numeric and Temporal is set,
// depending on the document's x kind.
type Charts struct {
	Document *Document
	Numeric  *chart.Chart[float64]
	Temporal *chart.Chart[time.Time]
	// Files are the document and every data file it reads.
	Files []string
}

// Load reads and builds the document at path.
func Load(ctx context.Context, fsys afero.Fs, path string) (*Charts, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	charts, err := LoadDocument(ctx, fsys, doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	charts.Files = append([]string{path}, charts.Files...)
	return charts, nil
}

// LoadDocument builds a decoded document, reading data files relative to
// base.
func LoadDocument(ctx context.Context, fsys afero.Fs, doc *Document, base string) (*Charts, error) {
	tables, err := loadTables(ctx, fsys, base, doc)
	if err != nil {
		return nil, err
	}
	charts := &Charts{Document: doc}
	for src := range tables {
		if !slices.Contains(charts.Files, src.file) {
			charts.Files = append(charts.Files, src.file)
		}
	}
	slices.Sort(charts.Files)
	switch doc.X.Kind {
	case "", "number":
		charts.Numeric, err = build(doc, numberKind(), base, tables)
	case "time":
		charts.Temporal, err = build(doc, timeKind(doc.X.Layout), base, tables)
	default:
		err = fmt.Errorf("unknown x kind %q", doc.X.Kind)
	}
	if err != nil {
		return nil, err
	}
	return charts, nil
}
