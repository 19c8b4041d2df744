package backend

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Document is a chart description as written in a TOML or YAML file.
type Document struct {
	Title   string         `toml:"title" yaml:"title"`
	Layout  [][]string     `toml:"layout" yaml:"layout"`
	Margin  *float64       `toml:"margin" yaml:"margin"`
	X       XConfig        `toml:"x" yaml:"x"`
	Series  []SeriesConfig `toml:"series" yaml:"series"`
	Plots   []PlotConfig   `toml:"plot" yaml:"plot"`
	Axes    []AxisConfig   `toml:"axis" yaml:"axis"`
	Legends []LegendConfig `toml:"legend" yaml:"legend"`
}

// XConfig describes the shared x scale.
type XConfig struct {
	// Kind is "number" or "time".
	Kind string `toml:"kind" yaml:"kind"`
	// Domain optionally fixes the x domain; otherwise it spans the data.
	Domain []any `toml:"domain" yaml:"domain"`
	// Nice extends the domain to round values for this many ticks.
	Nice int `toml:"nice" yaml:"nice"`
	// Layout is the time layout used to parse string x values.
	Layout string `toml:"layout" yaml:"layout"`
}

// PointConfig is an inline data point.
type PointConfig struct {
	X any     `toml:"x" yaml:"x"`
	Y float64 `toml:"y" yaml:"y"`
}

// SeriesConfig declares one series and how it is drawn.
type SeriesConfig struct {
	Name string `toml:"name" yaml:"name"`
	Unit string `toml:"unit" yaml:"unit"`

	Points []PointConfig `toml:"points" yaml:"points"`
	// File is a .csv or .xlsx file, relative to the document.
	File  string `toml:"file" yaml:"file"`
	Sheet string `toml:"sheet" yaml:"sheet"`
	// XColumn and Column name the data columns; they default to the first
	// column and the series name.
	XColumn string `toml:"x_column" yaml:"x_column"`
	Column  string `toml:"column" yaml:"column"`
	// Cumulative names a series whose running integral this series is.
	Cumulative string `toml:"cumulative" yaml:"cumulative"`

	Interpolation string    `toml:"interpolation" yaml:"interpolation"`
	Color         string    `toml:"color" yaml:"color"`
	Width         float64   `toml:"width" yaml:"width"`
	Dash          float64   `toml:"dash" yaml:"dash"`
	Domain        []float64 `toml:"domain" yaml:"domain"`
	Nice          int       `toml:"nice" yaml:"nice"`
	Hidden        bool      `toml:"hidden" yaml:"hidden"`
}

// PlotConfig places series in a chart area cell.
type PlotConfig struct {
	Cell   string   `toml:"cell" yaml:"cell"`
	Series []string `toml:"series" yaml:"series"`
	// Editor is "curve", "points", "shift" or empty.
	Editor string `toml:"editor" yaml:"editor"`
	// Edit names the edited series; it defaults to the first one.
	Edit string `toml:"edit" yaml:"edit"`
	// FreeEnd lets a curve's end handle leave the level of its start.
	FreeEnd bool `toml:"free_end" yaml:"free_end"`
}

// AxisConfig places an axis in a cell.
type AxisConfig struct {
	Cell string `toml:"cell" yaml:"cell"`
	// Location is "left", "right" or "bottom". Bottom axes show x.
	Location string `toml:"location" yaml:"location"`
	Title    string `toml:"title" yaml:"title"`
	// Series names the series whose y domain a left or right axis shows.
	Series    string    `toml:"series" yaml:"series"`
	Domain    []float64 `toml:"domain" yaml:"domain"`
	Ticks     []any     `toml:"ticks" yaml:"ticks"`
	TickCount int       `toml:"tick_count" yaml:"tick_count"`
	// Format is a printf verb for numbers or a time layout.
	Format string  `toml:"format" yaml:"format"`
	Factor float64 `toml:"factor" yaml:"factor"`
	Zoom   bool    `toml:"zoom" yaml:"zoom"`
}

// LegendConfig places a legend in a layout-group cell.
type LegendConfig struct {
	Cell string `toml:"cell" yaml:"cell"`
	// Series defaults to every plotted series.
	Series []string `toml:"series" yaml:"series"`
}

// Format is a document encoding.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
)

var ErrUnknownFormat = errors.New("unknown document format")

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Decode reads a document in the given encoding.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed decoding toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed decoding yaml: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	return &doc, nil
}

// Sniff decodes a document of unknown encoding, trying TOML first.
func Sniff(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc, tomlErr := Decode(bytes.NewReader(data), FormatTOML)
	if tomlErr == nil {
		return doc, nil
	}
	doc, yamlErr := Decode(bytes.NewReader(data), FormatYAML)
	if yamlErr == nil {
		return doc, nil
	}
	return nil, errors.Join(tomlErr, yamlErr)
}
