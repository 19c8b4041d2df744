package backend

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"git.sr.ht/~whereswaldon/acchart/chart"
	"git.sr.ht/~whereswaldon/acchart/grid"
	"git.sr.ht/~whereswaldon/acchart/render"
	"git.sr.ht/~whereswaldon/acchart/scale"
	"git.sr.ht/~whereswaldon/acchart/series"
)

var (
	ErrUnknownSeries = errors.New("unknown series")
	ErrNoDomain      = errors.New("no data to derive the x domain from")
	ErrCumulative    = errors.New("cumulative series cycle")
)

// DefaultMargin is used when a document does not set one.
const DefaultMargin = 20

// kind is how one type of x value is parsed, compared and scaled.
type kind[X any] struct {
	parse   func(v any) (X, error)
	compare func(a, b X) int
	span    func(a, b X) float64
	scale   func(lo, hi X) scale.Scale[X]
	format  func(cfg AxisConfig) func(X) string
}

func numberKind() kind[float64] {
	return kind[float64]{
		parse:   parseNumber,
		compare: cmp.Compare[float64],
		span:    series.Units,
		scale: func(lo, hi float64) scale.Scale[float64] {
			return scale.NewLinear(lo, hi, 0, 1)
		},
		format: numberFormat,
	}
}

func timeKind(layout string) kind[time.Time] {
	return kind[time.Time]{
		parse: func(v any) (time.Time, error) {
			return parseTime(v, layout)
		},
		compare: func(a, b time.Time) int { return a.Compare(b) },
		span:    series.Days,
		scale: func(lo, hi time.Time) scale.Scale[time.Time] {
			return scale.NewTime(lo, hi, 0, 1)
		},
		format: func(cfg AxisConfig) func(time.Time) string {
			if cfg.Format == "" {
				return func(t time.Time) string { return t.Format(time.DateOnly) }
			}
			return func(t time.Time) string { return t.Format(cfg.Format) }
		},
	}
}

func parseNumber(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("cannot use %v (%T) as a number", v, v)
	}
}

// parseTime accepts native TOML/YAML times, strings in layout or a few
// common layouts, and numbers as Unix milliseconds.
func parseTime(v any, layout string) (time.Time, error) {
	switch v := v.(type) {
	case time.Time:
		return v, nil
	case string:
		v = strings.TrimSpace(v)
		layouts := []string{time.RFC3339, time.DateTime, time.DateOnly}
		if layout != "" {
			layouts = []string{layout}
		}
		for _, l := range layouts {
			if t, err := time.Parse(l, v); err == nil {
				return t, nil
			}
		}
		if ms, err := strconv.ParseFloat(v, 64); err == nil {
			return scale.FromMillis(ms), nil
		}
		return time.Time{}, fmt.Errorf("cannot parse %q as a time", v)
	default:
		ms, err := parseNumber(v)
		if err != nil {
			return time.Time{}, fmt.Errorf("cannot use %v (%T) as a time", v, v)
		}
		return scale.FromMillis(ms), nil
	}
}

func numberFormat(cfg AxisConfig) func(float64) string {
	factor := cfg.Factor
	if factor == 0 {
		factor = 1
	}
	if cfg.Format == "" && factor == 1 {
		return nil
	}
	return func(v float64) string {
		v *= factor
		if cfg.Format == "" {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return fmt.Sprintf(cfg.Format, v)
	}
}

// builder turns a document into a chart over one x type.
type builder[X any] struct {
	doc    *Document
	kind   kind[X]
	base   string
	tables map[source]table

	configs map[string]SeriesConfig
	order   map[string]int
	lines   map[string]*chart.Line[X]
	loading map[string]bool
}

func build[X any](doc *Document, k kind[X], base string, tables map[source]table) (*chart.Chart[X], error) {
	b := &builder[X]{
		doc:     doc,
		kind:    k,
		base:    base,
		tables:  tables,
		configs: map[string]SeriesConfig{},
		order:   map[string]int{},
		lines:   map[string]*chart.Line[X]{},
		loading: map[string]bool{},
	}
	for i, s := range doc.Series {
		b.configs[s.Name] = s
		b.order[s.Name] = i
	}
	for _, s := range doc.Series {
		if _, err := b.line(s.Name); err != nil {
			return nil, err
		}
	}
	x, err := b.domain()
	if err != nil {
		return nil, err
	}
	margin := float64(DefaultMargin)
	if doc.Margin != nil {
		margin = *doc.Margin
	}
	c := chart.New(grid.Spec(doc.Layout), margin, x)
	c.Title = doc.Title
	for _, p := range doc.Plots {
		plot, err := b.plot(p)
		if err != nil {
			return nil, err
		}
		c.Plots = append(c.Plots, plot)
	}
	for _, a := range doc.Axes {
		if err := b.axis(c, a); err != nil {
			return nil, err
		}
	}
	for _, l := range doc.Legends {
		legend := &chart.Legend[X]{Cell: l.Cell}
		names := l.Series
		if len(names) == 0 {
			for _, p := range doc.Plots {
				names = append(names, p.Series...)
			}
		}
		for _, name := range names {
			line, ok := b.lines[name]
			if !ok {
				return nil, fmt.Errorf("legend %q: %w %q", l.Cell, ErrUnknownSeries, name)
			}
			legend.Lines = append(legend.Lines, line)
		}
		c.Legends = append(c.Legends, legend)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// line builds the named series, deriving cumulative series from their
// source first.
func (b *builder[X]) line(name string) (*chart.Line[X], error) {
	if line, ok := b.lines[name]; ok {
		return line, nil
	}
	cfg, ok := b.configs[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSeries, name)
	}
	if b.loading[name] {
		return nil, fmt.Errorf("series %q: %w", name, ErrCumulative)
	}
	b.loading[name] = true
	defer delete(b.loading, name)

	var pts []series.Point[X]
	switch {
	case cfg.Cumulative != "":
		from, err := b.line(cfg.Cumulative)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", name, err)
		}
		pts = series.Cumulative(from.Series.Points(), b.kind.span)
	case cfg.File != "":
		var err error
		pts, err = b.filePoints(cfg)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", name, err)
		}
	default:
		for _, p := range cfg.Points {
			x, err := b.kind.parse(p.X)
			if err != nil {
				return nil, fmt.Errorf("series %q: %w", name, err)
			}
			pts = append(pts, series.Point[X]{X: x, Y: p.Y})
		}
	}
	s := series.FromPoints(name, b.kind.compare, pts)
	s.Unit = cfg.Unit

	line := &chart.Line[X]{Series: s, Hidden: cfg.Hidden}
	var err error
	if line.Interpolation, err = render.ParseInterpolation(cfg.Interpolation); err != nil {
		return nil, fmt.Errorf("series %q: %w", name, err)
	}
	line.Style = chart.Style{Color: paletteColor(b.order[name]), Width: cfg.Width, Dash: cfg.Dash}
	if cfg.Color != "" {
		if line.Style.Color, err = ParseColor(cfg.Color); err != nil {
			return nil, fmt.Errorf("series %q: %w", name, err)
		}
	}
	if line.Y, err = yDomain(cfg.Domain, s.Points(), cfg.Nice); err != nil {
		return nil, fmt.Errorf("series %q: %w", name, err)
	}
	b.lines[name] = line
	return line, nil
}

func (b *builder[X]) filePoints(cfg SeriesConfig) ([]series.Point[X], error) {
	src := source{file: resolve(b.base, cfg.File), sheet: cfg.Sheet}
	t, ok := b.tables[src]
	if !ok {
		return nil, fmt.Errorf("data file %s was not loaded", src)
	}
	xcol := 0
	if cfg.XColumn != "" {
		var err error
		if xcol, err = t.column(cfg.XColumn); err != nil {
			return nil, err
		}
	}
	column := cfg.Column
	if column == "" {
		column = cfg.Name
	}
	ycol, err := t.column(column)
	if err != nil {
		return nil, err
	}
	pts := make([]series.Point[X], 0, len(t.rows))
	for i, row := range t.rows {
		if ycol >= len(row) || xcol >= len(row) || strings.TrimSpace(row[ycol]) == "" {
			// Null cells.
			continue
		}
		x, err := b.kind.parse(row[xcol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(row[ycol]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		pts = append(pts, series.Point[X]{X: x, Y: y})
	}
	return pts, nil
}

func yDomain[X any](domain []float64, pts []series.Point[X], nice int) (scale.Linear, error) {
	var lo, hi float64
	switch len(domain) {
	case 0:
		lo, hi = series.Bounds(pts)
		if math.IsNaN(lo) {
			lo, hi = 0, 1
		}
	case 2:
		lo, hi = domain[0], domain[1]
	default:
		return scale.Linear{}, fmt.Errorf("domain needs two values, got %d", len(domain))
	}
	y := scale.NewLinear(lo, hi, 0, 1)
	if nice > 0 {
		y = y.NiceLinear(nice)
	}
	return y, nil
}

func (b *builder[X]) domain() (scale.Scale[X], error) {
	var lo, hi X
	switch len(b.doc.X.Domain) {
	case 2:
		var err error
		if lo, err = b.kind.parse(b.doc.X.Domain[0]); err != nil {
			return nil, fmt.Errorf("x domain: %w", err)
		}
		if hi, err = b.kind.parse(b.doc.X.Domain[1]); err != nil {
			return nil, fmt.Errorf("x domain: %w", err)
		}
	case 0:
		found := false
		for _, line := range b.lines {
			first, last, ok := line.Series.Domain()
			if !ok {
				continue
			}
			if !found || b.kind.compare(first, lo) < 0 {
				lo = first
			}
			if !found || b.kind.compare(last, hi) > 0 {
				hi = last
			}
			found = true
		}
		if !found {
			return nil, ErrNoDomain
		}
	default:
		return nil, fmt.Errorf("x domain needs two values, got %d", len(b.doc.X.Domain))
	}
	sc := b.kind.scale(lo, hi)
	if b.doc.X.Nice > 0 {
		sc = sc.Nice(b.doc.X.Nice)
	}
	return sc, nil
}

func (b *builder[X]) plot(cfg PlotConfig) (*chart.Plot[X], error) {
	editor, err := chart.ParseEditor(cfg.Editor)
	if err != nil {
		return nil, fmt.Errorf("plot %q: %w", cfg.Cell, err)
	}
	p := &chart.Plot[X]{Cell: cfg.Cell, Editor: editor, FreeEnd: cfg.FreeEnd}
	for i, name := range cfg.Series {
		line, ok := b.lines[name]
		if !ok {
			return nil, fmt.Errorf("plot %q: %w %q", cfg.Cell, ErrUnknownSeries, name)
		}
		if name == cfg.Edit {
			p.Edit = i
		}
		p.Lines = append(p.Lines, line)
	}
	if cfg.Edit != "" && (p.Edit >= len(cfg.Series) || cfg.Series[p.Edit] != cfg.Edit) {
		return nil, fmt.Errorf("plot %q: edit: %w %q", cfg.Cell, ErrUnknownSeries, cfg.Edit)
	}
	return p, nil
}

func (b *builder[X]) axis(c *chart.Chart[X], cfg AxisConfig) error {
	placement, err := render.ParsePlacement(cfg.Location)
	if err != nil {
		return fmt.Errorf("axis %q: %w", cfg.Cell, err)
	}
	if placement == render.Bottom {
		a := &chart.XAxis[X]{
			Cell:      cfg.Cell,
			TickCount: cfg.TickCount,
			Format:    b.kind.format(cfg),
			Title:     cfg.Title,
			Zoom:      cfg.Zoom,
		}
		for _, t := range cfg.Ticks {
			v, err := b.kind.parse(t)
			if err != nil {
				return fmt.Errorf("axis %q: %w", cfg.Cell, err)
			}
			a.Ticks = append(a.Ticks, v)
		}
		c.XAxes = append(c.XAxes, a)
		return nil
	}
	a := &chart.YAxis{
		Cell:      cfg.Cell,
		Placement: placement,
		TickCount: cfg.TickCount,
		Format:    numberFormat(cfg),
		Title:     cfg.Title,
	}
	switch {
	case cfg.Series != "":
		line, ok := b.lines[cfg.Series]
		if !ok {
			return fmt.Errorf("axis %q: %w %q", cfg.Cell, ErrUnknownSeries, cfg.Series)
		}
		a.Y = line.Y
	case len(cfg.Domain) == 2:
		a.Y = scale.NewLinear(cfg.Domain[0], cfg.Domain[1], 0, 1)
	default:
		return fmt.Errorf("axis %q: needs a series or a two value domain", cfg.Cell)
	}
	for _, t := range cfg.Ticks {
		v, err := parseNumber(t)
		if err != nil {
			return fmt.Errorf("axis %q: %w", cfg.Cell, err)
		}
		a.Ticks = append(a.Ticks, v)
	}
	c.YAxes = append(c.YAxes, a)
	return nil
}
