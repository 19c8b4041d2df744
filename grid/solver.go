package grid

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// Container is the measured box the grid is laid out in. Top and Left are
// the absolute screen offset of the box.
type Container struct {
	Top, Left     float64
	Width, Height float64
}

// Rect is the resolved geometry of one cell. Top, Left, Right and Bottom are
// relative to the container; RootTop and RootLeft are the container's
// absolute screen offset.
type Rect struct {
	RootTop, RootLeft float64
	Top, Left         float64
	Width, Height     float64
	Right, Bottom     float64
}

// Local converts an absolute screen position into rectangle-local
// coordinates.
func (r Rect) Local(x, y float64) (lx, ly float64) {
	return x - r.RootLeft - r.Left, y - r.RootTop - r.Top
}

// Contains reports whether the local position lies within the rectangle.
func (r Rect) Contains(lx, ly float64) bool {
	return lx >= 0 && ly >= 0 && lx < r.Width && ly < r.Height
}

// Layout is a solved grid.
type Layout struct {
	Container Container
	Margin    float64
	// Cols and Rows hold the resolved size of every column and row.
	Cols, Rows []float64
	names      []string
	cells      map[string]Rect
}

// Cell returns the rectangle of the named cell.
func (l Layout) Cell(name string) (Rect, error) {
	r, ok := l.cells[name]
	if !ok {
		return Rect{}, &CellError{Cell: name, Err: ErrUnknownCell}
	}
	return r, nil
}

// Names returns the published cells in row-major order.
func (l Layout) Names() []string {
	return slices.Clone(l.names)
}

// clone copies l so that callers never share slices with the cache.
func (l Layout) clone() Layout {
	l.Cols = slices.Clone(l.Cols)
	l.Rows = slices.Clone(l.Rows)
	l.names = slices.Clone(l.names)
	l.cells = maps.Clone(l.cells)
	return l
}

// sizing is the per-column and per-row aggregate of the participants' hints.
type sizing struct {
	colMin, colExtra []float64
	rowMin, rowExtra []float64
}

const cacheSize = 64

// Solver computes layouts. It memoizes both the hint aggregation of a
// spec/participant set and the final layout for a container, so repeated
// frames with unchanged inputs do no work.
type Solver struct {
	Margin  float64
	sizings *lru.Cache
	layouts *lru.Cache
}

// NewSolver returns a solver placing cells margin pixels inside the
// container.
func NewSolver(margin float64) *Solver {
	sizings, _ := lru.New(cacheSize)
	layouts, _ := lru.New(cacheSize)
	return &Solver{
		Margin:  margin,
		sizings: sizings,
		layouts: layouts,
	}
}

// Solve lays out spec within the container. Every participant must name a
// cell of spec.
func (s *Solver) Solve(spec Spec, parts []Participant, c Container) (Layout, error) {
	key := sizingKey(spec, parts)
	layoutKey := fmt.Sprintf("%s|%g|%g,%g,%g,%g", key, s.Margin, c.Top, c.Left, c.Width, c.Height)
	if s.layouts != nil {
		if l, ok := s.layouts.Get(layoutKey); ok {
			return l.(Layout).clone(), nil
		}
	}
	var sz sizing
	if cached, ok := s.cachedSizing(key); ok {
		sz = cached
	} else {
		var err error
		sz, err = aggregate(spec, parts)
		if err != nil {
			return Layout{}, err
		}
		if s.sizings != nil {
			s.sizings.Add(key, sz)
		}
	}
	l := place(spec, sz, c, s.Margin)
	if s.layouts != nil {
		s.layouts.Add(layoutKey, l.clone())
	}
	return l, nil
}

func (s *Solver) cachedSizing(key string) (sizing, bool) {
	if s.sizings == nil {
		return sizing{}, false
	}
	v, ok := s.sizings.Get(key)
	if !ok {
		return sizing{}, false
	}
	return v.(sizing), true
}

func sizingKey(spec Spec, parts []Participant) string {
	var b strings.Builder
	b.WriteString(spec.key())
	for _, p := range parts {
		fmt.Fprintf(&b, "%s\x00%d\x00", p.Cell, p.Kind)
	}
	return b.String()
}

func aggregate(spec Spec, parts []Participant) (sizing, error) {
	if err := spec.Validate(); err != nil {
		return sizing{}, err
	}
	sz := sizing{
		colMin:   make([]float64, spec.Cols()),
		colExtra: make([]float64, spec.Cols()),
		rowMin:   make([]float64, len(spec)),
		rowExtra: make([]float64, len(spec)),
	}
	for _, p := range parts {
		row, col, ok := spec.Locate(p.Cell)
		if !ok {
			return sizing{}, &CellError{Cell: p.Cell, Err: ErrUnknownCell}
		}
		x, y := p.Kind.Sizing()
		sz.colMin[col] = max(sz.colMin[col], x.Min)
		sz.colExtra[col] = max(sz.colExtra[col], x.Extra)
		sz.rowMin[row] = max(sz.rowMin[row], y.Min)
		sz.rowExtra[row] = max(sz.rowExtra[row], y.Extra)
	}
	return sz, nil
}

// distribute shares the space left after every minimum is met in proportion
// to the extra weights. Space is never taken away from a minimum.
func distribute(total, margin float64, mins, extras []float64) []float64 {
	var sumMin, sumExtra float64
	for i := range mins {
		sumMin += mins[i]
		sumExtra += extras[i]
	}
	leftover := max(total-2*margin-sumMin, 0)
	sizes := make([]float64, len(mins))
	for i := range mins {
		sizes[i] = mins[i]
		if sumExtra > 0 {
			sizes[i] += leftover * extras[i] / sumExtra
		}
	}
	return sizes
}

func place(spec Spec, sz sizing, c Container, margin float64) Layout {
	l := Layout{
		Container: c,
		Margin:    margin,
		Cols:      distribute(c.Width, margin, sz.colMin, sz.colExtra),
		Rows:      distribute(c.Height, margin, sz.rowMin, sz.rowExtra),
		cells:     map[string]Rect{},
	}
	top := margin
	for r, row := range spec {
		left := margin
		for col := range l.Cols {
			width := l.Cols[col]
			if col < len(row) && row[col] != "" {
				l.names = append(l.names, row[col])
				l.cells[row[col]] = Rect{
					RootTop:  c.Top,
					RootLeft: c.Left,
					Top:      top,
					Left:     left,
					Width:    width,
					Height:   l.Rows[r],
					Right:    left + width,
					Bottom:   top + l.Rows[r],
				}
			}
			left += width
		}
		top += l.Rows[r]
	}
	return l
}
