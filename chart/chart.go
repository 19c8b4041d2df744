// Package chart composes plots, axes and legends on a named grid.
package chart

import (
	"errors"
	"fmt"
	"image/color"

	"git.sr.ht/~whereswaldon/acchart/grid"
	"git.sr.ht/~whereswaldon/acchart/render"
	"git.sr.ht/~whereswaldon/acchart/scale"
	"git.sr.ht/~whereswaldon/acchart/series"
)

// Style is how a line is stroked.
type Style struct {
	Color color.NRGBA
	Width float64
	// Dash is the dash length; zero draws a solid line.
	Dash float64
}

// Line is one series drawn in a plot against its own y domain.
type Line[X any] struct {
	Series        *series.Series[X]
	Y             scale.Linear
	Interpolation render.Interpolation
	Style         Style
	Hidden        bool
	Highlight     bool
	// Influence, when set, multiplies every y value while an edit is
	// previewed.
	Influence func(X) float64
	// Preview, when set, replaces the series points while an edit is
	// previewed.
	Preview []series.Point[X]
}

// Title is the name shown for the line in legends.
func (l *Line[X]) Title() string {
	if l.Series.Unit == "" {
		return l.Series.Name
	}
	return l.Series.Name + " (" + l.Series.Unit + ")"
}

// Editor is the gesture editing the lines of a plot.
type Editor uint8

const (
	EditNone Editor = iota
	EditCurve
	EditPoints
	EditShift
)

func (e Editor) String() string {
	switch e {
	case EditNone:
		return "none"
	case EditCurve:
		return "curve"
	case EditPoints:
		return "points"
	case EditShift:
		return "shift"
	default:
		return fmt.Sprintf("Editor(%d)", uint8(e))
	}
}

// ParseEditor parses an editor name. The empty string is EditNone.
func ParseEditor(s string) (Editor, error) {
	switch s {
	case "", "none":
		return EditNone, nil
	case "curve":
		return EditCurve, nil
	case "points":
		return EditPoints, nil
	case "shift":
		return EditShift, nil
	default:
		return EditNone, fmt.Errorf("unknown editor %q", s)
	}
}

// Plot is a chart area cell.
type Plot[X any] struct {
	Cell   string
	Lines  []*Line[X]
	Editor Editor
	// Edit is the index in Lines of the line the editor works on.
	Edit int
	// FreeEnd is passed to the curve editor.
	FreeEnd bool
}

// Edited returns the line the plot's editor works on.
func (p *Plot[X]) Edited() (*Line[X], bool) {
	if p.Editor == EditNone || p.Edit < 0 || p.Edit >= len(p.Lines) {
		return nil, false
	}
	return p.Lines[p.Edit], true
}

// XAxis is an axis of the shared x scale.
type XAxis[X any] struct {
	Cell string
	// Ticks are the values marked on the axis. When empty, TickCount
	// automatic ticks are used instead.
	Ticks     []X
	TickCount int
	Format    func(X) string
	Title     string
	// Zoom enables drag-to-zoom along the axis.
	Zoom bool
}

// YAxis is an axis of a y domain.
type YAxis struct {
	Cell      string
	Placement render.Placement
	Y         scale.Linear
	Ticks     []float64
	TickCount int
	Format    func(float64) string
	Title     string
}

// Legend lists lines in a layout-group cell.
type Legend[X any] struct {
	Cell  string
	Lines []*Line[X]
}

// Chart is a set of plots, axes and legends laid out on a grid and sharing
// one x scale.
type Chart[X any] struct {
	Title   string
	Grid    grid.Spec
	X       scale.Scale[X]
	Plots   []*Plot[X]
	XAxes   []*XAxis[X]
	YAxes   []*YAxis
	Legends []*Legend[X]

	full   scale.Scale[X]
	solver *grid.Solver
}

// New returns an empty chart on spec with x as its shared scale.
func New[X any](spec grid.Spec, margin float64, x scale.Scale[X]) *Chart[X] {
	return &Chart[X]{
		Grid:   spec,
		X:      x,
		full:   x,
		solver: grid.NewSolver(margin),
	}
}

func (c *Chart[X]) Margin() float64 {
	return c.solver.Margin
}

// Participants returns the sizing participants of every declared element.
func (c *Chart[X]) Participants() []grid.Participant {
	var parts []grid.Participant
	for _, p := range c.Plots {
		parts = append(parts, grid.Participant{Cell: p.Cell, Kind: grid.KindChart})
	}
	for _, a := range c.XAxes {
		parts = append(parts, grid.Participant{Cell: a.Cell, Kind: grid.KindBottomAxis})
	}
	for _, a := range c.YAxes {
		parts = append(parts, grid.Participant{Cell: a.Cell, Kind: a.Placement.Kind()})
	}
	for _, l := range c.Legends {
		parts = append(parts, grid.Participant{Cell: l.Cell, Kind: grid.KindGroup})
	}
	return parts
}

// Validate reports every element placed in a cell the grid does not name,
// and duplicate cell names.
func (c *Chart[X]) Validate() error {
	errs := []error{c.Grid.Validate()}
	for _, p := range c.Participants() {
		if _, _, ok := c.Grid.Locate(p.Cell); !ok {
			errs = append(errs, &grid.CellError{Cell: p.Cell, Err: grid.ErrUnknownCell})
		}
	}
	return errors.Join(errs...)
}

// Zoom narrows the shared x domain to [first,second]. An empty window is
// ignored, since a degenerate domain cannot be mapped back to data.
func (c *Chart[X]) Zoom(first, second X) {
	if c.X.Compare(first, second) == 0 {
		return
	}
	c.X = c.X.WithDomain(first, second)
}

// ResetZoom restores the x domain the chart was created with.
func (c *Chart[X]) ResetZoom() {
	c.X = c.full
}

// Zoomed reports whether the x domain differs from the original one.
func (c *Chart[X]) Zoomed() bool {
	a, b := c.X.Domain()
	fa, fb := c.full.Domain()
	return c.X.Compare(a, fa) != 0 || c.X.Compare(b, fb) != 0
}

// Lines returns every line of every plot.
func (c *Chart[X]) Lines() []*Line[X] {
	var lines []*Line[X]
	for _, p := range c.Plots {
		lines = append(lines, p.Lines...)
	}
	return lines
}
