package chart

import (
	"git.sr.ht/~whereswaldon/acchart/cell"
	"git.sr.ht/~whereswaldon/acchart/grid"
	"git.sr.ht/~whereswaldon/acchart/render"
	"git.sr.ht/~whereswaldon/acchart/scale"
	"git.sr.ht/~whereswaldon/acchart/series"
)

// LineFrame is a line rendered for one frame.
type LineFrame[X any] struct {
	Line *Line[X]
	// Y is the line's y scale fitted to the plot.
	Y    scale.Scale[float64]
	Path render.Path
}

// PlotFrame is a plot rendered for one frame.
type PlotFrame[X any] struct {
	Plot  *Plot[X]
	Scope *cell.Scope
	// X is the shared x scale fitted to the plot.
	X     scale.Scale[X]
	Lines []LineFrame[X]
}

// AxisFrame is an axis rendered for one frame.
type AxisFrame struct {
	Cell     string
	Scope    *cell.Scope
	Geometry render.AxisGeometry
	// XAxis is the index into Chart.XAxes, or -1 for a y axis.
	XAxis int
}

// LegendFrame is a legend placed for one frame.
type LegendFrame[X any] struct {
	Legend *Legend[X]
	Scope  *cell.Scope
}

// Frame is the complete geometry of a chart for one container size.
type Frame[X any] struct {
	Title    string
	Layout   grid.Layout
	Provider *cell.Provider
	Plots    []PlotFrame[X]
	Axes     []AxisFrame
	Legends  []LegendFrame[X]
}

// Frame solves the layout for the container and renders every element.
func (c *Chart[X]) Frame(container grid.Container) (*Frame[X], error) {
	l, err := c.solver.Solve(c.Grid, c.Participants(), container)
	if err != nil {
		return nil, err
	}
	f := &Frame[X]{
		Title:    c.Title,
		Layout:   l,
		Provider: cell.NewProvider(l),
	}
	lo, hi := c.X.Domain()
	for _, p := range c.Plots {
		scope, err := f.Provider.Scope(p.Cell)
		if err != nil {
			return nil, err
		}
		xs := cell.FitX(c.X, scope)
		pf := PlotFrame[X]{Plot: p, Scope: scope, X: xs}
		for _, line := range p.Lines {
			lf := LineFrame[X]{Line: line, Y: cell.FitY[float64](line.Y, scope)}
			if !line.Hidden {
				lf.Path = render.Series(c.Visible(line, lo, hi), xs, lf.Y, line.Interpolation)
			}
			pf.Lines = append(pf.Lines, lf)
		}
		f.Plots = append(f.Plots, pf)
	}
	for i, a := range c.XAxes {
		scope, err := f.Provider.Scope(a.Cell)
		if err != nil {
			return nil, err
		}
		sc := cell.FitX(c.X, scope)
		ticks := a.Ticks
		if len(ticks) == 0 && a.TickCount > 0 {
			ticks = c.X.Ticks(a.TickCount)
		}
		ticks = within(ticks, sc)
		f.Axes = append(f.Axes, AxisFrame{
			Cell:     a.Cell,
			Scope:    scope,
			Geometry: render.Axis(render.Bottom, sc, ticks, a.Format, a.Title, scope.Rect()),
			XAxis:    i,
		})
	}
	for _, a := range c.YAxes {
		scope, err := f.Provider.Scope(a.Cell)
		if err != nil {
			return nil, err
		}
		sc := cell.FitY[float64](a.Y, scope)
		ticks := a.Ticks
		if len(ticks) == 0 && a.TickCount > 0 {
			ticks = a.Y.Ticks(a.TickCount)
		}
		ticks = within(ticks, sc)
		f.Axes = append(f.Axes, AxisFrame{
			Cell:     a.Cell,
			Scope:    scope,
			Geometry: render.Axis(a.Placement, sc, ticks, a.Format, a.Title, scope.Rect()),
			XAxis:    -1,
		})
	}
	for _, legend := range c.Legends {
		scope, err := f.Provider.Scope(legend.Cell)
		if err != nil {
			return nil, err
		}
		f.Legends = append(f.Legends, LegendFrame[X]{Legend: legend, Scope: scope})
	}
	return f, nil
}

// Visible returns the points of line drawn for the domain [lo,hi], with any
// previewed edit applied.
func (c *Chart[X]) Visible(line *Line[X], lo, hi X) []series.Point[X] {
	var pts []series.Point[X]
	if line.Preview != nil {
		pts = series.Cull(line.Preview, lo, hi, line.Series.Compare)
	} else {
		pts = line.Series.Between(lo, hi)
	}
	if line.Influence != nil {
		pts = series.Scaled(pts, line.Influence)
	}
	return pts
}

// within drops the ticks outside the scale's domain.
func within[T any](ticks []T, sc scale.Scale[T]) []T {
	lo, hi := sc.Domain()
	if sc.Compare(lo, hi) > 0 {
		lo, hi = hi, lo
	}
	var out []T
	for _, t := range ticks {
		if sc.Compare(t, lo) >= 0 && sc.Compare(t, hi) <= 0 {
			out = append(out, t)
		}
	}
	return out
}
