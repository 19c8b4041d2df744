package main

import (
	"image"
	"image/color"
	"slices"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/acchart/chart"
	"git.sr.ht/~whereswaldon/acchart/grid"
	"git.sr.ht/~whereswaldon/acchart/interact"
	"git.sr.ht/~whereswaldon/acchart/render"
	"git.sr.ht/~whereswaldon/acchart/series"
)

var resetIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ActionZoomOut)
	return icon
}()

const labelSize = unit.Sp(12)

// view is a chart of either x kind.
type view interface {
	Layout(gtx C, th *material.Theme) D
	// Adopt carries the zoom of a previous view of the same document.
	Adopt(prev view)
	Close()
}

// ChartView draws a chart and runs its editing gestures.
type ChartView[X any] struct {
	Chart  *chart.Chart[X]
	logger *log.Logger

	dispatcher interact.Dispatcher
	zooms      map[int]*interact.ZoomSelector[X]
	curves     map[*chart.Plot[X]]*interact.CurveEditor[X]
	shifts     map[*chart.Plot[X]]*interact.ShiftEditor[X]
	points     map[*chart.Plot[X]][]*interact.PointEditor[X]
	legends    []*LegendView[X]
	// frame is the geometry the gestures are bound to.
	frame    *chart.Frame[X]
	err      error
	resetBtn widget.Clickable
}

func NewChartView[X any](c *chart.Chart[X], logger *log.Logger) *ChartView[X] {
	v := &ChartView[X]{
		Chart:  c,
		logger: logger,
		zooms:  map[int]*interact.ZoomSelector[X]{},
		curves: map[*chart.Plot[X]]*interact.CurveEditor[X]{},
		shifts: map[*chart.Plot[X]]*interact.ShiftEditor[X]{},
		points: map[*chart.Plot[X]][]*interact.PointEditor[X]{},
	}
	for _, l := range c.Legends {
		v.legends = append(v.legends, NewLegendView(l))
	}
	return v
}

func (v *ChartView[X]) Adopt(prev view) {
	old, ok := prev.(*ChartView[X])
	if !ok || !old.Chart.Zoomed() {
		return
	}
	v.Chart.Zoom(old.Chart.X.Domain())
}

// Close abandons every gesture in progress.
func (v *ChartView[X]) Close() {
	v.dispatcher.Close()
}

// Update processes input against the geometry of the last frame.
func (v *ChartView[X]) Update(gtx C) {
	if v.resetBtn.Clicked(gtx) {
		for _, z := range v.zooms {
			z.Cancel()
		}
		v.Chart.ResetZoom()
	}
	for _, l := range v.legends {
		l.Update(gtx)
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: v,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Enter | pointer.Leave | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok || v.frame == nil {
			continue
		}
		if v.dispatcher.Dispatch(e) {
			continue
		}
		v.offer(e)
	}
}

// offer hands an uncaptured event to the gestures. Hover events reach every
// zoom selector; a press starts at most one gesture.
func (v *ChartView[X]) offer(e pointer.Event) {
	switch e.Kind {
	case pointer.Move, pointer.Enter, pointer.Leave:
		for _, z := range v.zooms {
			z.Event(e)
		}
	case pointer.Press:
		for _, editors := range v.points {
			for _, p := range editors {
				if p.Event(e) {
					return
				}
			}
		}
		for _, z := range v.zooms {
			if z.Event(e) {
				return
			}
		}
		for _, c := range v.curves {
			if c.Event(e) {
				return
			}
		}
		for _, s := range v.shifts {
			if s.Event(e) {
				return
			}
		}
	}
}

// preview shows the edits in progress on their lines.
func (v *ChartView[X]) preview() {
	for _, line := range v.Chart.Lines() {
		line.Highlight = false
		for _, l := range v.legends {
			if l.Highlighted(line) {
				line.Highlight = true
			}
		}
	}
	for p, s := range v.shifts {
		if line, ok := p.Edited(); ok {
			line.Preview = nil
			if _, active := s.Offset(); active {
				line.Preview = s.Preview()
			}
		}
	}
	for p, editors := range v.points {
		line, ok := p.Edited()
		if !ok {
			continue
		}
		line.Preview = nil
		for _, e := range editors {
			if !e.Dragging() || e.Index >= line.Series.Len() {
				continue
			}
			pts := slices.Clone(line.Series.Points())
			pts[e.Index] = e.Point()
			line.Preview = pts
		}
	}
}

// bind attaches the gestures to the geometry of f, creating the ones the
// chart asks for.
func (v *ChartView[X]) bind(gtx C, f *chart.Frame[X]) {
	v.frame = f
	for _, pf := range f.Plots {
		p := pf.Plot
		line, ok := p.Edited()
		if !ok {
			continue
		}
		switch p.Editor {
		case chart.EditCurve:
			c := v.curves[p]
			if c == nil {
				c = v.curveEditor(line, pf)
				v.curves[p] = c
			}
			c.Bind(v.Chart.X, pf.Scope)
		case chart.EditShift:
			s := v.shifts[p]
			if s == nil {
				s = interact.NewShiftEditor(&v.dispatcher, line.Series, v.Chart.X, pf.Scope)
				s.OnCommit = func(dx float64) {
					v.logger.Debug("shifted series", "series", line.Series.Name, "px", dx)
				}
				v.shifts[p] = s
			}
			s.Bind(v.Chart.X, pf.Scope)
		case chart.EditPoints:
			editors := v.points[p]
			for i := len(editors); i < line.Series.Len(); i++ {
				e := interact.NewPointEditor(&v.dispatcher, line.Series, i, v.Chart.X, line.Y, pf.Scope)
				e.OnCommit = func(index int, pt series.Point[X]) {
					v.logger.Debug("moved point", "series", line.Series.Name, "index", index, "y", pt.Y)
				}
				editors = append(editors, e)
			}
			for _, e := range editors {
				e.Size = float64(gtx.Dp(interact.MarkerSize))
				e.Bind(v.Chart.X, line.Y, pf.Scope)
			}
			v.points[p] = editors
		}
	}
	for _, af := range f.Axes {
		if af.XAxis < 0 || !v.Chart.XAxes[af.XAxis].Zoom {
			continue
		}
		z := v.zooms[af.XAxis]
		if z == nil {
			z = interact.NewZoomSelector(&v.dispatcher, v.Chart.X, af.Scope, interact.Horizontal, v.Chart.Zoom)
			v.zooms[af.XAxis] = z
		}
		z.Track = float64(gtx.Dp(interact.DefaultTrack))
		z.Bind(v.Chart.X, af.Scope)
	}
}

func (v *ChartView[X]) curveEditor(line *chart.Line[X], pf chart.PlotFrame[X]) *interact.CurveEditor[X] {
	c := interact.NewCurveEditor(&v.dispatcher, v.Chart.X, pf.Scope)
	c.FreeEnd = pf.Plot.FreeEnd
	c.OnChange = func(inf interact.Influence[X]) {
		line.Influence = inf.Ratio
	}
	c.OnCommit = func(inf interact.Influence[X]) {
		line.Series.Map(func(p series.Point[X]) series.Point[X] {
			p.Y *= inf.Ratio(p.X)
			return p
		})
		v.logger.Debug("applied curve", "series", line.Series.Name)
	}
	c.OnClear = func() {
		line.Influence = nil
	}
	return c
}

func (v *ChartView[X]) Layout(gtx C, th *material.Theme) D {
	v.Update(gtx)
	v.preview()
	size := gtx.Constraints.Max
	f, err := v.Chart.Frame(grid.Container{Width: float64(size.X), Height: float64(size.Y)})
	if err != nil {
		if v.err == nil || v.err.Error() != err.Error() {
			v.logger.Error("failed laying out chart", "err", err)
		}
		v.err = err
		l := material.Body1(th, err.Error())
		l.Color = color.NRGBA{R: 150, A: 255}
		return l.Layout(gtx)
	}
	v.err = nil
	v.bind(gtx, f)

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, v)
	for _, pf := range f.Plots {
		v.layoutPlot(gtx, pf)
	}
	for _, af := range f.Axes {
		v.layoutAxis(gtx, th, af)
	}
	for i, lf := range f.Legends {
		r := lf.Scope.Rect()
		inCell(gtx, r, func() {
			gtx := gtx
			gtx.Constraints = layout.Exact(image.Pt(int(r.Width), int(r.Height)))
			v.legends[i].Layout(gtx, th)
		})
	}
	if f.Title != "" {
		drawLabel(gtx, th, unit.Sp(16), render.Label{
			Text:     f.Title,
			X:        float64(size.X) / 2,
			Baseline: render.BaselineHanging,
			Anchor:   render.AnchorMiddle,
		})
	}
	if v.Chart.Zoomed() {
		layout.NE.Layout(gtx, func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.IconButton(th, &v.resetBtn, resetIcon, "Reset zoom").Layout(gtx)
		})
	}
	area.Pop()
	return D{Size: size}
}

func (v *ChartView[X]) layoutPlot(gtx C, pf chart.PlotFrame[X]) {
	r := pf.Scope.Rect()
	inCell(gtx, r, func() {
		clipCell(gtx, r, func() {
			for _, lf := range pf.Lines {
				width := float32(gtx.Dp(unit.Dp(lf.Line.Style.Width)))
				if lf.Line.Highlight {
					width *= 2
				}
				strokePath(gtx, lf.Path, width, lf.Line.Style.Color)
			}
		})
		line, _ := pf.Plot.Edited()
		if c := v.curves[pf.Plot]; c != nil {
			if start, middle, end, ok := c.Handles(); ok {
				for _, h := range []interact.Pos{start, middle, end} {
					handle(gtx, h, line.Style.Color)
				}
			}
		}
		for _, e := range v.points[pf.Plot] {
			if line.Hidden || e.Index >= line.Series.Len() {
				continue
			}
			m := e.Marker()
			half := e.Size / 2
			col := line.Style.Color
			if !e.Dragging() {
				col.A /= 2
			}
			paint.FillShape(gtx.Ops, col, clip.Rect(rectOf(m.X-half, m.Y-half, m.X+half, m.Y+half)).Op())
		}
	})
}

func handle(gtx C, p interact.Pos, col color.NRGBA) {
	radius := float64(gtx.Dp(4))
	paint.FillShape(gtx.Ops, col, clip.Ellipse(rectOf(p.X-radius, p.Y-radius, p.X+radius, p.Y+radius)).Op(gtx.Ops))
}

func (v *ChartView[X]) layoutAxis(gtx C, th *material.Theme, af chart.AxisFrame) {
	r := af.Scope.Rect()
	g := af.Geometry
	width := float32(gtx.Dp(1))
	inCell(gtx, r, func() {
		strokeLine(gtx, g.X1, g.Y1, g.X2, g.Y2, width, th.Fg)
		for _, t := range g.Ticks {
			strokeLine(gtx, t.X1, t.Y1, t.X2, t.Y2, width, th.Fg)
			drawLabel(gtx, th, labelSize, t.Label)
		}
		drawLabel(gtx, th, labelSize, g.Title)
		z := v.zooms[af.XAxis]
		if af.XAxis < 0 || z == nil {
			return
		}
		highlight := th.ContrastBg
		highlight.A = 60
		if from, to, ok := z.Selection(); ok {
			paint.FillShape(gtx.Ops, highlight, clip.Rect(rectOf(from, z.Line-z.Track, to, z.Line+z.Track)).Op())
		}
		if x, ok := z.Tracker(); ok {
			strokeLine(gtx, x, z.Line-z.Track, x, z.Line+z.Track, width, th.ContrastBg)
		}
	})
}
