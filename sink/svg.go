// Package sink writes chart frames to static outputs.
package sink

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"git.sr.ht/~whereswaldon/acchart/chart"
	"git.sr.ht/~whereswaldon/acchart/render"
	svg "github.com/ajstarks/svgo/float"
)

// errWriter remembers the first write error so that the SVG builder, which
// ignores errors, can be checked once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}

const (
	axisStyle  = "stroke:#444444;stroke-width:1"
	labelStyle = "font-family:sans-serif;font-size:12px;fill:#222222"
	titleStyle = "font-family:sans-serif;font-size:14px;fill:#222222"
)

// SVG writes the frame as a standalone SVG document sized to the frame's
// container.
func SVG[X any](w io.Writer, f *chart.Frame[X]) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	c := f.Layout.Container
	canvas.Start(c.Width, c.Height)
	if f.Title != "" {
		canvas.Title(f.Title)
	}
	canvas.Def()
	for i, p := range f.Plots {
		r := p.Scope.Rect()
		canvas.ClipPath(`id="` + clipID(i) + `"`)
		canvas.Rect(0, 0, r.Width, r.Height)
		canvas.ClipEnd()
	}
	canvas.DefEnd()
	for i, p := range f.Plots {
		r := p.Scope.Rect()
		canvas.Gtransform(translate(r.Left, r.Top))
		canvas.Group(`clip-path="url(#` + clipID(i) + `)"`)
		for _, l := range p.Lines {
			if len(l.Path) == 0 {
				continue
			}
			canvas.Path(l.Path.String(), strokeAttrs(l.Line.Style, l.Line.Highlight)...)
		}
		canvas.Gend()
		canvas.Gend()
	}
	for _, a := range f.Axes {
		r := a.Scope.Rect()
		g := a.Geometry
		canvas.Gtransform(translate(r.Left, r.Top))
		canvas.Line(g.X1, g.Y1, g.X2, g.Y2, axisStyle)
		for _, t := range g.Ticks {
			canvas.Line(t.X1, t.Y1, t.X2, t.Y2, axisStyle)
			text(canvas, t.Label, labelStyle)
		}
		if g.Title.Text != "" {
			text(canvas, g.Title, titleStyle)
		}
		canvas.Gend()
	}
	for _, l := range f.Legends {
		r := l.Scope.Rect()
		canvas.Gtransform(translate(r.Left, r.Top))
		for i, line := range l.Legend.Lines {
			y := float64(i)*20 + 10
			canvas.Line(0, y, 20, y, strokeAttrs(line.Style, line.Highlight)...)
			style := labelStyle
			if line.Hidden {
				style += ";fill-opacity:0.4"
			}
			canvas.Text(28, y, line.Title(), style, `dominant-baseline="central"`)
		}
		canvas.Gend()
	}
	canvas.End()
	return ew.err
}

func clipID(i int) string {
	return "plot-" + strconv.Itoa(i)
}

func translate(x, y float64) string {
	return fmt.Sprintf("translate(%g,%g)", x, y)
}

func text(canvas *svg.SVG, l render.Label, style string) {
	attrs := []string{style, `text-anchor="` + anchor(l.Anchor) + `"`}
	if l.Baseline == render.BaselineHanging {
		attrs = append(attrs, `dominant-baseline="hanging"`)
	} else {
		attrs = append(attrs, `dominant-baseline="central"`)
	}
	if l.Rotation != 0 {
		attrs = append(attrs, fmt.Sprintf(`transform="rotate(%g,%g,%g)"`, l.Rotation, l.X, l.Y))
	}
	canvas.Text(l.X, l.Y, l.Text, attrs...)
}

func anchor(a render.Anchor) string {
	switch a {
	case render.AnchorMiddle:
		return "middle"
	case render.AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

// Hex formats a colour as #rrggbb.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func strokeAttrs(s chart.Style, highlight bool) []string {
	width := s.Width
	if width <= 0 {
		width = 1
	}
	if highlight {
		width *= 2
	}
	c := s.Color
	if c == (color.NRGBA{}) {
		c = color.NRGBA{A: 255}
	}
	attrs := []string{
		`fill="none"`,
		`stroke="` + Hex(c) + `"`,
		fmt.Sprintf(`stroke-width="%g"`, width),
	}
	if c.A != 255 {
		attrs = append(attrs, fmt.Sprintf(`stroke-opacity="%g"`, float64(c.A)/255))
	}
	if s.Dash > 0 {
		attrs = append(attrs, fmt.Sprintf(`stroke-dasharray="%g"`, s.Dash))
	}
	return attrs
}
