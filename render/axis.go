package render

import (
	"fmt"

	"git.sr.ht/~whereswaldon/acchart/grid"
	"git.sr.ht/~whereswaldon/acchart/scale"
)

// Placement is the side of a plot an axis is drawn on.
type Placement uint8

const (
	Left Placement = iota
	Right
	Bottom
)

func (p Placement) String() string {
	switch p {
	case Left:
		return "left"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("Placement(%d)", uint8(p))
	}
}

// ParsePlacement parses "left", "right" or "bottom".
func ParsePlacement(s string) (Placement, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "bottom":
		return Bottom, nil
	default:
		return Left, fmt.Errorf("unknown axis location %q", s)
	}
}

// Kind returns the grid kind of a cell holding an axis with this placement.
func (p Placement) Kind() grid.Kind {
	switch p {
	case Right:
		return grid.KindRightAxis
	case Bottom:
		return grid.KindBottomAxis
	default:
		return grid.KindLeftAxis
	}
}

// Anchor is the horizontal alignment of text relative to its position.
type Anchor uint8

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Baseline is the vertical alignment of text relative to its position.
type Baseline uint8

const (
	// BaselineCentral centres the text on its position.
	BaselineCentral Baseline = iota
	// BaselineHanging hangs the text below its position.
	BaselineHanging
)

// Axis geometry constants in pixels.
const (
	TickLength  = 8
	LabelOffset = 10
	TitleOffset = 55
)

// Label is a positioned piece of text.
type Label struct {
	Text     string
	X, Y     float64
	Anchor   Anchor
	Baseline Baseline
	// Rotation in degrees, clockwise, around (X,Y).
	Rotation float64
}

// Tick is one tick mark and its label.
type Tick struct {
	// Pos is the position of the tick along the axis.
	Pos            float64
	X1, Y1, X2, Y2 float64
	Label          Label
}

// AxisGeometry is a rendered axis in cell-local pixels.
type AxisGeometry struct {
	Placement Placement
	// X1, Y1, X2, Y2 is the axis line along the plot edge.
	X1, Y1, X2, Y2 float64
	Ticks          []Tick
	Title          Label
}

// Axis draws one tick per value of ticks, placed with sc, which must already
// be fitted to the cell. A nil format uses the scale's natural string form.
func Axis[T any](p Placement, sc scale.Scale[T], ticks []T, format func(T) string, title string, r grid.Rect) AxisGeometry {
	if format == nil {
		format = sc.Format
	}
	a := AxisGeometry{Placement: p}
	switch p {
	case Left:
		a.X1, a.Y1, a.X2, a.Y2 = r.Width, 0, r.Width, r.Height
		a.Title = Label{Text: title, X: r.Width - TitleOffset, Y: r.Height / 2, Anchor: AnchorMiddle, Rotation: -90}
	case Right:
		a.X1, a.Y1, a.X2, a.Y2 = 0, 0, 0, r.Height
		a.Title = Label{Text: title, X: TitleOffset, Y: r.Height / 2, Anchor: AnchorMiddle, Rotation: -90}
	case Bottom:
		a.X1, a.Y1, a.X2, a.Y2 = 0, 0, r.Width, 0
		a.Title = Label{Text: title, X: r.Width / 2, Y: r.Height - LabelOffset, Anchor: AnchorMiddle}
	}
	for _, v := range ticks {
		pos := sc.Forward(v)
		t := Tick{Pos: pos}
		t.Label.Text = format(v)
		switch p {
		case Left:
			t.X1, t.Y1, t.X2, t.Y2 = r.Width-TickLength, pos, r.Width, pos
			t.Label.X, t.Label.Y, t.Label.Anchor = r.Width-LabelOffset, pos, AnchorEnd
		case Right:
			t.X1, t.Y1, t.X2, t.Y2 = 0, pos, TickLength, pos
			t.Label.X, t.Label.Y, t.Label.Anchor = LabelOffset, pos, AnchorStart
		case Bottom:
			t.X1, t.Y1, t.X2, t.Y2 = pos, 0, pos, TickLength
			t.Label.X, t.Label.Y, t.Label.Anchor = pos, TickLength, AnchorMiddle
			t.Label.Baseline = BaselineHanging
		}
		a.Ticks = append(a.Ticks, t)
	}
	return a
}
