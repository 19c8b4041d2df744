package render

import (
	"fmt"

	"git.sr.ht/~whereswaldon/acchart/scale"
	"git.sr.ht/~whereswaldon/acchart/series"
)

// Interpolation decides how consecutive points are joined.
type Interpolation uint8

const (
	// Line joins points with straight segments.
	Line Interpolation = iota
	// Step holds the previous value until the next X, then jumps.
	Step
)

func (i Interpolation) String() string {
	switch i {
	case Line:
		return "line"
	case Step:
		return "step"
	default:
		return fmt.Sprintf("Interpolation(%d)", uint8(i))
	}
}

// ParseInterpolation parses "line" or "step". The empty string is Line.
func ParseInterpolation(s string) (Interpolation, error) {
	switch s {
	case "", "line":
		return Line, nil
	case "step":
		return Step, nil
	default:
		return Line, fmt.Errorf("unknown interpolation %q", s)
	}
}

// Series returns the path through pts. The scales must already be fitted to
// the cell. A single point yields a zero-length path at that point and no
// points yield an empty path.
func Series[X any](pts []series.Point[X], x scale.Scale[X], y scale.Scale[float64], mode Interpolation) Path {
	if len(pts) == 0 {
		return nil
	}
	p := make(Path, 0, 2*len(pts))
	prevY := y.Forward(pts[0].Y)
	p.MoveTo(x.Forward(pts[0].X), prevY)
	if len(pts) == 1 {
		p.LineTo(p[0].X, p[0].Y)
		return p
	}
	for _, pt := range pts[1:] {
		px, py := x.Forward(pt.X), y.Forward(pt.Y)
		if mode == Step {
			p.LineTo(px, prevY)
		}
		p.LineTo(px, py)
		prevY = py
	}
	return p
}
