package series

import (
	"math"
	"time"
)

// Cumulative integrates pts with the trapezoid rule. span measures the
// distance between two X values in the unit the rates are expressed in. The
// result starts at zero at the first point.
func Cumulative[X any](pts []Point[X], span func(a, b X) float64) []Point[X] {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Point[X], len(pts))
	out[0] = Point[X]{X: pts[0].X}
	total := 0.0
	for i := 1; i < len(pts); i++ {
		avg := (pts[i-1].Y + pts[i].Y) / 2
		total += avg * span(pts[i-1].X, pts[i].X)
		out[i] = Point[X]{X: pts[i].X, Y: total}
	}
	return out
}

// Days is the number of whole days between a and b.
func Days(a, b time.Time) float64 {
	return math.Round(math.Abs(b.Sub(a).Hours() / 24))
}

// Units is the distance between two numbers.
func Units(a, b float64) float64 {
	return math.Abs(b - a)
}
