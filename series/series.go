// Package series holds ordered data series.
package series

import (
	"slices"

	"github.com/aclements/go-moremath/stats"
)

// Point is one sample of a series.
type Point[X any] struct {
	X X
	Y float64
}

// Series represents one data set in a visualization. Points are kept ordered
// by X.
type Series[X any] struct {
	Name, Unit         string
	compare            func(a, b X) int
	points             []Point[X]
	RangeMax, RangeMin float64
}

// New returns an empty series ordering its points with compare.
func New[X any](name string, compare func(a, b X) int) *Series[X] {
	return &Series[X]{Name: name, compare: compare}
}

// FromPoints returns a series holding pts, sorted by X. Points sharing an X
// keep their relative order.
func FromPoints[X any](name string, compare func(a, b X) int, pts []Point[X]) *Series[X] {
	s := New(name, compare)
	s.points = slices.Clone(pts)
	slices.SortStableFunc(s.points, func(a, b Point[X]) int {
		return compare(a.X, b.X)
	})
	s.updateRange()
	return s
}

func (s *Series[X]) search(x X) (int, bool) {
	return slices.BinarySearchFunc(s.points, x, func(p Point[X], x X) int {
		return s.compare(p.X, x)
	})
}

// Insert adds a point to the series. In the event that the series already
// contains a point at that X, nothing is added and the method returns false.
func (s *Series[X]) Insert(p Point[X]) (inserted bool) {
	if len(s.points) < 1 {
		s.RangeMax = p.Y
		s.RangeMin = p.Y
	}
	index, found := s.search(p.X)
	if found {
		return false
	}
	s.points = slices.Insert(s.points, index, p)
	s.RangeMax = max(s.RangeMax, p.Y)
	s.RangeMin = min(s.RangeMin, p.Y)
	return true
}

func (s *Series[X]) Len() int {
	return len(s.points)
}

func (s *Series[X]) At(i int) Point[X] {
	return s.points[i]
}

// Points returns the points of the series. The slice must not be modified.
func (s *Series[X]) Points() []Point[X] {
	return s.points
}

// Compare orders two X values the way the series does.
func (s *Series[X]) Compare(a, b X) int {
	return s.compare(a, b)
}

// Clamp limits x to the interval between the neighbours of point i.
func (s *Series[X]) Clamp(i int, x X) X {
	if i > 0 && s.compare(x, s.points[i-1].X) < 0 {
		x = s.points[i-1].X
	}
	if i < len(s.points)-1 && s.compare(x, s.points[i+1].X) > 0 {
		x = s.points[i+1].X
	}
	return x
}

// Set replaces point i. The new X is clamped between the neighbouring points
// so the order of the series is preserved. The stored point is returned.
func (s *Series[X]) Set(i int, p Point[X]) Point[X] {
	p.X = s.Clamp(i, p.X)
	s.points[i] = p
	s.updateRange()
	return p
}

// Map replaces every point with f's result and restores the order.
func (s *Series[X]) Map(f func(Point[X]) Point[X]) {
	for i, p := range s.points {
		s.points[i] = f(p)
	}
	slices.SortStableFunc(s.points, func(a, b Point[X]) int {
		return s.compare(a.X, b.X)
	})
	s.updateRange()
}

// Domain returns the first and last X of the series.
func (s *Series[X]) Domain() (first, last X, ok bool) {
	if len(s.points) == 0 {
		return first, last, false
	}
	return s.points[0].X, s.points[len(s.points)-1].X, true
}

// Between returns the points within [from,to] plus the nearest point outside
// each end, so lines leaving the window are still drawn to its edge.
func (s *Series[X]) Between(from, to X) []Point[X] {
	return Cull(s.points, from, to, s.compare)
}

// Cull returns the points of the ordered slice pts within [from,to] plus one
// neighbour on each side.
func Cull[X any](pts []Point[X], from, to X, compare func(a, b X) int) []Point[X] {
	if compare(from, to) > 0 {
		from, to = to, from
	}
	start, _ := slices.BinarySearchFunc(pts, from, func(p Point[X], x X) int {
		return compare(p.X, x)
	})
	end, found := slices.BinarySearchFunc(pts, to, func(p Point[X], x X) int {
		return compare(p.X, x)
	})
	if found {
		for end < len(pts) && compare(pts[end].X, to) == 0 {
			end++
		}
	}
	start = max(start-1, 0)
	end = min(end+1, len(pts))
	if start >= end {
		return nil
	}
	return pts[start:end]
}

// Scaled returns the points with every Y multiplied by ratio(X).
func Scaled[X any](pts []Point[X], ratio func(X) float64) []Point[X] {
	out := make([]Point[X], len(pts))
	for i, p := range pts {
		out[i] = Point[X]{X: p.X, Y: p.Y * ratio(p.X)}
	}
	return out
}

// Bounds returns the smallest and largest Y of pts. NaN is returned for an
// empty slice.
func Bounds[X any](pts []Point[X]) (min, max float64) {
	ys := make([]float64, len(pts))
	for i, p := range pts {
		ys[i] = p.Y
	}
	return stats.Bounds(ys)
}

func (s *Series[X]) updateRange() {
	if len(s.points) == 0 {
		s.RangeMin, s.RangeMax = 0, 0
		return
	}
	s.RangeMin, s.RangeMax = Bounds(s.points)
}
